package transport

import "time"

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name"     validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required"`
}

type ArticleRequest struct {
	Name     string   `json:"name"    validate:"required"`
	Content  string   `json:"content" validate:"required"`
	ImageURL string   `json:"image_url"`
	Price    *float64 `json:"price"   validate:"required,gte=0"`
}

type ShippingInfo struct {
	FirstName  string `json:"first_name"  validate:"required"`
	LastName   string `json:"last_name"   validate:"required"`
	Email      string `json:"email"       validate:"required"`
	Phone      string `json:"phone"       validate:"required"`
	Address    string `json:"address"     validate:"required"`
	City       string `json:"city"        validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country"     validate:"required"`
}

// Pointer fields so a missing value is distinguishable from a zero.
type CreateOrderItem struct {
	ProductID *uint    `json:"product_id" validate:"required"`
	Name      string   `json:"name"       validate:"required"`
	Price     *float64 `json:"price"      validate:"required,gte=0"`
	Quantity  *int     `json:"quantity"   validate:"required,gt=0"`
}

type CreateOrderTotals struct {
	Subtotal *float64 `json:"subtotal" validate:"required"`
	Shipping *float64 `json:"shipping" validate:"required"`
	Tax      *float64 `json:"tax"      validate:"required"`
	Total    *float64 `json:"total"    validate:"required"`
}

type CreateOrderRequest struct {
	ShippingInfo ShippingInfo      `json:"shipping_info"`
	Items        []CreateOrderItem `json:"items"`
	Totals       CreateOrderTotals `json:"totals"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type AdminUpdateUserRequest struct {
	Name     string `json:"name"      validate:"required"`
	Username string `json:"username"  validate:"required"`
	Email    string `json:"email"     validate:"required,email"`
	Phone    string `json:"phone"     validate:"required"`
	Role     string `json:"role"      validate:"required,oneof=user admin"`
	IsActive *bool  `json:"is_active" validate:"required"`
}

type OrderItemView struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderTotals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

type OrderView struct {
	ID           uint            `json:"id"`
	UserID       uint            `json:"user_id"`
	OrderDate    time.Time       `json:"order_date"`
	Status       string          `json:"status"`
	ShippingInfo ShippingInfo    `json:"shipping_info"`
	Items        []OrderItemView `json:"items"`
	Totals       OrderTotals     `json:"totals"`
}

type AdminOrderView struct {
	OrderView
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
	ItemsCount int    `json:"items_count"`
}

type AdminUserView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
	TotalOrders int64  `json:"total_orders"`
}

type AdminArticleView struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Content   string  `json:"content"`
	ImageURL  string  `json:"image_url"`
	Price     float64 `json:"price"`
	TotalSold int64   `json:"total_sold"`
}

type AdminStats struct {
	TotalUsers        int64            `json:"total_users"`
	ActiveUsers       int64            `json:"active_users"`
	TotalArticles     int64            `json:"total_articles"`
	TotalOrders       int64            `json:"total_orders"`
	TotalRevenue      float64          `json:"total_revenue"`
	OrderStatusCounts map[string]int64 `json:"order_status_counts"`
}
