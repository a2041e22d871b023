package models

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null"                 json:"name"`
	Username     string `gorm:"unique;not null"          json:"username"`
	Email        string `gorm:"unique;not null"          json:"email"`
	Phone        string `gorm:"not null"                 json:"phone"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
	IsActive     bool   `gorm:"not null;default:true"    json:"is_active"`
}

type Article struct {
	ID       uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string  `gorm:"not null"                 json:"name"`
	Content  string  `gorm:"not null"                 json:"content"`
	ImageURL string  `json:"image_url"`
	Price    float64 `gorm:"not null"                 json:"price"`
}

type Order struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"    json:"id"`
	UserID    uint      `gorm:"index;not null"              json:"user_id"`
	OrderDate time.Time `gorm:"not null"                    json:"order_date"`
	Status    string    `gorm:"not null;default:processing" json:"status"`

	// shipping snapshot, captured at order time
	FirstName  string `gorm:"not null" json:"first_name"`
	LastName   string `gorm:"not null" json:"last_name"`
	Email      string `gorm:"not null" json:"email"`
	Phone      string `gorm:"not null" json:"phone"`
	Address    string `gorm:"not null" json:"address"`
	City       string `gorm:"not null" json:"city"`
	PostalCode string `gorm:"not null" json:"postal_code"`
	Country    string `gorm:"not null" json:"country"`

	Subtotal float64 `gorm:"not null" json:"subtotal"`
	Shipping float64 `gorm:"not null" json:"shipping"`
	Tax      float64 `gorm:"not null" json:"tax"`
	Total    float64 `gorm:"not null" json:"total"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	OrderID   uint    `gorm:"index;not null"            json:"order_id"`
	ArticleID uint    `gorm:"not null"                  json:"article_id"`
	Name      string  `gorm:"not null"                  json:"name"`
	Quantity  int     `gorm:"not null;check:quantity>0" json:"quantity"`
	Price     float64 `gorm:"not null"                  json:"price"` // price at purchase time
}
