package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/pw2pl/shop-backend/internal/events"
	authmw "github.com/pw2pl/shop-backend/internal/middleware/auth"
	"github.com/pw2pl/shop-backend/internal/models"
	"github.com/pw2pl/shop-backend/internal/transport"
)

type OrderHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

// CreateOrder turns a cart submission into one order row plus one row per
// cart line, written as a single transaction. Totals are stored exactly as
// submitted and are not recomputed from the lines.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid order payload")
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return fail(c, http.StatusNotFound, "user not found")
	}

	if err := transport.Validate(&req.ShippingInfo); err != nil {
		return fail(c, http.StatusBadRequest, missingFieldsMessage("missing fields", err))
	}
	if len(req.Items) == 0 {
		return fail(c, http.StatusBadRequest, "empty cart")
	}
	if err := transport.Validate(&req.Totals); err != nil {
		return fail(c, http.StatusBadRequest, missingFieldsMessage("missing totals", err))
	}
	for _, item := range req.Items {
		if err := transport.Validate(&item); err != nil {
			return fail(c, http.StatusBadRequest, missingFieldsMessage("invalid cart item", err))
		}
	}

	order := models.Order{
		UserID:    userID,
		OrderDate: time.Now().UTC(),
		Status:    models.OrderStatusProcessing,

		FirstName:  req.ShippingInfo.FirstName,
		LastName:   req.ShippingInfo.LastName,
		Email:      req.ShippingInfo.Email,
		Phone:      req.ShippingInfo.Phone,
		Address:    req.ShippingInfo.Address,
		City:       req.ShippingInfo.City,
		PostalCode: req.ShippingInfo.PostalCode,
		Country:    req.ShippingInfo.Country,

		Subtotal: *req.Totals.Subtotal,
		Shipping: *req.Totals.Shipping,
		Tax:      *req.Totals.Tax,
		Total:    *req.Totals.Total,
	}

	txErr := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, it := range req.Items {
			item := models.OrderItem{
				OrderID:   order.ID,
				ArticleID: *it.ProductID,
				Name:      it.Name,
				Quantity:  *it.Quantity,
				Price:     *it.Price, // frozen purchase-time price
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		c.Logger().Errorf("order creation failed: %v", txErr)
		return fail(c, http.StatusInternalServerError, "error creating order")
	}

	publish(c, h.Producer, events.TopicOrderEvents, userID, map[string]interface{}{
		"type":    "order_created",
		"userID":  userID,
		"orderID": order.ID,
		"total":   order.Total,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"success":  true,
		"order_id": order.ID,
		"message":  "order created successfully",
	})
}

// ListMyOrders returns the caller's orders, newest first.
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	userID, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	var orders []models.Order
	if err := h.DB.
		Preload("Items").
		Where("user_id = ?", userID).
		Order("order_date DESC, id DESC").
		Find(&orders).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	names, err := articleNames(h.DB, orders)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	views := lo.Map(orders, func(o models.Order, _ int) transport.OrderView {
		return orderView(o, names)
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"orders":  views,
	})
}

// articleNames resolves display names for every article referenced by the
// given orders in one query. Items whose article has since been deleted keep
// the name captured at purchase time.
func articleNames(db *gorm.DB, orders []models.Order) (map[uint]string, error) {
	var ids []uint
	for _, o := range orders {
		for _, it := range o.Items {
			ids = append(ids, it.ArticleID)
		}
	}
	if len(ids) == 0 {
		return map[uint]string{}, nil
	}

	var articles []models.Article
	if err := db.Where("id IN ?", lo.Uniq(ids)).Find(&articles).Error; err != nil {
		return nil, err
	}

	names := make(map[uint]string, len(articles))
	for _, a := range articles {
		names[a.ID] = a.Name
	}
	return names, nil
}

func orderView(o models.Order, names map[uint]string) transport.OrderView {
	items := lo.Map(o.Items, func(it models.OrderItem, _ int) transport.OrderItemView {
		name := it.Name
		if live, ok := names[it.ArticleID]; ok {
			name = live
		}
		return transport.OrderItemView{
			ProductID: it.ArticleID,
			Name:      name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		}
	})

	return transport.OrderView{
		ID:        o.ID,
		UserID:    o.UserID,
		OrderDate: o.OrderDate,
		Status:    o.Status,
		ShippingInfo: transport.ShippingInfo{
			FirstName:  o.FirstName,
			LastName:   o.LastName,
			Email:      o.Email,
			Phone:      o.Phone,
			Address:    o.Address,
			City:       o.City,
			PostalCode: o.PostalCode,
			Country:    o.Country,
		},
		Items: items,
		Totals: transport.OrderTotals{
			Subtotal: o.Subtotal,
			Shipping: o.Shipping,
			Tax:      o.Tax,
			Total:    o.Total,
		},
	}
}
