package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/pw2pl/shop-backend/internal/events"
	"github.com/pw2pl/shop-backend/internal/models"
	"github.com/pw2pl/shop-backend/internal/transport"
)

type AdminHandler struct {
	DB       *gorm.DB
	Producer *events.Producer
}

type statusCount struct {
	Status string
	Count  int64
}

func (h *AdminHandler) GetStats(c echo.Context) error {
	var stats transport.AdminStats

	if err := h.DB.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}
	if err := h.DB.Model(&models.User{}).Where("is_active = ?", true).Count(&stats.ActiveUsers).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}
	if err := h.DB.Model(&models.Article{}).Count(&stats.TotalArticles).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}
	if err := h.DB.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}
	if err := h.DB.Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	var counts []statusCount
	if err := h.DB.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}
	stats.OrderStatusCounts = make(map[string]int64, len(counts))
	for _, sc := range counts {
		stats.OrderStatusCounts[sc.Status] = sc.Count
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"stats":   stats,
	})
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	var users []models.User
	if err := h.DB.Order("id ASC").Find(&users).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	type userOrders struct {
		UserID uint
		Count  int64
	}
	var perUser []userOrders
	if err := h.DB.Model(&models.Order{}).
		Select("user_id, COUNT(*) AS count").
		Group("user_id").
		Scan(&perUser).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}
	orderCounts := make(map[uint]int64, len(perUser))
	for _, uo := range perUser {
		orderCounts[uo.UserID] = uo.Count
	}

	views := lo.Map(users, func(u models.User, _ int) transport.AdminUserView {
		return transport.AdminUserView{
			ID:          u.ID,
			Name:        u.Name,
			Username:    u.Username,
			Email:       u.Email,
			Phone:       u.Phone,
			Role:        u.Role,
			IsActive:    u.IsActive,
			TotalOrders: orderCounts[u.ID],
		}
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"users":   views,
	})
}

func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	var user models.User
	if err := h.DB.First(&user, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "user not found")
	}

	var req transport.AdminUpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := transport.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, missingFieldsMessage("missing fields", err))
	}

	var existing models.User
	result := h.DB.
		Where("(username = ? OR email = ?) AND id <> ?", req.Username, req.Email, user.ID).
		First(&existing)
	if result.Error == nil {
		return fail(c, http.StatusConflict, "username or email already exists")
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	user.Name = req.Name
	user.Username = req.Username
	user.Email = req.Email
	user.Phone = req.Phone
	user.Role = req.Role
	user.IsActive = *req.IsActive
	if err := h.DB.Save(&user).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	publish(c, h.Producer, events.TopicUserEvents, user.ID, map[string]interface{}{
		"type":   "user_updated",
		"userID": user.ID,
	})

	return c.JSON(http.StatusOK, transport.Response{Success: true, Message: "user updated successfully"})
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	result := h.DB.Delete(&models.User{}, id)
	if result.Error != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}
	if result.RowsAffected == 0 {
		return fail(c, http.StatusNotFound, "user not found")
	}

	publish(c, h.Producer, events.TopicUserEvents, id, map[string]interface{}{
		"type":   "user_deleted",
		"userID": id,
	})

	return c.JSON(http.StatusOK, transport.Response{Success: true, Message: "user deleted successfully"})
}

func (h *AdminHandler) ListArticles(c echo.Context) error {
	var articles []models.Article
	if err := h.DB.Order("id ASC").Find(&articles).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	type articleSales struct {
		ArticleID uint
		Sold      int64
	}
	var sales []articleSales
	if err := h.DB.Model(&models.OrderItem{}).
		Select("article_id, COALESCE(SUM(quantity), 0) AS sold").
		Group("article_id").
		Scan(&sales).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}
	sold := make(map[uint]int64, len(sales))
	for _, s := range sales {
		sold[s.ArticleID] = s.Sold
	}

	views := lo.Map(articles, func(a models.Article, _ int) transport.AdminArticleView {
		return transport.AdminArticleView{
			ID:        a.ID,
			Name:      a.Name,
			Content:   a.Content,
			ImageURL:  a.ImageURL,
			Price:     a.Price,
			TotalSold: sold[a.ID],
		}
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"articles": views,
	})
}

// ListAllOrders returns every order system-wide, newest first, annotated
// with the owning user. Orders whose owner has been deleted list as
// "Unknown" rather than failing the view.
func (h *AdminHandler) ListAllOrders(c echo.Context) error {
	var orders []models.Order
	if err := h.DB.
		Preload("Items").
		Order("order_date DESC, id DESC").
		Find(&orders).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	names, err := articleNames(h.DB, orders)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	userIDs := lo.Uniq(lo.Map(orders, func(o models.Order, _ int) uint { return o.UserID }))
	users := make(map[uint]models.User, len(userIDs))
	if len(userIDs) > 0 {
		var rows []models.User
		if err := h.DB.Where("id IN ?", userIDs).Find(&rows).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "server error")
		}
		for _, u := range rows {
			users[u.ID] = u
		}
	}

	views := lo.Map(orders, func(o models.Order, _ int) transport.AdminOrderView {
		view := transport.AdminOrderView{
			OrderView:  orderView(o, names),
			UserName:   "Unknown",
			UserEmail:  "Unknown",
			ItemsCount: len(o.Items),
		}
		if u, ok := users[o.UserID]; ok {
			view.UserName = u.Name
			view.UserEmail = u.Email
		}
		return view
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"orders":  views,
	})
}

// UpdateOrderStatus overwrites the status with any recognized value. The
// transition graph is deliberately not enforced: an order may move backwards
// (e.g. delivered -> processing).
func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if !models.ValidOrderStatus(req.Status) {
		return fail(c, http.StatusBadRequest,
			"invalid status, allowed values: "+strings.Join(models.OrderStatuses(), ", "))
	}

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "order not found")
	}

	order.Status = req.Status
	if err := h.DB.Save(&order).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	publish(c, h.Producer, events.TopicOrderEvents, order.ID, map[string]interface{}{
		"type":    "order_status_updated",
		"orderID": order.ID,
		"status":  order.Status,
	})

	return c.JSON(http.StatusOK, transport.Response{Success: true, Message: "order status updated"})
}
