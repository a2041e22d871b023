package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/pw2pl/shop-backend/internal/events"
	"github.com/pw2pl/shop-backend/internal/hash"
	authmw "github.com/pw2pl/shop-backend/internal/middleware/auth"
	"github.com/pw2pl/shop-backend/internal/models"
	"github.com/pw2pl/shop-backend/internal/service/token"
	"github.com/pw2pl/shop-backend/internal/transport"
)

type AuthHandler struct {
	DB       *gorm.DB
	Tokens   *token.Service
	Producer *events.Producer
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := transport.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, missingFieldsMessage("missing fields", err))
	}

	var existing models.User
	result := h.DB.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing)
	if result.Error == nil {
		return fail(c, http.StatusConflict, "username or email already exists")
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	user := models.User{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: passwordHash,
		Role:         "user",
		IsActive:     true,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	accessToken, err := h.Tokens.Sign(user.ID, user.Role)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	publish(c, h.Producer, events.TopicUserEvents, user.ID, map[string]interface{}{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"success":      true,
		"message":      "user registered successfully",
		"access_token": accessToken,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := transport.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, missingFieldsMessage("missing fields", err))
	}

	var user models.User
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		return fail(c, http.StatusUnauthorized, "bad username or password")
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return fail(c, http.StatusUnauthorized, "bad username or password")
	}
	if !user.IsActive {
		return fail(c, http.StatusUnauthorized, "account is deactivated")
	}

	accessToken, err := h.Tokens.Sign(user.ID, user.Role)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	publish(c, h.Producer, events.TopicUserEvents, user.ID, map[string]interface{}{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"access_token": accessToken,
		"is_admin":     user.Role == "admin",
	})
}

func (h *AuthHandler) GetProfile(c echo.Context) error {
	userID, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return fail(c, http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	userID, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return fail(c, http.StatusNotFound, "user not found")
	}

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := transport.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, missingFieldsMessage("missing fields", err))
	}

	// uniqueness check excluding the record being updated
	var existing models.User
	result := h.DB.
		Where("(username = ? OR email = ?) AND id <> ?", req.Username, req.Email, userID).
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
	if err := h.DB.Save(&user).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	return c.JSON(http.StatusOK, transport.Response{Success: true, Message: "profile updated successfully"})
}

func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	var user models.User
	if err := h.DB.First(&user, userID).Error; err != nil {
		return fail(c, http.StatusNotFound, "user not found")
	}

	var req transport.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := transport.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, missingFieldsMessage("missing fields", err))
	}

	if !hash.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return fail(c, http.StatusUnauthorized, "current password is incorrect")
	}

	passwordHash, err := hash.HashPassword(req.NewPassword)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}
	user.PasswordHash = passwordHash
	if err := h.DB.Save(&user).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	return c.JSON(http.StatusOK, transport.Response{Success: true, Message: "password changed successfully"})
}
