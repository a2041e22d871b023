package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pw2pl/shop-backend/internal/models"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{
		"name":     "João Silva",
		"username": "joaosilva",
		"email":    "joao@example.com",
		"phone":    "912345678",
		"password": "password123",
	}

	rec := env.doJSON(http.MethodPost, "/api/register", payload, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decode(t, rec)
	require.Equal(t, true, resp["success"])
	require.NotEmpty(t, resp["access_token"])

	var user models.User
	require.NoError(t, env.DB.Where("username = ?", "joaosilva").First(&user).Error)
	require.Equal(t, "user", user.Role)
	require.True(t, user.IsActive)
	require.NotEqual(t, "password123", user.PasswordHash)

	// same username again
	rec = env.doJSON(http.MethodPost, "/api/register", payload, "")
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, decode(t, rec)["message"], "already exists")
}

func TestRegisterMissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodPost, "/api/register", map[string]string{"username": "joaosilva"}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	msg := decode(t, rec)["message"].(string)
	require.Contains(t, msg, "name")
	require.Contains(t, msg, "email")
	require.Contains(t, msg, "phone")
	require.Contains(t, msg, "password")
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.createUser("user", "password123")

	rec := env.doJSON(http.MethodPost, "/api/login", map[string]string{
		"username": user.Username,
		"password": "wrong",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(http.MethodPost, "/api/login", map[string]string{
		"username": user.Username,
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode(t, rec)
	require.NotEmpty(t, resp["access_token"])
	require.Equal(t, false, resp["is_admin"])
}

func TestLoginDeactivatedUser(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.createUser("user", "password123")

	require.NoError(t, env.DB.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	rec := env.doJSON(http.MethodPost, "/api/login", map[string]string{
		"username": user.Username,
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, decode(t, rec)["message"], "deactivated")
}

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	user, accessToken := env.createUser("user", "password123")

	rec := env.doJSON(http.MethodGet, "/api/profile", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(http.MethodGet, "/api/profile", nil, accessToken)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode(t, rec)
	require.Equal(t, user.Username, resp["username"])
	require.NotContains(t, rec.Body.String(), user.PasswordHash)
}

func TestUpdateProfileUniqueness(t *testing.T) {
	env := newTestEnv(t)
	user, accessToken := env.createUser("user", "password123")
	other, _ := env.createUser("user", "password123")

	// taking another user's email is a conflict
	rec := env.doJSON(http.MethodPut, "/api/profile", map[string]string{
		"name":     user.Name,
		"username": user.Username,
		"email":    other.Email,
		"phone":    user.Phone,
	}, accessToken)
	require.Equal(t, http.StatusConflict, rec.Code)

	// keeping your own username is not
	rec = env.doJSON(http.MethodPut, "/api/profile", map[string]string{
		"name":     "New Name",
		"username": user.Username,
		"email":    user.Email,
		"phone":    user.Phone,
	}, accessToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.User
	require.NoError(t, env.DB.First(&updated, user.ID).Error)
	require.Equal(t, "New Name", updated.Name)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	user, accessToken := env.createUser("user", "password123")

	rec := env.doJSON(http.MethodPut, "/api/profile/password", map[string]string{
		"current_password": "wrong",
		"new_password":     "newpassword",
	}, accessToken)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.doJSON(http.MethodPut, "/api/profile/password", map[string]string{
		"current_password": "password123",
		"new_password":     "newpassword",
	}, accessToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodPost, "/api/login", map[string]string{
		"username": user.Username,
		"password": "newpassword",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
}
