package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pw2pl/shop-backend/internal/handlers"
	"github.com/pw2pl/shop-backend/internal/hash"
	authmw "github.com/pw2pl/shop-backend/internal/middleware/auth"
	"github.com/pw2pl/shop-backend/internal/models"
	"github.com/pw2pl/shop-backend/internal/service/token"
	httpserver "github.com/pw2pl/shop-backend/internal/transport/http"
)

type testEnv struct {
	T      *testing.T
	E      *echo.Echo
	DB     *gorm.DB
	Tokens *token.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// a single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Article{}, &models.Order{}, &models.OrderItem{}))

	tokens := &token.Service{Secret: []byte("test-secret")}

	e := echo.New()
	httpserver.Register(e, &httpserver.Deps{
		DB:             db,
		Guard:          &authmw.Guard{Tokens: tokens},
		AuthHandler:    &handlers.AuthHandler{DB: db, Tokens: tokens},
		ArticleHandler: &handlers.ArticleHandler{DB: db, Index: "articles"},
		OrderHandler:   &handlers.OrderHandler{DB: db},
		AdminHandler:   &handlers.AdminHandler{DB: db},
	})

	return &testEnv{T: t, E: e, DB: db, Tokens: tokens}
}

func (env *testEnv) doJSON(method, path string, body interface{}, accessToken string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if accessToken != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+accessToken)
	}
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

var userSeq atomic.Int64

func (env *testEnv) createUser(role, password string) (models.User, string) {
	env.T.Helper()

	passwordHash, err := hash.HashPassword(password)
	require.NoError(env.T, err)

	seq := userSeq.Add(1)
	user := models.User{
		Name:         gofakeit.Name(),
		Username:     fmt.Sprintf("%s%d", gofakeit.Username(), seq),
		Email:        fmt.Sprintf("u%d.%s", seq, gofakeit.Email()),
		Phone:        gofakeit.Phone(),
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}
	require.NoError(env.T, env.DB.Create(&user).Error)

	accessToken, err := env.Tokens.Sign(user.ID, user.Role)
	require.NoError(env.T, err)
	return user, accessToken
}

func (env *testEnv) createArticle(name string, price float64) models.Article {
	env.T.Helper()

	article := models.Article{
		Name:     name,
		Content:  gofakeit.Sentence(8),
		ImageURL: "/assets/images/shop/small/1.jpg",
		Price:    price,
	}
	require.NoError(env.T, env.DB.Create(&article).Error)
	return article
}

func shippingInfo() map[string]interface{} {
	return map[string]interface{}{
		"first_name":  "João",
		"last_name":   "Silva",
		"email":       "joao@example.com",
		"phone":       "912345678",
		"address":     "Rua das Flores 1",
		"city":        "Lisboa",
		"postal_code": "1000-001",
		"country":     "Portugal",
	}
}

func orderPayload(articleID uint) map[string]interface{} {
	return map[string]interface{}{
		"shipping_info": shippingInfo(),
		"items": []map[string]interface{}{
			{"product_id": articleID, "name": "Widget", "price": 9.99, "quantity": 2},
		},
		"totals": map[string]interface{}{
			"subtotal": 19.98,
			"shipping": 5.00,
			"tax":      1.50,
			"total":    26.48,
		},
	}
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func decodeInto(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
