package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pw2pl/shop-backend/internal/models"
)

func TestListAndGetArticles(t *testing.T) {
	env := newTestEnv(t)
	article := env.createArticle("Blue Widget", 9.99)
	env.createArticle("Gadget", 14.50)

	rec := env.doJSON(http.MethodGet, "/api/articles", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []models.Article
	require.NoError(t, decodeInto(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)

	rec = env.doJSON(http.MethodGet, "/api/articles/1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), article.Name)

	rec = env.doJSON(http.MethodGet, "/api/articles/999", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchArticles(t *testing.T) {
	env := newTestEnv(t)
	env.createArticle("Blue Widget", 9.99)
	env.createArticle("RED WIDGET", 12.99)
	env.createArticle("Gadget", 14.50)

	// substring match is case-insensitive
	rec := env.doJSON(http.MethodGet, "/api/articles/search?name=widget", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var results []models.Article
	require.NoError(t, decodeInto(rec.Body.Bytes(), &results))
	require.Len(t, results, 2)

	// empty query matches everything
	rec = env.doJSON(http.MethodGet, "/api/articles/search", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, decodeInto(rec.Body.Bytes(), &results))
	require.Len(t, results, 3)

	rec = env.doJSON(http.MethodGet, "/api/articles/search?name=nothing-matches", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, decodeInto(rec.Body.Bytes(), &results))
	require.Empty(t, results)
}

func TestAdminArticleManagement(t *testing.T) {
	env := newTestEnv(t)
	_, userToken := env.createUser("user", "password123")
	_, adminToken := env.createUser("admin", "password123")

	payload := map[string]interface{}{
		"name":      "Widget",
		"content":   "A very fine widget",
		"image_url": "/assets/images/shop/small/2.jpg",
		"price":     9.99,
	}

	rec := env.doJSON(http.MethodPost, "/api/admin/articles", payload, userToken)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doJSON(http.MethodPost, "/api/admin/articles", map[string]interface{}{"name": "Widget"}, adminToken)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	msg := decode(t, rec)["message"].(string)
	require.Contains(t, msg, "content")
	require.Contains(t, msg, "price")

	rec = env.doJSON(http.MethodPost, "/api/admin/articles", payload, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := uint(decode(t, rec)["id"].(float64))

	payload["price"] = 12.49
	rec = env.doJSON(http.MethodPut, "/api/admin/articles/1", payload, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var article models.Article
	require.NoError(t, env.DB.First(&article, id).Error)
	require.InDelta(t, 12.49, article.Price, 1e-9)

	rec = env.doJSON(http.MethodDelete, "/api/admin/articles/1", nil, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodGet, "/api/articles/1", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteReferencedArticleFails(t *testing.T) {
	env := newTestEnv(t)
	_, userToken := env.createUser("user", "password123")
	_, adminToken := env.createUser("admin", "password123")
	article := env.createArticle("Widget", 9.99)

	rec := env.doJSON(http.MethodPost, "/api/orders", orderPayload(article.ID), userToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(http.MethodDelete, "/api/admin/articles/1", nil, adminToken)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, decode(t, rec)["message"], "referenced")

	var count int64
	require.NoError(t, env.DB.Model(&models.Article{}).Where("id = ?", article.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}
