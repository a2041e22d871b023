package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/pw2pl/shop-backend/internal/events"
	"github.com/pw2pl/shop-backend/internal/models"
	"github.com/pw2pl/shop-backend/internal/service/search"
	"github.com/pw2pl/shop-backend/internal/transport"
	"github.com/pw2pl/shop-backend/internal/util"
)

type ArticleHandler struct {
	DB       *gorm.DB
	ES       *elasticsearch.Client // optional search index
	Index    string
	Producer *events.Producer
}

func (h *ArticleHandler) ListArticles(c echo.Context) error {
	var articles []models.Article
	if err := h.DB.Order("id ASC").Find(&articles).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}
	return c.JSON(http.StatusOK, articles)
}

func (h *ArticleHandler) GetArticle(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	var article models.Article
	if err := h.DB.First(&article, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "article not found")
	}
	return c.JSON(http.StatusOK, article)
}

// SearchArticles matches article names case-insensitively. An empty query
// matches everything. When an Elasticsearch client is configured the query
// goes to the index instead of the relational store.
func (h *ArticleHandler) SearchArticles(c echo.Context) error {
	q := c.QueryParam("name")

	if h.ES != nil && q != "" {
		page, _ := strconv.Atoi(c.QueryParam("page"))
		size, _ := strconv.Atoi(c.QueryParam("size"))
		from, size := util.Calculate(page, size)

		_, articles, err := search.Search(c.Request().Context(), h.ES, h.Index, q, from, size)
		if err != nil {
			c.Logger().Errorf("elasticsearch query failed, falling back to database: %v", err)
		} else {
			return c.JSON(http.StatusOK, articles)
		}
	}

	var articles []models.Article
	if err := h.DB.
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%").
		Order("id ASC").
		Find(&articles).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}
	return c.JSON(http.StatusOK, articles)
}

func (h *ArticleHandler) CreateArticle(c echo.Context) error {
	var req transport.ArticleRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := transport.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, missingFieldsMessage("missing fields", err))
	}

	article := models.Article{
		Name:     req.Name,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Price:    *req.Price,
	}
	if err := h.DB.Create(&article).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	h.indexArticle(c, article)
	publish(c, h.Producer, events.TopicArticleEvents, article.ID, map[string]interface{}{
		"type":      "article_created",
		"articleID": article.ID,
		"name":      article.Name,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "article added",
		"id":      article.ID,
	})
}

func (h *ArticleHandler) UpdateArticle(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	var article models.Article
	if err := h.DB.First(&article, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "article not found")
	}

	var req transport.ArticleRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := transport.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, missingFieldsMessage("missing fields", err))
	}

	article.Name = req.Name
	article.Content = req.Content
	article.ImageURL = req.ImageURL
	article.Price = *req.Price
	if err := h.DB.Save(&article).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	h.indexArticle(c, article)
	publish(c, h.Producer, events.TopicArticleEvents, article.ID, map[string]interface{}{
		"type":      "article_updated",
		"articleID": article.ID,
		"name":      article.Name,
	})

	return c.JSON(http.StatusOK, transport.Response{Success: true, Message: "article updated"})
}

// DeleteArticle refuses to remove an article that any order line still
// references: order items carry a frozen price but point back at the
// article row for display.
func (h *ArticleHandler) DeleteArticle(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	var article models.Article
	if err := h.DB.First(&article, id).Error; err != nil {
		return fail(c, http.StatusNotFound, "article not found")
	}

	var refs int64
	if err := h.DB.Model(&models.OrderItem{}).Where("article_id = ?", id).Count(&refs).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}
	if refs > 0 {
		return fail(c, http.StatusConflict, "article is referenced by existing orders")
	}

	if err := h.DB.Delete(&article).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "server error")
	}

	if h.ES != nil {
		if err := search.DeleteArticle(c.Request().Context(), h.ES, h.Index, article.ID); err != nil {
			c.Logger().Errorf("elasticsearch delete error: %v", err)
		}
	}
	publish(c, h.Producer, events.TopicArticleEvents, article.ID, map[string]interface{}{
		"type":      "article_deleted",
		"articleID": article.ID,
	})

	return c.JSON(http.StatusOK, transport.Response{Success: true, Message: "article deleted"})
}

func (h *ArticleHandler) indexArticle(c echo.Context, article models.Article) {
	if h.ES == nil {
		return
	}
	if err := search.IndexArticle(c.Request().Context(), h.ES, h.Index, article); err != nil {
		c.Logger().Errorf("elasticsearch index error: %v", err)
	}
}
