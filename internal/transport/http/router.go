package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/pw2pl/shop-backend/internal/handlers"
	authmw "github.com/pw2pl/shop-backend/internal/middleware/auth"
)

type Deps struct {
	DB             *gorm.DB
	Guard          *authmw.Guard
	AuthHandler    *handlers.AuthHandler
	ArticleHandler *handlers.ArticleHandler
	OrderHandler   *handlers.OrderHandler
	AdminHandler   *handlers.AdminHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "API is running"})
	})
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	api.POST("/register", d.AuthHandler.Register)
	api.POST("/login", d.AuthHandler.Login)

	api.GET("/articles", d.ArticleHandler.ListArticles)
	api.GET("/articles/search", d.ArticleHandler.SearchArticles)
	api.GET("/articles/:id", d.ArticleHandler.GetArticle)

	user := api.Group("", d.Guard.RequireLogin)

	user.GET("/profile", d.AuthHandler.GetProfile)
	user.PUT("/profile", d.AuthHandler.UpdateProfile)
	user.PUT("/profile/password", d.AuthHandler.ChangePassword)

	user.POST("/orders", d.OrderHandler.CreateOrder)
	user.GET("/orders", d.OrderHandler.ListMyOrders)

	admin := api.Group("/admin", d.Guard.RequireLogin, d.Guard.AdminOnly)

	admin.GET("/stats", d.AdminHandler.GetStats)

	admin.GET("/users", d.AdminHandler.ListUsers)
	admin.PUT("/users/:id", d.AdminHandler.UpdateUser)
	admin.DELETE("/users/:id", d.AdminHandler.DeleteUser)

	admin.GET("/articles", d.AdminHandler.ListArticles)
	admin.POST("/articles", d.ArticleHandler.CreateArticle)
	admin.PUT("/articles/:id", d.ArticleHandler.UpdateArticle)
	admin.DELETE("/articles/:id", d.ArticleHandler.DeleteArticle)

	admin.GET("/orders", d.AdminHandler.ListAllOrders)
	admin.PUT("/orders/:id/status", d.AdminHandler.UpdateOrderStatus)
}
