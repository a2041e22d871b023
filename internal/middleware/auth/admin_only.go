package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminOnly must run after RequireLogin.
func (g *Guard) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if Role(c) != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}
