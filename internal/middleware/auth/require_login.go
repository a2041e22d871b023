package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (g *Guard) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, err := bearerToken(c)
		if err != nil {
			return err
		}

		claims, err := g.Tokens.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		if err := setUserContext(c, claims); err != nil {
			return err
		}
		return next(c)
	}
}
