package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pw2pl/shop-backend/internal/events"
	"github.com/pw2pl/shop-backend/internal/transport"
)

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, transport.Response{Success: false, Message: message})
}

func missingFieldsMessage(prefix string, err error) string {
	fields := transport.InvalidFields(err)
	if len(fields) == 0 {
		return prefix
	}
	return prefix + ": " + strings.Join(fields, ", ")
}

// publish sends a domain event best-effort: failures are logged, never
// surfaced to the client.
func publish(c echo.Context, p *events.Producer, topic string, key interface{}, event map[string]interface{}) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, fmt.Sprint(key), event); err != nil {
		c.Logger().Errorf("kafka publish error: %v", err)
	}
}
