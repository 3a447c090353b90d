package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/facturio/facturio-api/pkg/logger"
)

// RequestLogger adjunta un logger con request_id al contexto y registra cada petición al terminar.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, requestID)

		reqLog := log.Zerolog().With().Str("request_id", requestID).Logger()
		c.SetUserContext(reqLog.WithContext(c.UserContext()))

		err := c.Next()
		if err != nil {
			// el ErrorHandler global escribe la respuesta; aquí solo se registra
			_ = c.App().ErrorHandler(c, err)
		}

		status := c.Response().StatusCode()
		evt := logger.FromContext(c.UserContext()).Info()
		if status >= fiber.StatusInternalServerError {
			evt = logger.FromContext(c.UserContext()).Error()
		}
		evt.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return nil
	}
}
