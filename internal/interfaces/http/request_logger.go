package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/techinventory-api/pkg/logger"
)

// RequestLogger registra método, ruta, status y latencia de cada petición.
// Usa el request id que deja el middleware requestid de Fiber.
func RequestLogger(log *logger.Logger) fiber.Handler {
	l := log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			// El ErrorHandler aún no escribió la respuesta.
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status, _ = errorStatus(err)
			}
		}
		ev := l.Info()
		if status >= fiber.StatusInternalServerError {
			ev = l.Error().Err(err)
		}
		ev.Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}
