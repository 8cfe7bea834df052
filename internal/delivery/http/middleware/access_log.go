package middleware

import (
	"time"

	"jobmarket/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type AccessLogMiddleware struct {
	log *log.Entry
}

func NewAccessLogMiddleware() *AccessLogMiddleware {
	return &AccessLogMiddleware{log: logger.Component("http")}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("X-Request-ID", rid)

		err := c.Next()

		status := c.Response().StatusCode()
		entry := m.log.WithFields(log.Fields{
			"rid":        rid,
			"ip":         c.IP(),
			"method":     c.Method(),
			"path":       c.OriginalURL(),
			"status":     status,
			"latency":    time.Since(start).String(),
			"req_bytes":  c.Request().Header.ContentLength(),
			"resp_bytes": len(c.Response().Body()),
			"ua":         c.Get("User-Agent"),
		})

		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Warn("http access")
		default:
			entry.Info("http access")
		}

		return err
	}
}
