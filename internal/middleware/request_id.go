package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

const CtxRequestIDKey = "request_id"

// RequestID tags every request with a uuid, echoes it back in the
// X-Request-Id header and logs the request with it.
func RequestID(logger *log.Entry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get("X-Request-Id")
			if id == "" {
				id = uuid.NewString()
			}
			c.Set(CtxRequestIDKey, id)
			c.Response().Header().Set("X-Request-Id", id)

			err := next(c)

			logger.WithFields(log.Fields{
				"request_id": id,
				"method":     c.Request().Method,
				"path":       c.Request().URL.Path,
				"status":     c.Response().Status,
			}).Info("request")

			return err
		}
	}
}
