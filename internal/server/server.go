package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/rugue/FullStackEcommerce/internal/config"
	"github.com/rugue/FullStackEcommerce/internal/handler"
	"github.com/rugue/FullStackEcommerce/internal/middleware"
)

// New builds the echo instance with all routes registered.
func New(
	cfg config.Config,
	logger *log.Entry,
	authH *handler.AuthHandler,
	productH *handler.ProductHandler,
	orderH *handler.OrderHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestID(logger))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	authH.RegisterRoutes(e)
	productH.RegisterRoutes(e, cfg)
	orderH.RegisterRoutes(e, cfg)

	return e
}

// Start runs the server until it fails.
func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
