package api

import (
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/datallboy/gofetch/internal/api/controllers"
	"github.com/datallboy/gofetch/internal/app"
)

// NewServer builds the echo instance with every route registered.
func NewServer(app *app.Context) *echo.Echo {
	e := echo.New()
	RegisterRoutes(e, app)
	return e
}

func RegisterRoutes(e *echo.Echo, app *app.Context) {

	// Middleware: Request Logger
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c *echo.Context, v middleware.RequestLoggerValues) error {
			app.Logger.Info("%s %s | %d | %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	batchCtrl := &controllers.BatchController{Runner: app, Store: app.Store}

	e.POST("/api/batches", batchCtrl.Create)
	e.GET("/api/batches", batchCtrl.List)
	e.GET("/api/batches/:id", batchCtrl.Get)

	metrics := promhttp.HandlerFor(app.Registry, promhttp.HandlerOpts{})
	e.GET("/metrics", func(c *echo.Context) error {
		metrics.ServeHTTP(c.Response(), c.Request())
		return nil
	})

	e.GET("/healthz", func(c *echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
}
