package router

import (
	"github.com/labstack/echo/v4"
	"github.com/thinkify/mongo-init/server/handler"
	"github.com/thinkify/mongo-init/server/middleware"
)

func Router(e *echo.Echo, verify handler.VerifyFunc) {
	middleware.Middleware(e)

	e.GET("/health", handler.HealthHandler)
	e.GET("/ready", handler.ReadyHandler)
	e.GET("/schema", handler.SchemaHandler(verify))
	e.GET("/metrics", handler.MetricsHandler())
}
