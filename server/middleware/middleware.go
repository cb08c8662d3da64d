package middleware

import (
	"github.com/labstack/echo/v4"
	echoMiddle "github.com/labstack/echo/v4/middleware"
)

func Middleware(e *echo.Echo) {
	e.Use(echoMiddle.Logger())
	e.Use(echoMiddle.Recover())

	// security headers
	securityHeaders(e)

	// per-IP rate limiting of the status endpoints
	e.Use(RateLimit())
}
