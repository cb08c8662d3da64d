package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/thinkify/mongo-init/pkg/config"
)

// securityHeaders hardens the JSON-only status surface: nothing it serves
// is meant to be framed, scripted or embedded.
func securityHeaders(e *echo.Echo) {
	tlsEnabled := config.TLSEnabled()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")
			h.Set("Cache-Control", "no-store")
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
			if tlsEnabled {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}
			return next(c)
		}
	})
}
