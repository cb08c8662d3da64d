package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/thinkify/mongo-init/pkg/logger"
	"github.com/thinkify/mongo-init/pkg/metrics"
	mongodb "github.com/thinkify/mongo-init/pkg/mongoDB"
)

// VerifyFunc compares the live database with the expected schema.
type VerifyFunc func(ctx context.Context) (*mongodb.Verification, error)

// SchemaHandler reports the verification result: 200 when the database
// matches, 503 on mismatch or when verification itself fails.
func SchemaHandler(verify VerifyFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
		defer cancel()

		v, err := verify(ctx)
		if err != nil {
			logger.Logger.Errorw("schema verification failed", "error", err)
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "error",
				"error":  err.Error(),
			})
		}

		metrics.SchemaMismatches.Set(float64(len(v.Mismatches)))
		status := http.StatusOK
		if !v.OK() {
			status = http.StatusServiceUnavailable
		}
		return c.JSON(status, v)
	}
}
