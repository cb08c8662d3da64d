package cmd

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"github.com/thinkify/mongo-init/pkg/config"
	"github.com/thinkify/mongo-init/pkg/config/db"
	"github.com/thinkify/mongo-init/pkg/logger"
	mongodb "github.com/thinkify/mongo-init/pkg/mongoDB"
	"github.com/thinkify/mongo-init/server/router"
)

var skipInit bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Bootstrap, then serve health, schema and metrics endpoints",
	Long: `
1. Ensure collections and indexes (unless --skip-init).
2. Serve /health, /ready, /schema and /metrics on SERVER_ADDR until
   SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := connect(ctx); err != nil {
			return err
		}
		defer disconnect()

		if !skipInit {
			report, err := runBootstrap(ctx)
			if err != nil {
				return err
			}
			logger.Logger.Infow("bootstrap complete",
				"database", report.Database,
				"indexes", report.Indexes,
				"duration", report.Duration,
			)
		}

		e := echo.New()
		e.HideBanner = true
		e.Debug = config.IsDevMode()
		router.Router(e, func(ctx context.Context) (*mongodb.Verification, error) {
			return mongodb.VerifyAll(ctx, db.DB)
		})

		errCh := make(chan error, 1)
		go func() {
			var err error
			if config.TLSEnabled() {
				err = e.StartTLS(config.ServerConfig.Addr, config.ServerConfig.CertFile, config.ServerConfig.KeyFile)
			} else {
				err = e.Start(config.ServerConfig.Addr)
			}
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Logger.Infow("shutting down", "timeout", config.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipInit, "skip-init", false, "serve without running the bootstrap first")
	rootCmd.AddCommand(serveCmd)
}
