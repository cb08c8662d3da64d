package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thinkify/mongo-init/pkg/config"
	"github.com/thinkify/mongo-init/pkg/logger"
	"github.com/thinkify/mongo-init/pkg/metrics"
	mongodb "github.com/thinkify/mongo-init/pkg/mongoDB"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Ensure collections and indexes exist (default command)",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := connect(ctx); err != nil {
		metrics.BootstrapFailures.WithLabelValues("connect").Inc()
		writeTextfile()
		logger.Logger.Errorw("connect failed", "database", config.DBConfig.Database, "error", err)
		return err
	}
	defer disconnect()

	report, err := runBootstrap(ctx)
	writeTextfile()

	if err != nil {
		logger.Logger.Errorw("bootstrap failed", "database", config.DBConfig.Database, "error", err)
		return err
	}

	logger.Logger.Infow("bootstrap complete",
		"database", report.Database,
		"created", report.CollectionsCreated,
		"existing", report.CollectionsExisting,
		"indexes", report.Indexes,
		"duration", report.Duration,
	)
	fmt.Fprintln(cmd.OutOrStdout(), mongodb.SuccessMessage)
	return nil
}

func writeTextfile() {
	path := config.BootstrapConfig.MetricsTextfile
	if err := metrics.WriteTextfile(path); err != nil {
		logger.Logger.Warnw("metrics textfile write failed", "path", path, "error", err)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
