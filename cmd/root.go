package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thinkify/mongo-init/pkg/config"
	"github.com/thinkify/mongo-init/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "thinkify-init",
	Short: "Provision the thinkify MongoDB collections and indexes",
	Long: `
Ensures the thinkify database holds its collections (users, tasks, posts,
products) and indexes (unique users.email, userId on the others), then
prints a single confirmation line. Safe to run any number of times.

Connection settings come from the environment (MONGODB_URI, MONGODB_USER,
MONGODB_PASSWORD, MONGODB_DATABASE) or a .env file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadAll()
	},
	RunE: runInit,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
