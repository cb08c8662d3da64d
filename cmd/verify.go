package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thinkify/mongo-init/pkg/config/db"
	"github.com/thinkify/mongo-init/pkg/metrics"
	mongodb "github.com/thinkify/mongo-init/pkg/mongoDB"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the live database matches the expected schema",
	Long: `
Lists collections and indexes and prints every missing collection, missing
index or uniqueness mismatch. Exits non-zero on any mismatch. Makes no
changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := connect(ctx); err != nil {
			return err
		}
		defer disconnect()

		v, err := mongodb.VerifyAll(ctx, db.DB)
		if err != nil {
			return err
		}
		metrics.SchemaMismatches.Set(float64(len(v.Mismatches)))

		out := cmd.OutOrStdout()
		for _, m := range v.Mismatches {
			fmt.Fprintln(out, m)
		}
		if err := v.Err(); err != nil {
			return err
		}
		fmt.Fprintf(out, "Database %s matches the expected schema\n", v.Database)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
