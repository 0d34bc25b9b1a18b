// Command poctl runs maintenance tasks against the purchase order
// database: migrations, reconciliation, archiving and reports.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/poflow/internal/app"
	"github.com/MrJamesThe3rd/poflow/internal/config"
	"github.com/MrJamesThe3rd/poflow/internal/logger"
)

var (
	cfg *config.Config
	log *logger.Logger

	rootCmd = &cobra.Command{
		Use:           "poctl",
		Short:         "Maintenance commands for the purchase order service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()

			var err error

			cfg, err = config.Load()
			if err != nil {
				return err
			}

			log = app.NewLogger(cfg)

			return nil
		},
	}
)

func main() {
	rootCmd.AddCommand(migrateCmd, reconcileCmd, archiveCmd, tokenCmd, spendCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func openApp(cmd *cobra.Command) (*app.App, error) {
	return app.New(cmd.Context(), cfg, log)
}
