package main

import (
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/poflow/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|status|version|redo|reset] [args...]",
	Short: "Apply or inspect database migrations",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return err
		}
		defer db.Close()

		return database.Migrate(cmd.Context(), db, args[0], args[1:]...)
	},
}
