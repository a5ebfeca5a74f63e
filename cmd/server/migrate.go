package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"todo-notes/internal/config"
	"todo-notes/internal/repository/sqlite"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the SQLite schema",
	Long: `Applies the embedded schema to the database configured in database.path.
The schema is idempotent, running it twice is safe.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cfg.Database.Driver != "sqlite" {
			return fmt.Errorf("migrate needs the sqlite driver, got %q", cfg.Database.Driver)
		}

		// Open применяет схему
		db, err := sqlite.Open(cmd.Context(), cfg.Database.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "schema applied to %s\n", cfg.Database.Path)
		return nil
	},
}
