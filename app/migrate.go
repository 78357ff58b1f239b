package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/yacook/yacook/internal/db"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadConfig()
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		gdb, err := db.Open(&cfg)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if err := db.Migrate(gdb); err != nil {
			return err //nolint:wrapcheck
		}

		log.Info().Str("engine", cfg.DB.Engine).Msg("database migrated")

		return nil
	},
}
