package app

import (
	"github.com/spf13/cobra"

	"github.com/yacook/yacook/internal/cache"
	"github.com/yacook/yacook/internal/db"
	"github.com/yacook/yacook/internal/importer"
)

func init() { //nolint: gochecknoinits
	importCmd.Flags().StringVar(&importFile, "file", "", "CSV file to import, defaults to import.path of the config")
	importCmd.Flags().UintVar(&importAuthor, "author", 0, "ID of the author of the imported recipes, defaults to import.authorID")

	rootCmd.AddCommand(importCmd)
}

var (
	importFile   string
	importAuthor uint

	importCmd = &cobra.Command{
		Use:   "import",
		Short: "Import recipes from a CSV export",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return loadConfig()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			gdb, err := db.Open(&cfg)
			if err != nil {
				return err //nolint:wrapcheck
			}

			if err := db.Migrate(gdb); err != nil {
				return err //nolint:wrapcheck
			}

			path, author := cfg.Import.Path, cfg.Import.AuthorID
			if importFile != "" {
				path = importFile
			}

			if importAuthor != 0 {
				author = importAuthor
			}

			c, err := cache.New(cfg.Cache)
			if err != nil {
				return err //nolint:wrapcheck
			}

			res, err := importer.New(gdb, author).WithCache(c).ImportFile(cmd.Context(), path)
			if err != nil {
				return err //nolint:wrapcheck
			}

			cmd.Printf("imported %d recipes, created %d groups\n", res.Recipes, res.GroupsCreated)

			return nil
		},
	}
)
