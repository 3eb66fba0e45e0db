package cli

import (
	"github.com/spf13/cobra"
	"github.com/stay-js/job-keeper/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return database.Migrate(cfg.Database)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
