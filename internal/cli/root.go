package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stay-js/job-keeper/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "jobkeeper",
	Short: "JobKeeper - track paid jobs, positions and expenses",
	Long: `JobKeeper records the jobs you worked, the positions (roles with an hourly wage)
they were worked as and the expenses of each month, and reports payouts per position.

Configuration is read from a YAML file and JOBKEEPER_* environment variables.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config/application.yaml", "Path to the YAML configuration file")
}

func loadConfig() (config.Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Application{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
