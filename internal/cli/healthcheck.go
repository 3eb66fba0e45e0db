package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

var healthcheckURL string

var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that a running server can reach its database",
	Long: `Call /healthz of a running server and exit non-zero unless it answers 200.
Meant for container health checks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		target := healthcheckURL
		if target == "" {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			target = fmt.Sprintf("http://localhost:%d/healthz", cfg.Port)
		}
		return checkHealth(&http.Client{Timeout: 5 * time.Second}, target)
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)

	healthcheckCmd.Flags().StringVar(&healthcheckURL, "url", "", "Health endpoint, defaults to localhost on the configured port")
}

func checkHealth(client *http.Client, target string) error {
	resp, err := client.Get(target)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: %s answered %d", target, resp.StatusCode)
	}
	return nil
}
