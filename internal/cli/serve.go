package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/stay-js/job-keeper/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Apply pending migrations and serve the HTTP API until interrupted.

Examples:
  jobkeeper serve
  JOBKEEPER_PORT=9000 jobkeeper serve --config /etc/jobkeeper.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		application, err := app.NewApplication(ctx, cfg)
		if err != nil {
			return err
		}
		return application.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
