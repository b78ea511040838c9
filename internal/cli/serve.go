package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yukikurage/freelance-tracker-api/internal/app"
	"go.uber.org/zap"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Load the document store and serve the API until SIGINT or SIGTERM.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to initialize application", zap.Error(err))
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("Failed to close storage backend", zap.Error(err))
		}
	}()

	return a.Run(ctx)
}

