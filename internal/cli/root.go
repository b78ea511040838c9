// Package cli defines the freelance-tracker command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/freelance-tracker-api/internal/config"
	"github.com/yukikurage/freelance-tracker-api/internal/logging"
	"go.uber.org/zap"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "freelance-tracker",
	Short: "Freelance time-tracking and invoicing API",
	Long: `Serves the freelance tracker REST API: user accounts with bearer
tokens, clients, projects, time entries and invoices, all kept in a single
JSON document persisted after every change.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to an optional .env file")
}

// Execute runs the command tree. Without a subcommand the server is started.
func Execute() error {
	return rootCmd.Execute()
}

// bootstrap loads configuration and builds the logger shared by every command.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := logging.New(cfg.GinMode, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log, nil
}
