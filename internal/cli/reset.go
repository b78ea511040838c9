package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/freelance-tracker-api/internal/app"
	"github.com/yukikurage/freelance-tracker-api/internal/store"
	"go.uber.org/zap"
)

func init() {
	rootCmd.AddCommand(resetCmd)
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the stored document with the empty default",
	Long: `Overwrite the configured backend with a document holding every
collection and no records. Existing data is lost.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func runReset(cmd *cobra.Command, _ []string) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	backend, closeBackend, err := app.OpenBackend(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeBackend() }()

	s := store.New(backend, log)
	if !s.Reset(cmd.Context()) {
		return errors.New("failed to write default document")
	}

	log.Info("Document reset", zap.String("backend", backend.Name()))
	fmt.Fprintln(cmd.OutOrStdout(), "Document reset to defaults")
	return nil
}
