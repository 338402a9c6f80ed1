package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/edurisk/internal/app"
)

// runApp builds the prediction client and launches the TUI.
func runApp(cmd *cobra.Command, e *env) error {
	client := e.client()
	e.logger.Info("starting tui", zap.String("endpoint", client.Endpoint()))

	err := app.Run(cmd.Context(), app.Options{
		Predictor: client,
		Health:    client,
		Logger:    e.logger.Logger,
	})
	if err != nil {
		e.logger.Error("tui exited", zap.Error(err))
		return fmt.Errorf("run app: %w", err)
	}
	e.logger.Info("tui exited")
	return nil
}
