package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newHealthCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the prediction service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := e.client()
			h, err := client.Health(cmd.Context())
			if err != nil {
				e.logger.Warn("health check failed", zap.String("endpoint", client.Endpoint()), zap.Error(err))
				return fmt.Errorf("health check %s: %w", client.Endpoint(), err)
			}

			status := h.Status
			if status == "" {
				status = "unknown"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Prediction Service")
			fmt.Fprintln(out, strings.Repeat("─", 40))
			fmt.Fprintf(out, "%-20s %s\n", "Endpoint", client.Endpoint())
			fmt.Fprintf(out, "%-20s %s\n", "Status", status)
			fmt.Fprintf(out, "%-20s %s\n", "Model loaded", yesNo(h.ModelLoaded))
			fmt.Fprintf(out, "%-20s %s\n", "Database connected", yesNo(h.DatabaseConnected))
			return nil
		},
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
