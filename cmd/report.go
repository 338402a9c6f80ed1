package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/edurisk/internal/report"
)

func newReportCmd() *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "report [file|-]",
		Short: "Render a saved prediction response",
		Long: "Render a prediction service response as a counseling report. " +
			"Reads from stdin when the file is omitted or \"-\".",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			var raw []byte
			if len(args) == 0 || args[0] == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
			} else {
				raw, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read response: %w", err)
			}

			return writeReport(cmd.OutOrStdout(), json.RawMessage(raw), f)
		},
	}
	c.Flags().StringVarP(&format, "format", "f", string(report.FormatText), "Output format: text, markdown or html")
	return c
}

// writeReport interprets raw and writes it in format f. Malformed input
// renders the no-data fallback rather than failing.
func writeReport(w io.Writer, raw json.RawMessage, f report.Format) error {
	out, err := report.Render(report.Interpret(raw), f)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	_, err = fmt.Fprint(w, out)
	return err
}
