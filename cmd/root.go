package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/edurisk/internal/config"
	"github.com/abhisek/edurisk/internal/logging"
	"github.com/abhisek/edurisk/internal/predictor"
	"github.com/abhisek/edurisk/internal/tracing"
)

// shutdownTimeout bounds the trace flush on exit.
const shutdownTimeout = 5 * time.Second

// env carries the resolved configuration and shared services for one
// command invocation.
type env struct {
	cfg      config.Config
	logger   *logging.Logger
	shutdown tracing.ShutdownFunc
}

func (e *env) client() *predictor.Client {
	return predictor.New(e.cfg.Predictor.Endpoint,
		predictor.WithTimeout(e.cfg.Predictor.Timeout),
		predictor.WithLogger(e.logger.Logger))
}

// setup resolves config and starts logging and tracing. console receives a
// copy of log output when non-nil.
func (e *env) setup(cmd *cobra.Command, console io.Writer) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	e.cfg = cfg

	logger, err := logging.New(cfg.Log, console)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	e.logger = logger

	shutdown, err := tracing.Init(cmd.Context(), cfg.Tracing, version)
	if err != nil {
		logger.Warn("tracing disabled", zap.Error(err))
		shutdown = func(context.Context) error { return nil }
	}
	e.shutdown = shutdown

	logger.Debug("configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("endpoint", cfg.Predictor.Endpoint),
		zap.Duration("timeout", cfg.Predictor.Timeout),
		zap.Bool("tracing", cfg.Tracing.Enabled))
	return nil
}

func (e *env) teardown() {
	if e.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := e.shutdown(ctx); err != nil && e.logger != nil {
			e.logger.Warn("flush traces", zap.Error(err))
		}
		cancel()
	}
	if e.logger != nil {
		_ = e.logger.Close()
	}
}

// newRootCmd builds the command tree. The returned env must be torn down
// after execution; post-run hooks are skipped when a command fails.
func newRootCmd() (*cobra.Command, *env) {
	e := &env{}

	root := &cobra.Command{
		Use:   "edurisk",
		Short: "Student dropout risk assessment",
		Long: "EduRisk collects a student profile in a short wizard, asks a prediction " +
			"service for a dropout risk assessment and presents the counseling report.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			var console io.Writer
			// The TUI owns the terminal, so only subcommands tee logs.
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose && cmd.HasParent() {
				console = cmd.ErrOrStderr()
			}
			return e.setup(cmd, console)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, e)
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Path to a config file (default $XDG_CONFIG_HOME/edurisk/config.yaml)")
	pf.String("endpoint", "", "Prediction service base URL (overrides EDURISK_PREDICTOR_ENDPOINT)")
	pf.Duration("timeout", 0, "Prediction request timeout")
	pf.String("log-file", "", "Path to the log file")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.BoolP("verbose", "v", false, "Also write logs to stderr (subcommands only)")

	root.AddCommand(newPredictCmd(e))
	root.AddCommand(newReportCmd())
	root.AddCommand(newHealthCmd(e))
	root.AddCommand(newVersionCmd())
	return root, e
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	root, e := newRootCmd()
	defer e.teardown()
	return root.ExecuteContext(ctx)
}
