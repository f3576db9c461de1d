// Package cmd implements the specflow command line.
package cmd

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/specflow/internal/config"
	sferrors "github.com/felixgeelhaar/specflow/internal/errors"
	"github.com/felixgeelhaar/specflow/internal/generator"
	"github.com/felixgeelhaar/specflow/internal/log"
	"github.com/felixgeelhaar/specflow/internal/store"
	"github.com/felixgeelhaar/specflow/internal/telemetry"
	"github.com/felixgeelhaar/specflow/internal/ux"
	"github.com/felixgeelhaar/specflow/internal/version"
	"github.com/felixgeelhaar/specflow/internal/workflow"
)

// annotationLenient marks commands that run with an invalid configuration
// so it can be inspected or replaced.
const annotationLenient = "specflow/lenient-config"

// app holds the state shared by all commands of one invocation.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	identity generator.IdentitySource
	stdin    io.Reader

	cfg      *config.Config
	logger   *log.Logger
	repo     *store.Repository
	service  *workflow.Service
	span     trace.Span
	shutdown []func(context.Context) error
	command  string
	started  time.Time
}

func newApp() *app {
	return &app{
		identity: generator.SystemIdentity{},
		stdin:    os.Stdin,
	}
}

// ExecuteContext runs the command line with os.Args.
func ExecuteContext(ctx context.Context) error {
	return newApp().execute(ctx, nil, nil, nil)
}

// execute runs the root command with args (os.Args when nil) and releases
// the store and tracer afterwards, whether or not the command failed.
func (a *app) execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCommand(a)
	if args != nil {
		root.SetArgs(args)
	}
	if stdout != nil {
		root.SetOut(stdout)
	}
	if stderr != nil {
		root.SetErr(stderr)
	}

	err := root.ExecuteContext(ctx)
	a.close(ctx, err)
	return ux.EnhanceError(err)
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "specflow",
		Short: "Turn a feature goal into a prioritized backlog",
		Long: `specflow turns a feature goal, its target users, and optional constraints
into user stories, implementation tasks, and risks. Generation is rule based and
deterministic. The five most recent specs are kept for review, editing, and export.`,
		Version:           version.GetInfo().Short(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default is $HOME/.specflow/config.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text or json (overrides config)")

	root.AddCommand(
		newGenerateCommand(a),
		newListCommand(a),
		newShowCommand(a),
		newDeleteCommand(a),
		newExportCommand(a),
		newReviewCommand(a),
		newItemCommand(a),
		newRiskCommand(a),
		newConfigCommand(a),
		newDoctorCommand(a),
		newVersionCommand(),
	)
	return root
}

// setup loads configuration, then configures logging and tracing.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	lenient := cmd.Annotations[annotationLenient] != ""
	if err := cfg.Validate(); err != nil && !lenient {
		return err
	}
	a.cfg = cfg

	level, format := cfg.Log.Level, cfg.Log.Format
	if a.logLevel != "" {
		level = a.logLevel
	}
	if a.logFormat != "" {
		format = a.logFormat
	}
	logCfg := log.FromStrings(level, format, version.Version)
	logCfg.Output = log.NewOutput(cmd.ErrOrStderr())
	a.logger = log.New(logCfg)
	log.SetDefaultLogger(a.logger)

	telemetryCfg := telemetry.Config{
		ServiceName:    "specflow",
		ServiceVersion: version.Version,
		Enabled:        cfg.Telemetry.Enabled,
		Endpoint:       cfg.Telemetry.Endpoint,
		SampleRate:     cfg.Telemetry.SampleRate,
	}
	if shutdown, err := telemetry.InitProvider(cmd.Context(), telemetryCfg); err != nil {
		a.logger.Warn("tracing disabled", "error", err)
	} else {
		a.shutdown = append(a.shutdown, shutdown)
	}
	if shutdown, err := telemetry.InitMetricsProvider(cmd.Context(), telemetryCfg); err != nil {
		a.logger.Warn("metrics disabled", "error", err)
	} else {
		a.shutdown = append(a.shutdown, shutdown)
	}
	a.command = cmd.CommandPath()
	a.started = time.Now()

	ctx, span := telemetry.StartCommandSpan(cmd.Context(), cmd.CommandPath())
	a.span = span
	cmd.SetContext(ctx)

	a.logger.Debug("configuration loaded",
		"config_file", cfg.File,
		"storage_backend", cfg.Storage.Backend,
		"command", cmd.CommandPath(),
	)
	return nil
}

// workflow opens the configured store on first use. With ephemeral set the
// service is backed by memory and nothing reaches disk.
func (a *app) workflow(ctx context.Context, ephemeral bool) (*workflow.Service, error) {
	if a.service != nil {
		return a.service, nil
	}

	var backend store.Backend = store.NewMemoryBackend()
	if !ephemeral {
		path, err := a.cfg.StoragePath()
		if err != nil {
			return nil, sferrors.NewStoreOpenError(a.cfg.Storage.Backend, "~/"+config.DirName, err)
		}
		backend, err = store.OpenBackend(ctx, a.cfg.Storage.Backend, path)
		if err != nil {
			return nil, sferrors.NewStoreOpenError(a.cfg.Storage.Backend, path, err)
		}
	}

	a.repo = store.New(backend, store.WithLogger(a.logger), store.WithIdentity(a.identity))
	a.service = &workflow.Service{
		Engine:     generator.NewEngine(a.identity),
		Repository: a.repo,
		Logger:     a.logger,
		Delay:      a.cfg.Generate.Delay,
	}
	return a.service, nil
}

func (a *app) close(ctx context.Context, cmdErr error) {
	if a.span != nil {
		if cmdErr != nil {
			telemetry.RecordError(a.span, cmdErr)
		} else {
			telemetry.RecordSuccess(a.span)
		}
		a.span.End()
	}
	if a.repo != nil {
		if err := a.repo.Close(); err != nil && a.logger != nil {
			a.logger.Warn("closing store", "error", err)
		}
	}
	if a.command != "" {
		errorType := ""
		if cmdErr != nil {
			errorType = "unknown"
			if code, ok := sferrors.CodeOf(cmdErr); ok {
				errorType = string(code)
			}
		}
		telemetry.RecordCommand(ctx, a.command, time.Since(a.started), errorType)
	}
	for _, shutdown := range a.shutdown {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil && a.logger != nil {
			a.logger.Debug("telemetry shutdown", "error", err)
		}
	}
}
