package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/specialistvlad/easycompile/internal/compiler"
	"github.com/specialistvlad/easycompile/internal/config"
	"github.com/specialistvlad/easycompile/internal/ctxlog"
	"github.com/specialistvlad/easycompile/internal/pipeline"
	"github.com/specialistvlad/easycompile/internal/resolve"
	"github.com/specialistvlad/easycompile/internal/session"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	logger   *slog.Logger
	config   *Config
	settings *config.Settings
	loop     *session.Loop
}

// Option customises an App at construction time.
type Option func(*options)

type options struct {
	compiler    compiler.Compiler
	interactive bool
	now         func() time.Time
}

// WithCompiler replaces the command-backed compiler from the configuration.
func WithCompiler(c compiler.Compiler) Option {
	return func(o *options) { o.compiler = c }
}

// WithInteractive marks the session as attached to a terminal. It has no
// effect when Config.NoInteractive is set.
func WithInteractive(interactive bool) Option {
	return func(o *options) { o.interactive = interactive }
}

// WithClock overrides the clock used for backup names.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewApp is the constructor for the main application. It loads the
// configuration once; a missing or invalid configuration is returned as an
// error before any source file is touched. Console output goes to outW and
// log records to logW.
func NewApp(in io.Reader, outW, logW io.Writer, appConfig *Config, opts ...Option) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	settings, err := loadSettings(ctx, appConfig.ConfigPath, appConfig.ConfigExplicit)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.BackupDir != "" {
		settings = settings.WithBackupDir(appConfig.BackupDir)
	}

	if o.compiler == nil {
		cmd, err := compiler.NewCommand(settings.Compiler())
		if err != nil {
			return nil, fmt.Errorf("failed to configure compiler: %w", err)
		}
		o.compiler = cmd
	}

	interactive := o.interactive && !appConfig.NoInteractive
	console := session.NewConsole(in, outW, interactive)
	runner := pipeline.New(settings, o.compiler, pipeline.Options{
		FailFast: appConfig.FailFast,
		Observer: console,
		Now:      o.now,
	})
	loop := session.NewLoop(console, resolve.New(settings), runner, settings.ProjectTypeNames(), appConfig.ReportDelay)
	logger.Debug("Session wired.", "interactive", interactive, "backup_dir", settings.BackupDir())

	return &App{
		logger:   logger,
		config:   appConfig,
		settings: settings,
		loop:     loop,
	}, nil
}

// Settings returns the loaded configuration. This is primarily for testing.
func (a *App) Settings() *config.Settings {
	return a.settings
}
