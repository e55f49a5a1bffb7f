package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/specialistvlad/easycompile/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("easycompile", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
Easy Compile - batch-compiles JavaScript sources into bytecode, keeping backups.

Usage:
  easycompile [options] [TARGET]

Arguments:
  TARGET
    A project type from the configuration, a single .js file or a directory.
    Without TARGET an interactive prompt asks for one.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", app.DefaultConfigPath, "Path to the configuration file (.hcl, .json or .toml).")
	cFlag := flagSet.String("c", "", "Shorthand for -config. Cannot be combined with it.")
	backupDirFlag := flagSet.String("backup-dir", "", "Directory for source backups. Overrides the configuration.")
	failFastFlag := flagSet.Bool("fail-fast", false, "Stop a batch at the first file that fails.")
	delayFlag := flagSet.Duration("report-delay", time.Second, "Pause before printing the summary.")
	noInteractiveFlag := flagSet.Bool("no-interactive", false, "Never ask questions, even on a terminal.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one target, got %d", flagSet.NArg())}
	}

	set := map[string]bool{}
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["config"] && set["c"] {
		return nil, false, &ExitError{Code: 2, Message: "-c and -config are the same option; give only one"}
	}
	configPath, explicit := *configFlag, set["config"]
	if set["c"] {
		configPath, explicit = *cFlag, true
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Target:         flagSet.Arg(0),
		HasTarget:      flagSet.NArg() == 1,
		ConfigPath:     configPath,
		ConfigExplicit: explicit,
		BackupDir:      *backupDirFlag,
		FailFast:       *failFastFlag,
		ReportDelay:    *delayFlag,
		NoInteractive:  *noInteractiveFlag,
		LogFormat:      logFormat,
		LogLevel:       logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
