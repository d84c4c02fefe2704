// Package cli parses command-line arguments into an app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/peterwwillis/bashdag/internal/app"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("bashdag", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
bashdag - a declarative shell task orchestrator.

Usage:
  bashdag [options] MANIFEST [TASK ...]

Arguments:
  MANIFEST
    Path to a task manifest: a single .hcl or .toml file, or a directory
    searched recursively for .hcl files.
  TASK
    Explicit task names to start the walk from. Defaults to the graph
    roots (tasks with no dependencies).

Options:
`)
		flagSet.PrintDefaults()
	}

	manifestFlag := flagSet.String("manifest", "", "Path to the manifest file or directory.")
	mFlag := flagSet.String("m", "", "Path to the manifest file or directory (shorthand).")
	showFlag := flagSet.Bool("show", false, "Render the graph instead of running it. Default mode when -run is not given.")
	runFlag := flagSet.Bool("run", false, "Execute each task's program in dependency order.")
	formatFlag := flagSet.String("format", "text", "Show output format. Options: 'text', 'yaml' or 'json'.")
	noForwardFlag := flagSet.Bool("no-forward", false, "Do not walk the dependency (forward) direction.")
	noInverseFlag := flagSet.Bool("no-inverse", false, "Do not walk the dependent (inverse) direction.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	rest := flagSet.Args()
	path := ""
	if *manifestFlag != "" {
		path = *manifestFlag
	} else if *mFlag != "" {
		path = *mFlag
	} else if len(rest) > 0 {
		path = rest[0]
		rest = rest[1:]
	}

	if path == "" {
		slog.Debug("No manifest path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	format := strings.ToLower(*formatFlag)
	switch format {
	case "text", "yaml", "json":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid format: %q is not 'text', 'yaml' or 'json'", *formatFlag)}
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
		ManifestPath: path,
		Targets:      rest,
		Show:         *showFlag,
		Run:          *runFlag,
		Format:       format,
		Forward:      !*noForwardFlag,
		Inverse:      !*noInverseFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
