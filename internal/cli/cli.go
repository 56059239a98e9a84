package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/scopegraph/internal/app"
	"github.com/specialistvlad/scopegraph/internal/config"
	"github.com/specialistvlad/scopegraph/internal/validator"
)

// Exit codes.
const (
	ExitDefects = 1
	ExitUsage   = 2
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
// Explicit flags win over the configuration file, which wins over defaults.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("scopegraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
scopegraph - compile-time validation of scoped dependency graphs.

Usage:
  scopegraph [options] [DECL_PATH...]

Arguments:
  DECL_PATH
    Path to a .hcl, .yaml or .yml file, or a directory containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	declsFlag := flagSet.String("decls", "", "Path to the declaration file or directory.")
	dFlag := flagSet.String("d", "", "Path to the declaration file or directory (shorthand).")
	configFlag := flagSet.String("config", "", "Optional YAML configuration file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", validator.DefaultWorkers, "Number of concurrent analysis workers.")
	formatFlag := flagSet.String("format", app.FormatTree, "Output format. Options: 'tree' or 'defects'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	file, err := config.LoadFile(*configFlag)
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	set := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })
	pick := func(name, flagVal, fileVal string) string {
		if !set[name] && fileVal != "" {
			return fileVal
		}
		return flagVal
	}

	var paths []string
	switch {
	case *declsFlag != "":
		paths = append(paths, *declsFlag)
	case *dFlag != "":
		paths = append(paths, *dFlag)
	}
	paths = append(paths, flagSet.Args()...)
	if len(paths) == 0 {
		paths = file.Decls
	}
	slog.Debug("Declaration paths determined.", "paths", paths)

	if len(paths) == 0 {
		slog.Debug("No declaration path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(pick("log-format", *logFormatFlag, file.LogFormat))
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(pick("log-level", *logLevelFlag, file.LogLevel))
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	workers := *workersFlag
	if !set["workers"] && file.Workers != 0 {
		workers = file.Workers
	}

	cfg, err := app.NewConfig(app.Config{
		DeclPaths: paths,
		LogFormat: logFormat,
		LogLevel:  logLevel,
		Workers:   workers,
		Format:    strings.ToLower(pick("format", *formatFlag, file.Format)),
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
