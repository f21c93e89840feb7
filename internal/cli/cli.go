package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/blueprintgo/internal/app"
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
	flagSet := flag.NewFlagSet("blueprintgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
blueprintgo - compiles visual script graphs into HOI4 mod scripts.

Usage:
  blueprintgo [options] GRAPH_PATH
  blueprintgo [options] -serve-port PORT
  blueprintgo [options] -watch URL

Arguments:
  GRAPH_PATH
    Path to a graph snapshot (.json) exported by the editor.

Options:
`)
		flagSet.PrintDefaults()
	}

	graphFlag := flagSet.String("graph", "", "Path to the graph snapshot.")
	gFlag := flagSet.String("g", "", "Path to the graph snapshot (shorthand).")
	outFlag := flagSet.String("out", "", "Write the script to this file instead of stdout.")
	modulesPathFlag := flagSet.String("modules-path", "", "File or directory with extra node-kind manifests (.hcl).")
	namespaceFlag := flagSet.String("namespace", "", "Target namespace. Defaults to 'my_mod'.")
	scriptTypeFlag := flagSet.String("script-type", "event", "Script type: 'event', 'decision', 'national_focus' or 'idea'.")
	commentsFlag := flagSet.Bool("comments", false, "Emit a comment banner before each node.")
	fanInFlag := flagSet.Bool("allow-exec-fan-in", false, "Accept exec inputs driven by several outputs.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	servePortFlag := flagSet.Int("serve-port", 0, "Serve the build API on this port instead of compiling a file.")
	watchFlag := flagSet.String("watch", "", "socket.io URL of an editor to rebuild for on every 'build' event.")
	watchNamespaceFlag := flagSet.String("watch-namespace", "/", "socket.io namespace used with -watch.")
	publishFlag := flagSet.String("publish", "", "Publish scripts to a directory, or to S3 with 's3' (BLUEPRINT_S3_* environment).")
	cacheSizeFlag := flagSet.Int("cache-size", 256, "Number of compile results kept in memory.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *graphFlag != "" {
		path = *graphFlag
	} else if *gFlag != "" {
		path = *gFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}

	if path == "" && *servePortFlag <= 0 && *watchFlag == "" {
		slog.Debug("Nothing to do, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		GraphPath:       path,
		ModulesPath:     *modulesPathFlag,
		OutPath:         *outFlag,
		Namespace:       *namespaceFlag,
		ScriptType:      strings.ToLower(*scriptTypeFlag),
		EmitComments:    *commentsFlag,
		AllowExecFanIn:  *fanInFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
		ServePort:       *servePortFlag,
		WatchURL:        *watchFlag,
		WatchNamespace:  *watchNamespaceFlag,
		Publish:         *publishFlag,
		CacheSize:       *cacheSizeFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "mode", config.Mode())
	return config, false, nil
}
