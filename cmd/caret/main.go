// Package main is the entry point for the caret editor.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dshills/caret/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, logPath := parseFlags()

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		cfg.LogOutput = f
	}

	application, err := app.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		application.RequestQuit()
	}()

	runErr := application.Run()
	closeErr := application.Close()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		return 1
	}
	if closeErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", closeErr)
		return 1
	}
	return 0
}

func parseFlags() (app.Config, string) {
	var cfg app.Config
	var logPath string
	var showVersion bool

	flag.StringVar(&cfg.ConfigPath, "config", defaultConfigPath(), "Path to the options file (TOML or YAML)")
	flag.StringVar(&cfg.ConfigPath, "c", defaultConfigPath(), "Path to the options file (shorthand)")
	flag.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&logPath, "log", "", "Append log lines to this file")
	flag.BoolVar(&cfg.ReadOnly, "readonly", false, "Open the file read-only")
	flag.BoolVar(&cfg.ReadOnly, "R", false, "Open the file read-only (shorthand)")
	flag.StringVar(&cfg.Mode, "mode", "", "Editing mode: text, c, html, auto or lua:<script>")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "caret - a terminal text editor\n\n")
		fmt.Fprintf(out, "Usage: caret [options] [file]\n\n")
		fmt.Fprintf(out, "Options:\n")
		flag.PrintDefaults()
		printKeys(out)
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("caret %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", cfg.LogLevel)
		os.Exit(2)
	}

	if flag.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: caret edits one file at a time")
		os.Exit(2)
	}
	cfg.Path = flag.Arg(0)
	return cfg, logPath
}

// defaultConfigPath is caret.toml in the user config directory, or empty
// when there is none.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "caret", "caret.toml")
}

func printKeys(out io.Writer) {
	fmt.Fprintf(out, "\nKeys:\n")
	fmt.Fprintf(out, "  Ctrl-S save      Ctrl-Q quit        Ctrl-Z/Y undo/redo\n")
	fmt.Fprintf(out, "  Ctrl-C/X/V copy, cut, paste         Ctrl-A select all\n")
	fmt.Fprintf(out, "  Ctrl-F find      Ctrl-G find next   Ctrl-R replace all\n")
	fmt.Fprintf(out, "  Ctrl-L jump to matching bracket     Alt-Up/Down move lines\n")
}
