// Package main is the entry point for the grapnel window pinner.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mkelly/grapnel/internal/app"
	"github.com/mkelly/grapnel/internal/config"
	"github.com/mkelly/grapnel/internal/ui"
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
	flags := parseFlags()

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}

	presenter, err := buildPresenter(flags.presenter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create presenter: %v\n", err)
		return 1
	}

	application, err := app.New(app.Options{
		Config:     cfg,
		ConfigPath: flags.configPath,
		Presenter:  presenter,
		ScriptPath: flags.scriptPath,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// buildPresenter maps the -ui flag to a presenter.
func buildPresenter(kind string) (ui.Presenter, error) {
	switch kind {
	case "terminal":
		return ui.NewTerminal()
	case "log":
		return ui.NewLogPresenter(os.Stderr), nil
	case "none":
		return ui.Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown ui %q (terminal, log, none)", kind)
	}
}

type cliFlags struct {
	configPath string
	scriptPath string
	logLevel   string
	presenter  string
}

func parseFlags() cliFlags {
	var flags cliFlags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&flags.configPath, "config", config.DefaultPath(), "Path to configuration file")
	flag.StringVar(&flags.configPath, "c", config.DefaultPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&flags.scriptPath, "script", "", "Lua script to load (overrides config)")
	flag.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&flags.presenter, "ui", "log", "Menu presenter (terminal, log, none)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Grapnel - pin windows to hotkey slots\n\n")
		fmt.Fprintf(os.Stderr, "Usage: grapnel [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  grapnel                      Run with the default config\n")
		fmt.Fprintf(os.Stderr, "  grapnel -c grapnel.toml      Run with a specific config\n")
		fmt.Fprintf(os.Stderr, "  grapnel -script init.lua     Load custom Lua actions\n")
		fmt.Fprintf(os.Stderr, "  grapnel -ui terminal         Render the menu with tcell\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Grapnel %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch flags.logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", flags.logLevel)
		os.Exit(2)
	}

	return flags
}
