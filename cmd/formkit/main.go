package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/internal/config"
	"github.com/goliatone/go-formkit/internal/logging"
	"github.com/goliatone/go-formkit/internal/logging/gologger"
	"github.com/goliatone/go-formkit/pkg/interfaces"
)

type command struct {
	summary string
	run     func(ctx context.Context, env *environment, args []string) error
}

var commands = map[string]command{
	"render":  {summary: "render a schema to HTML", run: runRender},
	"fill":    {summary: "fill a schema interactively and print or publish the payload", run: runFill},
	"targets": {summary: "list the forms an OpenAPI document can produce", run: runTargets},
	"import":  {summary: "build a post payload from markdown files", run: runImport},
	"lint":    {summary: "report unsupported x-formkit extensions in OpenAPI documents", run: runLint},
}

// environment is shared by every subcommand.
type environment struct {
	cfg    *config.Config
	logger interfaces.Logger
}

func main() {
	flag.Usage = usage
	configPath := flag.String("config", os.Getenv("FORMKIT_CONFIG"), "YAML config file (optional)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "formkit: %v\n", err)
		os.Exit(1)
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Focus:  cfg.Log.Focus,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "formkit: %v\n", err)
		os.Exit(1)
	}
	env := &environment{
		cfg:    cfg,
		logger: logging.ModuleLogger(provider, logging.CLIModule),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.run(ctx, env, args[1:]); err != nil {
		env.logger.Error("command failed", "command", args[0], "error", err)
		fmt.Fprintf(os.Stderr, "formkit %s: %v\n", args[0], err)
		stop()
		os.Exit(1)
	}
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s [-config file] <command> [flags]\n\nCommands:\n", filepath.Base(os.Args[0]))
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %-8s %s\n", name, commands[name].summary)
	}
	fmt.Fprintf(out, "\nEnvironment variables prefixed with %s_ override config keys, e.g. %s_LOG_LEVEL.\n", config.EnvPrefix, config.EnvPrefix)
}

func writeOutput(path string, data []byte) error {
	if strings.TrimSpace(path) == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "written to %s\n", path)
	return nil
}
