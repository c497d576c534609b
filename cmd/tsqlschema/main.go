package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/shibukawa/tsqlschema"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
	NoColor bool

	Stdout io.Writer
	Stderr io.Writer
}

// logger returns the parse trace logger. Tracing is only enabled in verbose mode.
func (c *Context) logger() *slog.Logger {
	if !c.Verbose {
		return nil
	}

	return slog.New(slog.NewTextHandler(c.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// CLI is the command line definition
type CLI struct {
	Config  string     `help:"Configuration file path" default:"tsqlschema.yaml"`
	Verbose bool       `help:"Trace parsing to stderr" short:"v"`
	Quiet   bool       `help:"Suppress status messages" short:"q"`
	NoColor bool       `help:"Disable colored output" name:"no-color"`
	Compare CompareCmd `cmd:"" default:"withargs" help:"Extract table metadata from the source of a comparison"`
	Inspect InspectCmd `cmd:"" help:"Extract table metadata from SQL files"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintln(ctx.Stdout, "tsqlschema v0.1.0")
	return nil
}

func main() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("tsqlschema"),
		kong.Description("Extract table metadata from T-SQL CREATE TABLE scripts"),
	)

	appCtx := &Context{
		Config:  cli.Config,
		Verbose: cli.Verbose,
		Quiet:   cli.Quiet,
		NoColor: cli.NoColor,
		Stdout:  color.Output,
		Stderr:  os.Stderr,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the configuration and applies the command line overrides.
func loadConfig(ctx *Context, flags ParseFlags) (*tsqlschema.Config, error) {
	config, err := tsqlschema.LoadConfig(ctx.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if flags.Format != "" {
		switch flags.Format {
		case tsqlschema.FormatText, tsqlschema.FormatJSON, tsqlschema.FormatYAML:
			config.Output.Format = flags.Format
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, flags.Format)
		}
	}

	if flags.Isolate {
		config.Parse.IsolateFailures = true
	}

	if flags.Workers > 0 {
		config.Parse.Workers = flags.Workers
	}

	if ctx.NoColor {
		disabled := false
		config.Output.Color = &disabled
	}

	return config, nil
}
