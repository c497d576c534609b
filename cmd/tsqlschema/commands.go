package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/shibukawa/tsqlschema"
	"github.com/shibukawa/tsqlschema/parser"
)

// ParseFlags are the options shared by the extracting commands. Zero values
// keep the configured setting.
type ParseFlags struct {
	Format  string `help:"Output format (text, json, yaml)" short:"f"`
	Isolate bool   `help:"Keep parsing after a statement fails"`
	Workers int    `help:"Number of statements parsed concurrently"`
}

// CompareCmd extracts the metadata of the source script. The updated script
// is required and checked but not diffed.
type CompareCmd struct {
	ParseFlags

	Source  string `help:"Source SQL script" short:"s" required:""`
	Updated string `help:"Updated SQL script" short:"u" required:""`
}

// Run executes the compare command
func (cmd *CompareCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx, cmd.ParseFlags)
	if err != nil {
		return err
	}

	for _, path := range []string{cmd.Source, cmd.Updated} {
		if err := requireFile(path); err != nil {
			return err
		}
	}

	results, err := extract(ctx, config, cmd.Source)
	if err != nil {
		return err
	}

	reports := []fileReport{newFileReport(cmd.Source, results)}
	if err := render(ctx.Stdout, config.Output, reports); err != nil {
		return err
	}

	return summarize(ctx, config, reports)
}

// InspectCmd extracts the metadata of every given script
type InspectCmd struct {
	ParseFlags

	Files []string `arg:"" help:"SQL scripts to inspect" type:"path"`
}

// Run executes the inspect command
func (cmd *InspectCmd) Run(ctx *Context) error {
	config, err := loadConfig(ctx, cmd.ParseFlags)
	if err != nil {
		return err
	}

	reports := make([]fileReport, 0, len(cmd.Files))

	for _, path := range cmd.Files {
		if err := requireFile(path); err != nil {
			return err
		}

		results, err := extract(ctx, config, path)
		if err != nil {
			return err
		}

		reports = append(reports, newFileReport(path, results))
	}

	if err := render(ctx.Stdout, config.Output, reports); err != nil {
		return err
	}

	return summarize(ctx, config, reports)
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) || (err == nil && info.IsDir()) {
		return fmt.Errorf("%w: %s", ErrInputFileNotExist, path)
	}

	if err != nil {
		return fmt.Errorf("failed to access %s: %w", path, err)
	}

	return nil
}

func extract(ctx *Context, config *tsqlschema.Config, path string) ([]parser.Result, error) {
	opts := parser.Options{
		Logger:          ctx.logger(),
		IsolateFailures: config.Parse.IsolateFailures,
		Workers:         config.Parse.Workers,
		BatchSeparator:  config.Parse.Separator(),
	}

	results, err := parser.ConvertFileToMetadata(path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to process %s: %w", path, err)
	}

	return results, nil
}

// summarize prints the status line to stderr and reports isolated failures
// as the command error.
func summarize(ctx *Context, config *tsqlschema.Config, reports []fileReport) error {
	tables, failures := 0, 0

	for _, report := range reports {
		for _, entry := range report.Tables {
			if entry.Error != "" {
				failures++
			} else {
				tables++
			}
		}
	}

	if !ctx.Quiet {
		status := color.New(color.FgGreen)
		if failures > 0 {
			status = color.New(color.FgYellow)
		}

		if !config.Output.ColorEnabled() {
			status.DisableColor()
		}

		status.Fprintf(ctx.Stderr, "Extracted %d table(s) from %d file(s)", tables, len(reports))

		if failures > 0 {
			status.Fprintf(ctx.Stderr, ", %d statement(s) failed", failures)
		}

		fmt.Fprintln(ctx.Stderr)
	}

	if failures > 0 {
		return fmt.Errorf("%w: %d", ErrStatementsFailed, failures)
	}

	return nil
}
