package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/shibukawa/tsqlschema"
	"github.com/shibukawa/tsqlschema/parser"
)

// fileReport is the rendered outcome of one script
type fileReport struct {
	File   string       `json:"file" yaml:"file"`
	Tables []tableEntry `json:"tables" yaml:"tables"`
}

type tableEntry struct {
	Statement int                       `json:"statement" yaml:"statement"`
	Table     *tsqlschema.TableMetadata `json:"table,omitempty" yaml:"table,omitempty"`
	Error     string                    `json:"error,omitempty" yaml:"error,omitempty"`
}

func newFileReport(path string, results []parser.Result) fileReport {
	report := fileReport{File: path, Tables: make([]tableEntry, 0, len(results))}

	for _, result := range results {
		entry := tableEntry{Statement: result.Ordinal, Table: result.Table}
		if result.Err != nil {
			entry.Error = result.Err.Error()
		}

		report.Tables = append(report.Tables, entry)
	}

	return report
}

func render(w io.Writer, output tsqlschema.OutputConfig, reports []fileReport) error {
	switch output.Format {
	case tsqlschema.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(reports); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}

		return nil
	case tsqlschema.FormatYAML:
		data, err := yaml.Marshal(reports)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}

		_, err = w.Write(data)

		return err
	default:
		return renderText(w, output.ColorEnabled(), reports)
	}
}

type palette struct {
	file, table, column, key, failure *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		file:    color.New(color.FgBlue, color.Bold),
		table:   color.New(color.FgCyan, color.Bold),
		column:  color.New(color.FgWhite),
		key:     color.New(color.FgMagenta),
		failure: color.New(color.FgRed),
	}

	if !enabled {
		for _, c := range []*color.Color{p.file, p.table, p.column, p.key, p.failure} {
			c.DisableColor()
		}
	}

	return p
}

func renderText(w io.Writer, enabled bool, reports []fileReport) error {
	p := newPalette(enabled)

	for i, report := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}

		p.file.Fprintf(w, "-- %s\n", report.File)

		for _, entry := range report.Tables {
			if entry.Error != "" {
				p.failure.Fprintf(w, "statement %d: %s\n", entry.Statement, entry.Error)
				continue
			}

			renderTable(w, p, entry.Table)
		}
	}

	return nil
}

func renderTable(w io.Writer, p palette, table *tsqlschema.TableMetadata) {
	p.table.Fprintf(w, "TABLE %s\n", table.Name)

	width := 0
	for _, name := range table.Columns.Names() {
		width = max(width, len(name))
	}

	for name, column := range table.Columns.All() {
		p.column.Fprintf(w, "  %-*s  ", width, name)

		if column.PrimaryKey != nil || column.ForeignKey != nil {
			p.key.Fprintln(w, column.String())
		} else {
			fmt.Fprintln(w, column.String())
		}
	}

	for _, fk := range table.MultiForeignKeys {
		p.key.Fprintf(w, "  %s\n", fk.String())
	}
}
