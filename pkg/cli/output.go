package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jguan/hoststat/pkg/report"
	"github.com/jguan/hoststat/pkg/sample"
)

type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case OutputText, OutputJSON, OutputYAML:
		return f, nil
	case "":
		return OutputText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: text, json, yaml)", s)
	}
}

type OutputOptions struct {
	Format OutputFormat
	Writer io.Writer
}

func NewOutputOptions() *OutputOptions {
	return &OutputOptions{
		Format: OutputText,
		Writer: os.Stdout,
	}
}

// FormatOutput serializes data for the structured formats. Text output is
// handled by the callers since each command has its own line layout.
func FormatOutput(data any, format OutputFormat) (string, error) {
	switch format {
	case OutputJSON:
		return formatJSON(data)
	case OutputYAML:
		return formatYAML(data)
	default:
		return "", fmt.Errorf("no structured encoding for output format %q", format)
	}
}

func formatJSON(data any) (string, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal JSON: %w", err)
	}
	return string(b) + "\n", nil
}

func formatYAML(data any) (string, error) {
	b, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal YAML: %w", err)
	}
	return string(b), nil
}

func PrintOutput(data any, opts *OutputOptions) error {
	output, err := FormatOutput(data, opts.Format)
	if err != nil {
		return err
	}

	fmt.Fprint(opts.Writer, output)
	return nil
}

// PrintReport writes the status line, or its structured summary when a
// structured format was requested.
func PrintReport(req sample.Request, results sample.Results, opts *OutputOptions) error {
	if opts.Format == OutputJSON || opts.Format == OutputYAML {
		return PrintOutput(report.Summarize(req, results), opts)
	}

	_, err := fmt.Fprintln(opts.Writer, report.Format(req, results))
	return err
}
