// Package app contains the core application logic for the rwc CLI tool.
// It wires sources to the counter and builds the report, separate from CLI concerns.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"

	"github.com/chriscorrea/rwc/internal/counter"
	"github.com/chriscorrea/rwc/internal/extract"
	"github.com/chriscorrea/rwc/internal/fetch"
	"github.com/chriscorrea/rwc/internal/spinner"
)

// ErrNoSourcesCounted is returned when every source failed.
var ErrNoSourcesCounted = errors.New("no source could be counted")

// OutputFormat defines the output format for results
type OutputFormat int

const (
	// wc-style columns (default)
	Text OutputFormat = iota
	// JSON output format
	JSON
)

// String returns the string representation of the output
func (f OutputFormat) String() string {
	switch f {
	case Text:
		return "Text"
	case JSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// Columns selects which metrics are reported.
type Columns struct {
	Lines  bool
	Words  bool
	Chars  bool
	Bytes  bool
	Tokens bool
}

// DefaultColumns matches plain `wc`: lines, words and bytes.
var DefaultColumns = Columns{Lines: true, Words: true, Bytes: true}

// Any reports whether at least one column is selected.
func (c Columns) Any() bool {
	return c.Lines || c.Words || c.Chars || c.Bytes || c.Tokens
}

// Config holds all configuration options for the rwc application.
type Config struct {
	Sources      []string     // URLs, file paths, or "-" for stdin
	Columns      Columns      // metrics to report; DefaultColumns when none selected
	HTML         bool         // count the readable text of HTML sources instead of raw markup
	Selector     string       // CSS selector for HTML extraction
	IncludeAll   bool         // keep all HTML content instead of the readable article
	Markdown     bool         // render extracted HTML as Markdown before counting
	OutputFormat OutputFormat // output format (text/json)
	Quiet        bool         // suppress warnings and progress
	Debug        bool
	Stderr       io.Writer // destination for warnings and the spinner (default os.Stderr)
}

// Run counts every source in cfg and returns the report.
//
// A failing source is recorded in the report and does not stop the others,
// the same way wc carries on past an unreadable file. ErrNoSourcesCounted is
// returned only when nothing could be counted.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	sources := cfg.Sources
	if len(sources) == 0 {
		sources = []string{fetch.Stdin}
	}
	if !cfg.Columns.Any() {
		cfg.Columns = DefaultColumns
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}

	var tokenCounter counter.Counter
	if cfg.Columns.Tokens {
		var err error
		tokenCounter, err = counter.NewTokenCounter()
		if err != nil {
			return nil, fmt.Errorf("failed to create token counter: %w", err)
		}
	}

	report := &Report{Columns: cfg.Columns}
	counted := 0

	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := readSource(ctx, source, cfg)
		if err != nil {
			if !cfg.Quiet {
				fmt.Fprintf(cfg.Stderr, "Warning: failed to process source %q: %v\n", source, err)
			}
			report.Sources = append(report.Sources, SourceReport{Name: source, Err: err})
			continue
		}

		counts := countText(text, cfg.Columns, tokenCounter)
		slog.Debug("Source counted", "source", source, "lines", counts.Lines, "words", counts.Words, "bytes", counts.Bytes)

		report.Sources = append(report.Sources, SourceReport{Name: source, Counts: counts})
		report.Total = report.Total.add(counts)
		counted++
	}

	if counted == 0 {
		return report, ErrNoSourcesCounted
	}
	return report, nil
}

// readSource loads one source and, for HTML mode, reduces it to readable text
func readSource(ctx context.Context, source string, cfg Config) (string, error) {
	if fetch.IsURL(source) && !cfg.Quiet && spinner.IsTerminal(cfg.Stderr) {
		sp := spinner.New(ctx, cfg.Stderr, fmt.Sprintf("Fetching %s...", source))
		sp.Start()
		defer sp.Stop()
	}

	if !cfg.HTML {
		text, err := fetch.ReadText(ctx, source)
		if err != nil {
			return "", fmt.Errorf("failed to fetch content: %w", err)
		}
		if !counter.Valid(text) {
			slog.Warn("Source is not valid UTF-8; invalid bytes are counted as U+FFFD", "source", source)
		}
		return text, nil
	}

	reader, err := fetch.GetContent(ctx, source)
	if err != nil {
		return "", fmt.Errorf("failed to fetch content: %w", err)
	}
	defer reader.Close()

	opts := extract.Options{
		Selector:   cfg.Selector,
		IncludeAll: cfg.IncludeAll,
		Markdown:   cfg.Markdown,
	}
	if fetch.IsURL(source) {
		opts.BaseURL, _ = url.Parse(source) // nil on parse errors is fine
	}

	text, err := extract.ToText(reader, opts)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}
	return text, nil
}

// countText computes the selected metrics; lines, words and bytes share one scan
func countText(text string, cols Columns, tokenCounter counter.Counter) Counts {
	counts := Counts{Result: counter.CountAll(text)}

	if cols.Chars {
		counts.Chars = counter.NewCharCounter().Count(text)
	}
	if cols.Tokens && tokenCounter != nil {
		counts.Tokens = tokenCounter.Count(text)
	}
	return counts
}
