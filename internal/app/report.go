package app

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/chriscorrea/rwc/internal/counter"
	"github.com/chriscorrea/rwc/internal/fetch"
)

// Counts holds every metric rwc can report for one source.
type Counts struct {
	counter.Result
	Chars  int
	Tokens int
}

func (c Counts) add(other Counts) Counts {
	return Counts{
		Result: c.Result.Add(other.Result),
		Chars:  c.Chars + other.Chars,
		Tokens: c.Tokens + other.Tokens,
	}
}

// SourceReport is the outcome for a single source.
type SourceReport struct {
	Name   string
	Counts Counts
	Err    error // set when the source could not be read
}

// Report collects per-source counts and their total.
type Report struct {
	Columns Columns
	Sources []SourceReport
	Total   Counts
}

// Failed reports whether any source could not be counted.
func (r *Report) Failed() bool {
	for _, s := range r.Sources {
		if s.Err != nil {
			return true
		}
	}
	return false
}

// Format renders the report in the requested format.
func (r *Report) Format(format OutputFormat) (string, error) {
	switch format {
	case Text:
		return r.formatText(), nil
	case JSON:
		return r.formatJSON()
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// values returns the selected columns in wc order: lines, words, chars, bytes, tokens
func (r *Report) values(c Counts) []int {
	var vals []int
	if r.Columns.Lines {
		vals = append(vals, c.Lines)
	}
	if r.Columns.Words {
		vals = append(vals, c.Words)
	}
	if r.Columns.Chars {
		vals = append(vals, c.Chars)
	}
	if r.Columns.Bytes {
		vals = append(vals, c.Bytes)
	}
	if r.Columns.Tokens {
		vals = append(vals, c.Tokens)
	}
	return vals
}

// formatText prints one wc-style line per counted source, plus a total line
// when more than one source was given. Numbers share a right-aligned width.
func (r *Report) formatText() string {
	type row struct {
		vals []int
		name string
	}

	var rows []row
	for _, s := range r.Sources {
		if s.Err != nil {
			continue
		}
		name := s.Name
		if name == fetch.Stdin {
			name = ""
		}
		rows = append(rows, row{vals: r.values(s.Counts), name: name})
	}
	if len(r.Sources) > 1 {
		rows = append(rows, row{vals: r.values(r.Total), name: "total"})
	}

	width := 1
	for _, rw := range rows {
		for _, v := range rw.vals {
			width = max(width, len(strconv.Itoa(v)))
		}
	}

	var sb strings.Builder
	for _, rw := range rows {
		fields := make([]string, 0, len(rw.vals)+1)
		for _, v := range rw.vals {
			fields = append(fields, fmt.Sprintf("%*d", width, v))
		}
		if rw.name != "" {
			fields = append(fields, rw.name)
		}
		sb.WriteString(strings.Join(fields, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

type jsonCounts struct {
	Lines  *int `json:"lines,omitempty"`
	Words  *int `json:"words,omitempty"`
	Chars  *int `json:"chars,omitempty"`
	Bytes  *int `json:"bytes,omitempty"`
	Tokens *int `json:"tokens,omitempty"`
}

type jsonSource struct {
	Name string `json:"name"`
	*jsonCounts
	Error string `json:"error,omitempty"`
}

type jsonReport struct {
	Sources []jsonSource `json:"sources"`
	Total   jsonCounts   `json:"total"`
}

// selected keeps only the chosen columns; pointers let zero counts still appear
func (r *Report) selected(c Counts) jsonCounts {
	var jc jsonCounts
	if r.Columns.Lines {
		jc.Lines = &c.Lines
	}
	if r.Columns.Words {
		jc.Words = &c.Words
	}
	if r.Columns.Chars {
		jc.Chars = &c.Chars
	}
	if r.Columns.Bytes {
		jc.Bytes = &c.Bytes
	}
	if r.Columns.Tokens {
		jc.Tokens = &c.Tokens
	}
	return jc
}

func (r *Report) formatJSON() (string, error) {
	out := jsonReport{
		Sources: make([]jsonSource, 0, len(r.Sources)),
		Total:   r.selected(r.Total),
	}

	for _, s := range r.Sources {
		js := jsonSource{Name: s.Name}
		if s.Err != nil {
			js.Error = s.Err.Error()
		} else {
			counts := r.selected(s.Counts)
			js.jsonCounts = &counts
		}
		out.Sources = append(out.Sources, js)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode report: %w", err)
	}
	return string(data) + "\n", nil
}
