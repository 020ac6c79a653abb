package app

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chriscorrea/rwc/internal/counter"
)

// writeFile creates a file with content in a per-test temp dir and returns its path
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestRunSingleFile(t *testing.T) {
	path := writeFile(t, "fox.txt", "The quick brown fox\njumps over\n")

	report, err := Run(context.Background(), Config{Sources: []string{path}, Quiet: true})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if len(report.Sources) != 1 {
		t.Fatalf("Run() returned %d sources, want 1", len(report.Sources))
	}

	want := counter.Result{Lines: 2, Words: 6, Bytes: 31}
	if got := report.Sources[0].Counts.Result; got != want {
		t.Errorf("Run() counts = %+v, want %+v", got, want)
	}
	if report.Columns != DefaultColumns {
		t.Errorf("Run() columns = %+v, want defaults %+v", report.Columns, DefaultColumns)
	}

	out, err := report.Format(Text)
	if err != nil {
		t.Fatalf("Format() unexpected error: %v", err)
	}
	if expected := " 2  6 31 " + path + "\n"; out != expected {
		t.Errorf("Format(Text) = %q, want %q", out, expected)
	}
}

func TestRunMultipleSources(t *testing.T) {
	first := writeFile(t, "a.txt", "one two\n")
	second := writeFile(t, "b.txt", "three\nfour five six\n")
	missing := filepath.Join(t.TempDir(), "missing.txt")

	var stderr bytes.Buffer
	report, err := Run(context.Background(), Config{
		Sources: []string{first, missing, second},
		Columns: Columns{Lines: true, Words: true},
		Stderr:  &stderr,
	})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	if !report.Failed() {
		t.Error("Report.Failed() = false, want true with a missing source")
	}
	if !strings.Contains(stderr.String(), "missing.txt") {
		t.Errorf("expected warning about missing source, got %q", stderr.String())
	}

	wantTotal := counter.Result{Lines: 3, Words: 6, Bytes: 28}
	if report.Total.Result != wantTotal {
		t.Errorf("Report.Total = %+v, want %+v", report.Total.Result, wantTotal)
	}

	out, err := report.Format(Text)
	if err != nil {
		t.Fatalf("Format() unexpected error: %v", err)
	}
	expected := "1 2 " + first + "\n" +
		"2 4 " + second + "\n" +
		"3 6 total\n"
	if out != expected {
		t.Errorf("Format(Text) =\n%s\nwant\n%s", out, expected)
	}
}

func TestRunQuietSuppressesWarnings(t *testing.T) {
	path := writeFile(t, "ok.txt", "fine\n")

	var stderr bytes.Buffer
	_, err := Run(context.Background(), Config{
		Sources: []string{path, "/no/such/file"},
		Quiet:   true,
		Stderr:  &stderr,
	})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if stderr.Len() != 0 {
		t.Errorf("quiet run wrote warnings: %q", stderr.String())
	}
}

func TestRunAllSourcesFail(t *testing.T) {
	report, err := Run(context.Background(), Config{
		Sources: []string{"/no/such/file", "/another/missing/file"},
		Quiet:   true,
	})

	if !errors.Is(err, ErrNoSourcesCounted) {
		t.Fatalf("Run() error = %v, want ErrNoSourcesCounted", err)
	}
	if report == nil || len(report.Sources) != 2 {
		t.Fatalf("Run() should still report both failed sources, got %+v", report)
	}
}

func TestRunCancelledContext(t *testing.T) {
	path := writeFile(t, "a.txt", "text\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Config{Sources: []string{path}, Quiet: true})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRunInvalidUTF8(t *testing.T) {
	path := writeFile(t, "bad.txt", "a\xff\n")

	report, err := Run(context.Background(), Config{Sources: []string{path}, Quiet: true})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	// the invalid byte is counted as U+FFFD and joins the word
	want := counter.Result{Lines: 1, Words: 1, Bytes: 5}
	if got := report.Sources[0].Counts.Result; got != want {
		t.Errorf("Run() counts = %+v, want %+v", got, want)
	}
}

func TestRunCharsColumn(t *testing.T) {
	path := writeFile(t, "cafe.txt", "café\n")

	report, err := Run(context.Background(), Config{
		Sources: []string{path},
		Columns: Columns{Chars: true, Bytes: true},
		Quiet:   true,
	})
	if err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	counts := report.Sources[0].Counts
	if counts.Chars != 5 || counts.Bytes != 6 {
		t.Errorf("Run() chars/bytes = %d/%d, want 5/6", counts.Chars, counts.Bytes)
	}

	out, _ := report.Format(Text)
	if expected := "5 6 " + path + "\n"; out != expected {
		t.Errorf("Format(Text) = %q, want %q", out, expected)
	}
}

func TestRunHTMLSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><nav>Menu</nav><div id="story"><p>Counted words here</p><p>and here</p></div></body></html>`))
	}))
	defer server.Close()

	tests := []struct {
		name string
		html bool
		want counter.Result
	}{
		{"html extraction", true, counter.Result{Lines: 2, Words: 5, Bytes: len("Counted words here\nand here\n")}},
		{"raw markup", false, counter.CountAll(`<html><body><nav>Menu</nav><div id="story"><p>Counted words here</p><p>and here</p></div></body></html>`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			report, err := Run(context.Background(), Config{
				Sources:  []string{server.URL},
				HTML:     tt.html,
				Selector: "#story",
				Stderr:   &stderr,
			})
			if err != nil {
				t.Fatalf("Run() unexpected error: %v (stderr %q)", err, stderr.String())
			}

			if got := report.Sources[0].Counts.Result; got != tt.want {
				t.Errorf("Run() counts = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestOutputFormatString(t *testing.T) {
	tests := []struct {
		format   OutputFormat
		expected string
	}{
		{Text, "Text"},
		{JSON, "JSON"},
		{OutputFormat(7), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.expected {
			t.Errorf("OutputFormat(%d).String() = %q, want %q", int(tt.format), got, tt.expected)
		}
	}
}

func TestColumnsAny(t *testing.T) {
	if (Columns{}).Any() {
		t.Error("Columns{}.Any() = true, want false")
	}
	if !(Columns{Tokens: true}).Any() {
		t.Error("Columns{Tokens: true}.Any() = false, want true")
	}
}
