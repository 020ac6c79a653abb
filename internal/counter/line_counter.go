package counter

import "log/slog"

// LineCounter implements newline counting (wc -l).
type LineCounter struct{}

// NewLineCounter creates a new LineCounter instance.
func NewLineCounter() Counter {
	return &LineCounter{}
}

// Count returns the number of '\n' characters in the given text.
func (lc *LineCounter) Count(text string) int {
	lineCount := CountLines(text)

	slog.Debug("Line count calculated", "textLength", len(text), "lineCount", lineCount)
	return lineCount
}

// Name returns the name of this counting method for logging and debugging.
func (lc *LineCounter) Name() string {
	return "lines"
}
