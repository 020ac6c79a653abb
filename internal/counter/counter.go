// Package counter provides the text counting engine for the rwc CLI tool.
//
// The core of the package is a single scan over a string that produces line,
// word and byte counts with the same semantics as POSIX wc -l, -w and -c:
//
//	res := counter.CountAll("The quick brown fox\njumps over\n")
//	// res.Lines == 2, res.Words == 6, res.Bytes == 31
//
// CountLines, CountWords and CountBytes are thin callers of that scan which
// only request the metric they need, so they always agree with CountAll.
//
// The package also exposes a Counter interface with one implementation per
// CountingMethod (lines, words, bytes, characters and tiktoken tokens) for
// callers that select a metric at runtime.
package counter

import "fmt"

// Counter defines the interface for different text counting strategies.
type Counter interface {
	// Count returns the number of units (lines, words, bytes, ...) in given text.
	Count(text string) int

	// Name returns a human-readable name for this counting method (for logging)
	Name() string
}

// CountingMethod represents the different available counting strategies.
type CountingMethod int

const (
	// Lines counts newline characters (wc -l)
	Lines CountingMethod = iota
	// Words counts whitespace-delimited runs (wc -w)
	Words
	// Bytes counts UTF-8 encoded bytes (wc -c)
	Bytes
	// Characters counts Unicode code points (wc -m)
	Characters
	// Tokens uses tiktoken with cl100k_base encoding
	Tokens
)

// String returns the string representation of the counting method.
func (cm CountingMethod) String() string {
	switch cm {
	case Lines:
		return "lines"
	case Words:
		return "words"
	case Bytes:
		return "bytes"
	case Characters:
		return "characters"
	case Tokens:
		return "tokens"
	default:
		return "unknown"
	}
}

// NewCounter creates a new Counter instance based on the specified method.
// Returns an error if the counter cannot be initialized (e.g., tiktoken encoding fails)
// or the method is not known.
func NewCounter(method CountingMethod) (Counter, error) {
	switch method {
	case Lines:
		return NewLineCounter(), nil
	case Words:
		return NewWordCounter(), nil
	case Bytes:
		return NewByteCounter(), nil
	case Characters:
		return NewCharCounter(), nil
	case Tokens:
		return NewTokenCounter()
	default:
		return nil, fmt.Errorf("unknown counting method %d", int(method))
	}
}
