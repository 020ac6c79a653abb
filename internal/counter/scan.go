package counter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// replacementLen is the encoded size of U+FFFD, which stands in for every
// byte that does not begin a valid UTF-8 sequence.
const replacementLen = 3

// Result holds the three wc metrics for a single text.
type Result struct {
	Lines int `json:"lines"`
	Words int `json:"words"`
	Bytes int `json:"bytes"`
}

// Add returns the field-wise sum of r and other.
func (r Result) Add(other Result) Result {
	return Result{
		Lines: r.Lines + other.Lines,
		Words: r.Words + other.Words,
		Bytes: r.Bytes + other.Bytes,
	}
}

// Metric is a set of metrics a scan should compute.
type Metric uint8

// Metrics requested from a scan; they combine with |.
const (
	MetricLines Metric = 1 << iota
	MetricWords
	MetricBytes

	MetricAll = MetricLines | MetricWords | MetricBytes
)

// CountLines returns the number of newline characters in text.
// A trailing line without a newline is not counted, matching wc -l.
func CountLines(text string) int {
	return scan(text, MetricLines).Lines
}

// CountWords returns the number of maximal runs of non-whitespace characters in text.
func CountWords(text string) int {
	return scan(text, MetricWords).Words
}

// CountBytes returns the length of the UTF-8 encoding of text.
// Bytes that are not part of a valid sequence are counted as U+FFFD.
func CountBytes(text string) int {
	return scan(text, MetricBytes).Bytes
}

// CountAll computes lines, words and bytes in a single pass.
func CountAll(text string) Result {
	return scan(text, MetricAll)
}

// Valid reports whether text is well-formed UTF-8. Counting never requires it;
// callers that prefer strict rejection of malformed input can check first.
func Valid(text string) bool {
	return utf8.ValidString(text)
}

// scan walks text once and fills in the metrics requested by want.
func scan(text string, want Metric) Result {
	var res Result

	// lines and bytes need no word state, so skip rune decoding when possible
	if want&MetricWords == 0 {
		if want&MetricLines != 0 {
			res.Lines = strings.Count(text, "\n")
		}
		if want&MetricBytes != 0 {
			res.Bytes = encodedLen(text)
		}
		return res
	}

	inWord := false
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size

		if r == utf8.RuneError && size == 1 {
			size = replacementLen
		}
		res.Bytes += size

		if r == '\n' {
			res.Lines++
		}

		if unicode.IsSpace(r) {
			inWord = false
		} else if !inWord {
			inWord = true
			res.Words++
		}
	}

	if want&MetricLines == 0 {
		res.Lines = 0
	}
	if want&MetricBytes == 0 {
		res.Bytes = 0
	}
	return res
}

// encodedLen returns the byte length of text after replacing invalid bytes with U+FFFD.
func encodedLen(text string) int {
	if utf8.ValidString(text) {
		return len(text)
	}

	n := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size
		if r == utf8.RuneError && size == 1 {
			n += replacementLen
			continue
		}
		n += size
	}
	return n
}
