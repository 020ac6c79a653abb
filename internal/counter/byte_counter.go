package counter

import "log/slog"

// ByteCounter implements UTF-8 byte counting (wc -c).
type ByteCounter struct{}

// NewByteCounter creates a new ByteCounter instance.
func NewByteCounter() Counter {
	return &ByteCounter{}
}

// Count returns the UTF-8 encoded length of the given text.
func (bc *ByteCounter) Count(text string) int {
	byteCount := CountBytes(text)

	slog.Debug("Byte count calculated", "textLength", len(text), "byteCount", byteCount)
	return byteCount
}

// Name returns the name of this counting method for logging and debugging.
func (bc *ByteCounter) Name() string {
	return "bytes"
}
