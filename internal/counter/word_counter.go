package counter

import "log/slog"

// WordCounter implements whitespace-delimited word counting (wc -w).
type WordCounter struct{}

// NewWordCounter creates a new WordCounter instance.
func NewWordCounter() Counter {
	return &WordCounter{}
}

// Count returns the number of words in the given text.
// Any Unicode whitespace separates words; runs of it never produce empty words.
func (wc *WordCounter) Count(text string) int {
	if text == "" {
		return 0
	}

	wordCount := CountWords(text)

	slog.Debug("Word count calculated", "textLength", len(text), "wordCount", wordCount)
	return wordCount
}

// Name returns the name of this counting method for logging and debugging.
func (wc *WordCounter) Name() string {
	return "words"
}
