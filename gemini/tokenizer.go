package gemini

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	defaultEncoder *tiktoken.Tiktoken
	encoderOnce    sync.Once
	encoderErr     error
)

// getEncoder returns the shared tiktoken encoder, initializing it lazily.
func getEncoder() (*tiktoken.Tiktoken, error) {
	encoderOnce.Do(func() {
		defaultEncoder, encoderErr = tiktoken.GetEncoding("cl100k_base")
	})
	return defaultEncoder, encoderErr
}

// EstimateTokens returns an estimated token count for the given text
// using the cl100k_base encoding. Gemini uses its own tokenizer, but
// cl100k_base is a reasonable approximation for prompt-size budgeting
// before dispatch; exact counts come back in the response usage metadata.
func EstimateTokens(text string) int {
	encoder, err := getEncoder()
	if err != nil {
		// Character-based fallback if the encoding is unavailable.
		return len(text) / 4
	}
	return len(encoder.Encode(text, nil, nil))
}
