// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import "context"

// LLMService provides language model operations for paper summarisation.
//
// Implementations may include:
//   - OpenAI (GPT-4o)
//   - Anthropic (Claude)
//   - Ollama (local models)
//   - Gemini
type LLMService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Summarise creates an abstractive summary of content within the
	// bounds given by opts.
	Summarise(ctx context.Context, content string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// MinTokens is the requested minimum output length. Providers that
	// cannot enforce it receive it through the prompt.
	MinTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}

// SummaryOptions returns the fixed generation bounds used for chunk summaries:
// at most 150 tokens, at least 40, and no sampling.
func SummaryOptions() GenerateOptions {
	return GenerateOptions{
		MaxTokens:   150,
		MinTokens:   40,
		Temperature: 0,
	}
}
