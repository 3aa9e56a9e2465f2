package services

import (
	"github.com/custodia-labs/papersum/internal/core/domain"
	"github.com/custodia-labs/papersum/internal/core/ports/driven"
)

// Chunker splits text into contiguous windows of at most MaxTokens tokens.
// Windows do not overlap and are not aligned to sentence boundaries.
type Chunker struct {
	tokenizer driven.Tokenizer
	maxTokens int
}

// ChunkerOption configures the chunker.
type ChunkerOption func(*Chunker)

// WithMaxTokens sets the window size in tokens. Non-positive values are ignored.
func WithMaxTokens(n int) ChunkerOption {
	return func(c *Chunker) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// NewChunker creates a chunker backed by the given tokenizer.
func NewChunker(tokenizer driven.Tokenizer, opts ...ChunkerOption) *Chunker {
	c := &Chunker{
		tokenizer: tokenizer,
		maxTokens: domain.DefaultChunkTokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaxTokens returns the window size.
func (c *Chunker) MaxTokens() int {
	return c.maxTokens
}

// Split encodes text once and decodes each window back to text.
// Text with no tokens yields no chunks.
func (c *Chunker) Split(text string) []domain.Chunk {
	tokens := c.tokenizer.Encode(text)
	if len(tokens) == 0 {
		return nil
	}

	chunks := make([]domain.Chunk, 0, (len(tokens)+c.maxTokens-1)/c.maxTokens)
	for start := 0; start < len(tokens); start += c.maxTokens {
		end := min(start+c.maxTokens, len(tokens))
		window := tokens[start:end:end]
		chunks = append(chunks, domain.Chunk{
			Position: len(chunks),
			Tokens:   window,
			Text:     c.tokenizer.Decode(window),
		})
	}
	return chunks
}
