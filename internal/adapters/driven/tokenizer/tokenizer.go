// Package tokenizer provides a BPE tokenizer adapter backed by tiktoken.
//
// The encoding is loaded once and is safe for concurrent use. Loading an
// encoding for the first time downloads its rank file unless it is already
// cached (see TIKTOKEN_CACHE_DIR).
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/custodia-labs/papersum/internal/core/ports/driven"
	"github.com/custodia-labs/papersum/internal/logger"
)

// Ensure Tokenizer implements the interface.
var _ driven.Tokenizer = (*Tokenizer)(nil)

// DefaultEncoding is used when no model-specific encoding is known.
const DefaultEncoding = "cl100k_base"

// familyEncodings maps model families to an encoding. Checked in order after
// tiktoken's own model table.
var familyEncodings = []struct {
	family   string
	encoding string
}{
	{"gpt-4o", "o200k_base"},
	{"gpt-4", "cl100k_base"},
	{"gpt-3.5", "cl100k_base"},
	{"claude", "cl100k_base"},
	{"gemini", "cl100k_base"},
	{"llama", "cl100k_base"},
	{"mistral", "cl100k_base"},
}

// Tokenizer encodes and decodes text with a tiktoken encoding.
type Tokenizer struct {
	enc  *tiktoken.Tiktoken
	name string
}

// New loads the named encoding (e.g., "cl100k_base").
func New(encoding string) (*Tokenizer, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: load encoding %s: %w", encoding, err)
	}
	return &Tokenizer{enc: enc, name: encoding}, nil
}

// ForModel loads the encoding that matches a model name, falling back to
// DefaultEncoding for unknown models.
func ForModel(model string) (*Tokenizer, error) {
	return New(EncodingForModel(model))
}

// EncodingForModel resolves the encoding name for a model.
func EncodingForModel(model string) string {
	lower := strings.ToLower(model)

	if name, ok := tiktoken.MODEL_TO_ENCODING[lower]; ok {
		return name
	}
	for _, f := range familyEncodings {
		if strings.Contains(lower, f.family) {
			return f.encoding
		}
	}

	if model != "" {
		logger.Debug("No known encoding for model %q, using %s", model, DefaultEncoding)
	}
	return DefaultEncoding
}

// Encode returns the tokens for text. Special token markers in the text are
// encoded as ordinary text.
func (t *Tokenizer) Encode(text string) []int {
	return t.enc.EncodeOrdinary(text)
}

// Decode returns the text for tokens.
func (t *Tokenizer) Decode(tokens []int) string {
	return t.enc.Decode(tokens)
}

// Name returns the encoding name.
func (t *Tokenizer) Name() string {
	return t.name
}
