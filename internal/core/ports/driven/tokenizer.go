package driven

// Tokenizer converts between text and model tokens.
// Implementations are loaded once and are safe for concurrent reads.
type Tokenizer interface {
	// Encode returns the token sequence for text without special tokens.
	// It is deterministic.
	Encode(text string) []int

	// Decode returns the text for a token sequence. It is a best-effort
	// inverse of Encode; a window cut mid-character may not round trip exactly.
	Decode(tokens []int) string

	// Name returns the encoding name (e.g., "cl100k_base").
	Name() string
}
