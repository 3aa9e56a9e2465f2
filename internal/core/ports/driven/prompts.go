package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
const (
	// PromptSummarise creates a summary of one chunk of a paper.
	// The template expects %d (min tokens), %d (max tokens) and %s (content) placeholders.
	PromptSummarise = "summarise"
)

// DefaultSummarisePrompt is the built-in template for PromptSummarise.
const DefaultSummarisePrompt = `Summarise the following excerpt from a research paper.
Write at least %d and at most %d tokens. Capture the main findings and methods.
Use only information present in the excerpt.

Excerpt:
%s

Summary:`

// PromptStoreAware is an optional interface for services that can use custom prompts.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use hardcoded default prompts.
	SetPromptStore(store PromptStore)
}
