package driven

import "github.com/custodia-labs/papersum/internal/core/domain"

// AIConfigValidator validates AI provider configurations.
// Implementations verify configurations by testing connectivity
// to the underlying AI services.
type AIConfigValidator interface {
	// ValidateLLM validates an LLM configuration by pinging the provider.
	// Returns nil if configuration is valid or not configured.
	ValidateLLM(config *domain.LLMSettings) error
}
