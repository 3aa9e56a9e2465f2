package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies a language model provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGemini is Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic || p == AIProviderGemini
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGemini:
		return "Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for cloud providers).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// StoreKind identifies a document store backend.
type StoreKind string

// Available document stores.
const (
	// StoreMemory keeps papers in process memory. Useful for tests and dry runs.
	StoreMemory StoreKind = "memory"

	// StoreSQLite is a local SQLite database file.
	StoreSQLite StoreKind = "sqlite"

	// StorePostgres is a Postgres database (e.g., a hosted Supabase project).
	StorePostgres StoreKind = "postgres"

	// StoreMongo is a MongoDB collection.
	StoreMongo StoreKind = "mongo"
)

// IsValid returns true if the store kind is recognised.
func (k StoreKind) IsValid() bool {
	switch k {
	case StoreMemory, StoreSQLite, StorePostgres, StoreMongo:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k StoreKind) String() string {
	return string(k)
}

// StoreSettings holds document store configuration.
type StoreSettings struct {
	// Kind selects the backend.
	Kind StoreKind

	// Path is the database file (sqlite) or an optional JSON seed file (memory).
	Path string

	// DSN is the connection string (postgres, mongo).
	DSN string

	// Database is the database name (mongo).
	Database string

	// Collection is the table or collection holding papers.
	Collection string
}

// IsConfigured returns true if the store has what its backend needs.
func (s StoreSettings) IsConfigured() bool {
	switch s.Kind {
	case StoreMemory:
		return true
	case StoreSQLite:
		return s.Path != ""
	case StorePostgres:
		return s.DSN != ""
	case StoreMongo:
		return s.DSN != "" && s.Database != ""
	default:
		return false
	}
}

// FetchSettings holds download configuration.
type FetchSettings struct {
	// Timeout bounds a single download. Zero means no timeout.
	Timeout time.Duration

	// RequestsPerSecond limits outbound downloads. Zero disables limiting.
	RequestsPerSecond float64

	// TempDir is where downloaded bytes are spooled. Empty uses the OS default.
	TempDir string

	// UserAgent is sent with every download request.
	UserAgent string

	// LocalRoot enables file:// and bare path locators under this directory.
	// Empty disables local reads.
	LocalRoot string
}

// SummariserSettings holds chunking and generation bounds.
type SummariserSettings struct {
	// ChunkTokens is the token window size used by the chunker.
	ChunkTokens int

	// MaxTokens bounds each chunk summary.
	MaxTokens int

	// MinTokens is the requested lower bound for each chunk summary.
	MinTokens int

	// Encoding names the tokenizer encoding. Empty derives it from the model.
	Encoding string
}

// ServerSettings holds HTTP trigger configuration.
type ServerSettings struct {
	// Port is the listen port.
	Port int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// LLM holds LLM provider settings.
	LLM LLMSettings

	// Store holds document store settings.
	Store StoreSettings

	// Fetch holds download settings.
	Fetch FetchSettings

	// Summariser holds chunking and generation settings.
	Summariser SummariserSettings

	// Server holds HTTP trigger settings.
	Server ServerSettings
}

// Default pipeline bounds.
const (
	DefaultChunkTokens      = 512
	DefaultSummaryMaxTokens = 150
	DefaultSummaryMinTokens = 40
	DefaultServerPort       = 5000
)

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured; the store defaults to a local SQLite file
// whose path is filled in by the config layer.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		LLM: LLMSettings{},
		Store: StoreSettings{
			Kind:       StoreSQLite,
			Collection: "paper",
		},
		Fetch: FetchSettings{
			Timeout:           60 * time.Second,
			RequestsPerSecond: 2,
			UserAgent:         "papersum",
		},
		Summariser: SummariserSettings{
			ChunkTokens: DefaultChunkTokens,
			MaxTokens:   DefaultSummaryMaxTokens,
			MinTokens:   DefaultSummaryMinTokens,
		},
		Server: ServerSettings{
			Port: DefaultServerPort,
		},
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderGemini,
	}
}

// AllStoreKinds returns all document store backends.
func AllStoreKinds() []StoreKind {
	return []StoreKind{StoreMemory, StoreSQLite, StorePostgres, StoreMongo}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
		AIProviderGemini:    "gemini-1.5-flash",
	}
}
