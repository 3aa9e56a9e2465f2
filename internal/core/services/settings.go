package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/custodia-labs/papersum/internal/core/domain"
	"github.com/custodia-labs/papersum/internal/core/ports/driven"
	"github.com/custodia-labs/papersum/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyLLMProvider      = "llm.provider"
	keyLLMModel         = "llm.model"
	keyLLMBaseURL       = "llm.base_url"
	keyLLMAPIKey        = "llm.api_key"
	keyStoreKind        = "store.kind"
	keyStorePath        = "store.path"
	keyStoreDSN         = "store.dsn"
	keyStoreDatabase    = "store.database"
	keyStoreCollection  = "store.collection"
	keyFetchTimeout     = "fetch.timeout"
	keyFetchRate        = "fetch.requests_per_second"
	keyFetchTempDir     = "fetch.temp_dir"
	keyFetchUserAgent   = "fetch.user_agent"
	keyFetchLocalRoot   = "fetch.local_root"
	keyChunkTokens      = "summariser.chunk_tokens"
	keySummaryMaxTokens = "summariser.max_tokens"
	keySummaryMinTokens = "summariser.min_tokens"
	keyEncoding         = "summariser.encoding"
	keyServerPort       = "server.port"
)

// Environment variables that override stored settings.
//
//nolint:gosec // G101: These are variable names, not actual credentials.
const (
	EnvLLMProvider     = "PAPERSUM_LLM_PROVIDER"
	EnvLLMModel        = "PAPERSUM_LLM_MODEL"
	EnvLLMBaseURL      = "PAPERSUM_LLM_BASE_URL"
	EnvLLMAPIKey       = "PAPERSUM_LLM_API_KEY"
	EnvStoreKind       = "PAPERSUM_STORE_KIND"
	EnvStorePath       = "PAPERSUM_STORE_PATH"
	EnvStoreDSN        = "PAPERSUM_STORE_DSN"
	EnvStoreDatabase   = "PAPERSUM_STORE_DATABASE"
	EnvStoreCollection = "PAPERSUM_STORE_COLLECTION"
	EnvServerPort      = "PAPERSUM_PORT"
)

// providerKeyEnv names the conventional API key variable per provider.
// Consulted only when no key is configured.
var providerKeyEnv = map[domain.AIProvider]string{
	domain.AIProviderOpenAI:    "OPENAI_API_KEY",
	domain.AIProviderAnthropic: "ANTHROPIC_API_KEY",
	domain.AIProviderGemini:    "GEMINI_API_KEY",
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	lookupEnv   func(string) (string, bool)
	dataDir     string
}

// SettingsOption configures the settings service.
type SettingsOption func(*SettingsService)

// WithEnvLookup replaces os.LookupEnv. Used by tests.
func WithEnvLookup(fn func(string) (string, bool)) SettingsOption {
	return func(s *SettingsService) {
		s.lookupEnv = fn
	}
}

// WithDataDir sets the directory holding the default SQLite database.
func WithDataDir(dir string) SettingsOption {
	return func(s *SettingsService) {
		s.dataDir = dir
	}
}

// NewSettingsService creates a new settings service.
func NewSettingsService(
	configStore driven.ConfigStore,
	aiValidator driven.AIConfigValidator,
	opts ...SettingsOption,
) *SettingsService {
	s := &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		lookupEnv:   os.LookupEnv,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves current application settings.
// Stored values override defaults; environment variables override both.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		Store: domain.StoreSettings{
			Kind:       s.getStoreKind(defaults.Store.Kind),
			Path:       s.configStore.GetString(keyStorePath),
			DSN:        s.configStore.GetString(keyStoreDSN),
			Database:   s.configStore.GetString(keyStoreDatabase),
			Collection: s.getString(keyStoreCollection, defaults.Store.Collection),
		},
		Fetch: domain.FetchSettings{
			Timeout:           s.getDuration(keyFetchTimeout, defaults.Fetch.Timeout),
			RequestsPerSecond: s.getFloat(keyFetchRate, defaults.Fetch.RequestsPerSecond),
			TempDir:           s.configStore.GetString(keyFetchTempDir),
			UserAgent:         s.getString(keyFetchUserAgent, defaults.Fetch.UserAgent),
			LocalRoot:         s.configStore.GetString(keyFetchLocalRoot),
		},
		Summariser: domain.SummariserSettings{
			ChunkTokens: s.getInt(keyChunkTokens, defaults.Summariser.ChunkTokens),
			MaxTokens:   s.getInt(keySummaryMaxTokens, defaults.Summariser.MaxTokens),
			MinTokens:   s.getInt(keySummaryMinTokens, defaults.Summariser.MinTokens),
			Encoding:    s.configStore.GetString(keyEncoding),
		},
		Server: domain.ServerSettings{
			Port: s.getInt(keyServerPort, defaults.Server.Port),
		},
	}

	s.applyEnv(settings)

	if settings.Store.Kind == domain.StoreSQLite && settings.Store.Path == "" && s.dataDir != "" {
		settings.Store.Path = filepath.Join(s.dataDir, "papersum.db")
	}
	if settings.LLM.Model == "" {
		settings.LLM.Model = domain.DefaultLLMModels()[settings.LLM.Provider]
	}

	return settings, nil
}

// applyEnv overlays environment variables onto settings.
func (s *SettingsService) applyEnv(settings *domain.AppSettings) {
	if v, ok := s.env(EnvLLMProvider); ok {
		if p := domain.AIProvider(v); p.IsValid() {
			settings.LLM.Provider = p
		}
	}
	s.overlay(EnvLLMModel, &settings.LLM.Model)
	s.overlay(EnvLLMBaseURL, &settings.LLM.BaseURL)
	s.overlay(EnvLLMAPIKey, &settings.LLM.APIKey)
	if settings.LLM.APIKey == "" {
		if name, ok := providerKeyEnv[settings.LLM.Provider]; ok {
			s.overlay(name, &settings.LLM.APIKey)
		}
	}

	if v, ok := s.env(EnvStoreKind); ok {
		if k := domain.StoreKind(v); k.IsValid() {
			settings.Store.Kind = k
		}
	}
	s.overlay(EnvStorePath, &settings.Store.Path)
	s.overlay(EnvStoreDSN, &settings.Store.DSN)
	s.overlay(EnvStoreDatabase, &settings.Store.Database)
	s.overlay(EnvStoreCollection, &settings.Store.Collection)

	if v, ok := s.env(EnvServerPort); ok {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			settings.Server.Port = port
		}
	}
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyStoreKind, settings.Store.Kind.String()},
		{keyStorePath, settings.Store.Path},
		{keyStoreDSN, settings.Store.DSN},
		{keyStoreDatabase, settings.Store.Database},
		{keyStoreCollection, settings.Store.Collection},
		{keyFetchTimeout, settings.Fetch.Timeout.String()},
		{keyFetchRate, settings.Fetch.RequestsPerSecond},
		{keyFetchTempDir, settings.Fetch.TempDir},
		{keyFetchUserAgent, settings.Fetch.UserAgent},
		{keyFetchLocalRoot, settings.Fetch.LocalRoot},
		{keyChunkTokens, settings.Summariser.ChunkTokens},
		{keySummaryMaxTokens, settings.Summariser.MaxTokens},
		{keySummaryMinTokens, settings.Summariser.MinTokens},
		{keyEncoding, settings.Summariser.Encoding},
		{keyServerPort, settings.Server.Port},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	if model != "" {
		settings.LLM.Model = model
	} else {
		settings.LLM.Model = domain.DefaultLLMModels()[provider]
	}

	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = "http://localhost:11434"
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetStore configures the document store.
func (s *SettingsService) SetStore(store domain.StoreSettings) error {
	if !store.Kind.IsValid() {
		return fmt.Errorf("invalid store kind: %s", store.Kind)
	}
	if store.Collection == "" {
		store.Collection = domain.DefaultAppSettings().Store.Collection
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Store = store
	if !settings.Store.IsConfigured() {
		return fmt.Errorf("%w: incomplete %s store settings", domain.ErrInvalidInput, store.Kind)
	}

	return s.Save(settings)
}

// Validate checks if current settings are complete enough to run the pipeline.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.LLM.IsConfigured() {
		return fmt.Errorf("%w: LLM provider is not configured", domain.ErrLLMUnavailable)
	}
	if !settings.Store.IsConfigured() {
		return fmt.Errorf("%w: %s store is not configured", domain.ErrInvalidInput, settings.Store.Kind)
	}
	if settings.Summariser.ChunkTokens <= 0 {
		return fmt.Errorf("%w: chunk_tokens must be positive", domain.ErrInvalidInput)
	}
	if settings.Summariser.MinTokens > settings.Summariser.MaxTokens {
		return fmt.Errorf("%w: min_tokens exceeds max_tokens", domain.ErrInvalidInput)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) env(name string) (string, bool) {
	v, ok := s.lookupEnv(name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (s *SettingsService) overlay(name string, dst *string) {
	if v, ok := s.env(name); ok {
		*dst = v
	}
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	raw, ok := s.configStore.Get(key)
	if !ok {
		return defaultVal
	}
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case int64:
		f = float64(v)
	case int:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return defaultVal
		}
		f = parsed
	default:
		return defaultVal
	}
	if f < 0 {
		return defaultVal
	}
	return f
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}

func (s *SettingsService) getStoreKind(defaultVal domain.StoreKind) domain.StoreKind {
	val := s.configStore.GetString(keyStoreKind)
	if val == "" {
		return defaultVal
	}
	kind := domain.StoreKind(val)
	if !kind.IsValid() {
		return defaultVal
	}
	return kind
}
