package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/papersum/internal/core/domain"
	"github.com/custodia-labs/papersum/internal/core/ports/driven"
)

// runeTokenizer maps each rune to one token so round trips are exact.
type runeTokenizer struct{}

func (runeTokenizer) Encode(text string) []int {
	runes := []rune(text)
	tokens := make([]int, len(runes))
	for i, r := range runes {
		tokens[i] = int(r)
	}
	return tokens
}

func (runeTokenizer) Decode(tokens []int) string {
	runes := make([]rune, len(tokens))
	for i, t := range tokens {
		runes[i] = rune(t)
	}
	return string(runes)
}

func (runeTokenizer) Name() string { return "rune" }

// mockLLM returns "summary of <n>" per call, or an error for the listed call indices.
type mockLLM struct {
	mu       sync.Mutex
	calls    []string
	opts     []driven.GenerateOptions
	failOn   map[int]error
	response func(call int, content string) string
}

func (m *mockLLM) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	return m.Summarise(ctx, prompt, opts)
}

func (m *mockLLM) Summarise(_ context.Context, content string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	call := len(m.calls)
	m.calls = append(m.calls, content)
	m.opts = append(m.opts, opts)
	if err, ok := m.failOn[call]; ok {
		return "", err
	}
	if m.response != nil {
		return m.response(call, content), nil
	}
	return "S" + string(rune('1'+call)), nil
}

func (m *mockLLM) ModelName() string            { return "mock" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

func (m *mockLLM) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockStore records every call made by the pipeline.
type mockStore struct {
	papers    []domain.Paper
	selectErr error
	updateErr error

	selectPendingCalls int
	selectByIDCalls    []string
	updates            map[string]string
}

func newMockStore(papers ...domain.Paper) *mockStore {
	return &mockStore{papers: papers, updates: make(map[string]string)}
}

func (m *mockStore) SelectPending(_ context.Context) ([]domain.Paper, error) {
	m.selectPendingCalls++
	if m.selectErr != nil {
		return nil, m.selectErr
	}
	var out []domain.Paper
	for _, p := range m.papers {
		if !p.HasSummary() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockStore) SelectByID(_ context.Context, id string) ([]domain.Paper, error) {
	m.selectByIDCalls = append(m.selectByIDCalls, id)
	if m.selectErr != nil {
		return nil, m.selectErr
	}
	for _, p := range m.papers {
		if p.ID == id {
			return []domain.Paper{p}, nil
		}
	}
	return nil, nil
}

func (m *mockStore) UpdateSummary(_ context.Context, id, summary string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updates[id] = summary
	return nil
}

func (m *mockStore) Close() error { return nil }

func (m *mockStore) totalCalls() int {
	return m.selectPendingCalls + len(m.selectByIDCalls) + len(m.updates)
}

// mockFetcher serves content keyed by locator.
type mockFetcher struct {
	content   map[string]string
	errs      map[string]error
	localPath string
	fetched   []string
}

func (m *mockFetcher) Fetch(_ context.Context, locator string) (*domain.RawDocument, error) {
	m.fetched = append(m.fetched, locator)
	raw := &domain.RawDocument{URI: locator, MIMEType: "text/plain", LocalPath: m.localPath}
	if err, ok := m.errs[locator]; ok {
		return raw, err
	}
	body, ok := m.content[locator]
	if !ok {
		return nil, errors.New("404 not found")
	}
	raw.Content = []byte(body)
	return raw, nil
}

// mockExtractor returns the raw bytes as text.
type mockExtractor struct {
	err error
}

func (m *mockExtractor) Extract(_ context.Context, raw *domain.RawDocument) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return string(raw.Content), nil
}

// mapConfigStore is a minimal driven.ConfigStore for settings tests.
type mapConfigStore struct {
	values map[string]any
}

func newMapConfigStore() *mapConfigStore {
	return &mapConfigStore{values: make(map[string]any)}
}

func (m *mapConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mapConfigStore) GetString(key string) string {
	s, _ := m.values[key].(string)
	return s
}

func (m *mapConfigStore) GetInt(key string) int {
	switch v := m.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	default:
		return 0
	}
}

func (m *mapConfigStore) Set(key string, value any) error {
	m.values[key] = value
	return nil
}

func (m *mapConfigStore) Save() error  { return nil }
func (m *mapConfigStore) Load() error  { return nil }
func (m *mapConfigStore) Path() string { return ":memory:" }

// mockValidator records the LLM settings it was asked to validate.
type mockValidator struct {
	err       error
	validated *domain.LLMSettings
}

func (m *mockValidator) ValidateLLM(cfg *domain.LLMSettings) error {
	m.validated = cfg
	return m.err
}

// noEnv is an environment with no variables set.
func noEnv(string) (string, bool) { return "", false }

// envMap returns a lookup over a fixed environment.
func envMap(vars map[string]string) func(string) (string, bool) {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}
