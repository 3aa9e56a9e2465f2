package cli

import (
	"context"
	"testing"

	"github.com/custodia-labs/papersum/internal/core/domain"
)

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings    domain.AppSettings
	validateErr error
	pingErr     error
	storeSet    *domain.StoreSettings
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	m.settings.LLM = domain.LLMSettings{Provider: provider, Model: model, APIKey: apiKey}
	return nil
}

func (m *mockSettingsService) SetStore(store domain.StoreSettings) error {
	m.storeSet = &store
	m.settings.Store = store
	return nil
}

func (m *mockSettingsService) Validate() error { return m.validateErr }

func (m *mockSettingsService) GetDefaults() domain.AppSettings { return domain.DefaultAppSettings() }

func (m *mockSettingsService) ValidateLLMConfig() error { return m.pingErr }

// mockSummariseService replays a report and reports runs to the observer.
type mockSummariseService struct {
	report *domain.Report
	err    error
	runs   []domain.DocumentRun
	onRun  func(domain.DocumentRun)
	lastID string
}

func (m *mockSummariseService) SummariseAll(_ context.Context) (*domain.Report, error) {
	m.emit()
	return m.report, m.err
}

func (m *mockSummariseService) SummariseOne(_ context.Context, paperID string) (*domain.Report, error) {
	m.lastID = paperID
	m.emit()
	return m.report, m.err
}

func (m *mockSummariseService) emit() {
	if m.onRun == nil {
		return
	}
	for _, r := range m.runs {
		m.onRun(r)
	}
}

// mockPaperService is a mock implementation of driving.PaperService.
type mockPaperService struct {
	papers   []domain.Paper
	paper    *domain.Paper
	err      error
	addedID  string
	addedURL string
}

func (m *mockPaperService) Get(_ context.Context, _ string) (*domain.Paper, error) {
	return m.paper, m.err
}

func (m *mockPaperService) ListPending(_ context.Context) ([]domain.Paper, error) {
	return m.papers, m.err
}

func (m *mockPaperService) Add(_ context.Context, paperID, pdfURL string) error {
	m.addedID = paperID
	m.addedURL = pdfURL
	return m.err
}

// installRuntime points the command runtime at the given mocks for one test.
func installRuntime(t *testing.T, summarise *mockSummariseService, papers *mockPaperService) *RuntimeOptions {
	t.Helper()
	var seen RuntimeOptions
	old := runtimeFactory
	runtimeFactory = func(_ context.Context, opts RuntimeOptions) (*Runtime, error) {
		seen = opts
		rt := &Runtime{Papers: papers}
		if !opts.StoreOnly && summarise != nil {
			summarise.onRun = opts.OnRun
			rt.Summarise = summarise
		}
		return rt, nil
	}
	t.Cleanup(func() { runtimeFactory = old })
	return &seen
}

func installSettings(t *testing.T, svc *mockSettingsService) {
	t.Helper()
	old := settingsService
	settingsService = svc
	t.Cleanup(func() { settingsService = old })
}
