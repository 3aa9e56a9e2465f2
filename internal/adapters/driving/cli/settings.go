package cli

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/papersum/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the LLM provider, document store and pipeline bounds.

Environment variables (PAPERSUM_*) and a .env file override stored values.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long:  `Configure the LLM provider used to summarise paper chunks.`,
	RunE:  runSettingsLLM,
}

var settingsStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Configure document store",
	Long:  `Configure the database holding papers and their summaries.`,
	RunE:  runSettingsStore,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsStoreCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	if settings.LLM.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	cmd.Printf("  Status: %s\n", configuredStatus(settings.LLM.IsConfigured()))
	cmd.Println()

	cmd.Println("[Store]")
	cmd.Printf("  Kind: %s\n", settings.Store.Kind)
	switch settings.Store.Kind {
	case domain.StoreMemory, domain.StoreSQLite:
		if settings.Store.Path != "" {
			cmd.Printf("  Path: %s\n", settings.Store.Path)
		}
	case domain.StorePostgres, domain.StoreMongo:
		cmd.Printf("  DSN: %s\n", maskDSN(settings.Store.DSN))
		if settings.Store.Kind == domain.StoreMongo {
			cmd.Printf("  Database: %s\n", settings.Store.Database)
		}
		cmd.Printf("  Collection: %s\n", settings.Store.Collection)
	}
	cmd.Printf("  Status: %s\n", configuredStatus(settings.Store.IsConfigured()))
	cmd.Println()

	cmd.Println("[Summariser]")
	cmd.Printf("  Chunk tokens: %d\n", settings.Summariser.ChunkTokens)
	cmd.Printf("  Summary tokens: %d-%d\n", settings.Summariser.MinTokens, settings.Summariser.MaxTokens)
	if settings.Summariser.Encoding != "" {
		cmd.Printf("  Encoding: %s\n", settings.Summariser.Encoding)
	}
	cmd.Println()

	cmd.Println("[Fetch]")
	cmd.Printf("  Timeout: %s\n", settings.Fetch.Timeout)
	cmd.Printf("  Requests/second: %g\n", settings.Fetch.RequestsPerSecond)
	if settings.Fetch.LocalRoot != "" {
		cmd.Printf("  Local root: %s\n", settings.Fetch.LocalRoot)
	}
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Port: %d\n", settings.Server.Port)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'papersum settings llm' or 'papersum settings store' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	return configureLLMProvider(cmd, reader)
}

func runSettingsStore(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	return configureStore(cmd, reader)
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	defaultModel := domain.DefaultLLMModels()[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword(reader)
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetLLMProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

func configureStore(cmd *cobra.Command, reader *bufio.Reader) error {
	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Select Document Store")
	kinds := domain.AllStoreKinds()
	defaultIdx := 1
	for i, k := range kinds {
		cmd.Printf("  %d. %s\n", i+1, k)
		if k == current.Store.Kind {
			defaultIdx = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", defaultIdx)
	idx := parseChoice(readLine(reader), len(kinds), defaultIdx)

	store := domain.StoreSettings{Kind: kinds[idx-1], Collection: current.Store.Collection}
	if store.Kind == current.Store.Kind {
		store = current.Store
	}

	switch store.Kind {
	case domain.StoreMemory:
		store.Path = prompt(cmd, reader, "Seed file (optional)", store.Path)
	case domain.StoreSQLite:
		store.Path = prompt(cmd, reader, "Database file", store.Path)
	case domain.StorePostgres:
		store.DSN = prompt(cmd, reader, "Connection string", store.DSN)
		store.Collection = prompt(cmd, reader, "Table", store.Collection)
	case domain.StoreMongo:
		store.DSN = prompt(cmd, reader, "Connection URI", store.DSN)
		store.Database = prompt(cmd, reader, "Database", store.Database)
		store.Collection = prompt(cmd, reader, "Collection", store.Collection)
	}

	if err := settingsService.SetStore(store); err != nil {
		return fmt.Errorf("failed to configure store: %w", err)
	}

	cmd.Printf("Document store configured: %s\n\n", store.Kind)
	return nil
}

// Helper functions.

// prompt reads a value, keeping current when the input is empty.
func prompt(cmd *cobra.Command, reader *bufio.Reader, label, current string) string {
	if current != "" {
		cmd.Printf("%s [%s]: ", label, current)
	} else {
		cmd.Printf("%s: ", label)
	}
	if v := readLine(reader); v != "" {
		return v
	}
	return current
}

func configuredStatus(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo on a terminal, else falls back to reader.
func readPassword(reader *bufio.Reader) string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// maskDSN hides the password of URL-style connection strings.
// Keyword-style DSNs are masked entirely.
func maskDSN(dsn string) string {
	if dsn == "" {
		return "(not set)"
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return maskAPIKey(dsn)
	}
	return u.Redacted()
}
