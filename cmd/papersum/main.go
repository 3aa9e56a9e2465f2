// Command papersum summarises research paper PDFs with an LLM.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/papersum/internal/adapters/driven/ai"
	"github.com/custodia-labs/papersum/internal/adapters/driven/config/file"
	"github.com/custodia-labs/papersum/internal/adapters/driving/cli"
	"github.com/custodia-labs/papersum/internal/core/services"
	"github.com/custodia-labs/papersum/internal/logger"
)

// version is set via ldflags: -X main.version=...
var version = "dev"

// envHome overrides the configuration directory.
const envHome = "PAPERSUM_HOME"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env file is normal.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load .env: %v", err)
	}

	configDir := os.Getenv(envHome)
	if configDir == "" {
		dir, err := file.DefaultConfigDir()
		if err != nil {
			return err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	prompts, err := file.NewPromptStore(filepath.Join(configDir, "prompts"))
	if err != nil {
		return fmt.Errorf("open prompts: %w", err)
	}

	settingsService := services.NewSettingsService(
		configStore,
		ai.NewConfigValidator(),
		services.WithDataDir(filepath.Join(configDir, "data")),
	)

	cli.SetVersion(version)
	cli.SetSettingsService(settingsService)
	cli.SetRuntimeFactory(newRuntimeFactory(settingsService, prompts))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx)
}
