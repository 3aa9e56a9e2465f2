// Package cli implements the papersum command line.
//
// Commands read their dependencies from package-level services installed by
// the binary's main before Execute is called.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/papersum/internal/core/ports/driving"
	"github.com/custodia-labs/papersum/internal/logger"
)

// version is overridden at build time via ldflags.
var version = "dev"

var verbose bool

var (
	settingsService driving.SettingsService
	runtimeFactory  RuntimeFactory
)

var rootCmd = &cobra.Command{
	Use:   "papersum",
	Short: "Summarise research papers with an LLM",
	Long: `papersum downloads research paper PDFs listed in a document store,
extracts their text, summarises it chunk by chunk with a language model and
writes the combined summary back to the store.

Configure a provider and a store first:
  papersum settings llm
  papersum settings store

Then summarise every pending paper:
  papersum summarise`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output")
}

// SetVersion sets the version reported by the version command and /health.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetSettingsService installs the settings service.
func SetSettingsService(svc driving.SettingsService) {
	settingsService = svc
}

// SetRuntimeFactory installs the factory that opens the pipeline runtime.
func SetRuntimeFactory(f RuntimeFactory) {
	runtimeFactory = f
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
