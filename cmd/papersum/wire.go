package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/papersum/internal/adapters/driven/ai"
	"github.com/custodia-labs/papersum/internal/adapters/driven/config/file"
	"github.com/custodia-labs/papersum/internal/adapters/driven/storage"
	"github.com/custodia-labs/papersum/internal/adapters/driven/tokenizer"
	"github.com/custodia-labs/papersum/internal/adapters/driving/cli"
	"github.com/custodia-labs/papersum/internal/connectors"
	"github.com/custodia-labs/papersum/internal/connectors/filesystem"
	"github.com/custodia-labs/papersum/internal/connectors/web"
	"github.com/custodia-labs/papersum/internal/core/domain"
	"github.com/custodia-labs/papersum/internal/core/ports/driven"
	"github.com/custodia-labs/papersum/internal/core/ports/driving"
	"github.com/custodia-labs/papersum/internal/core/services"
	"github.com/custodia-labs/papersum/internal/logger"
	"github.com/custodia-labs/papersum/internal/normalisers"
	"github.com/custodia-labs/papersum/internal/normalisers/pdf"
	"github.com/custodia-labs/papersum/internal/normalisers/plaintext"
)

// newRuntimeFactory builds the pipeline from settings on demand, so that
// settings commands work before a store or provider is configured.
func newRuntimeFactory(settingsService driving.SettingsService, prompts *file.PromptStore) cli.RuntimeFactory {
	return func(ctx context.Context, opts cli.RuntimeOptions) (*cli.Runtime, error) {
		settings, err := settingsService.Get()
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}

		store, err := storage.Open(ctx, settings.Store)
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", settings.Store.Kind, err)
		}
		logger.Debug("Opened %s store", settings.Store.Kind)

		rt := &cli.Runtime{
			Papers: services.NewPaperService(store),
			Close:  store.Close,
		}
		if opts.StoreOnly {
			return rt, nil
		}

		if err := settingsService.Validate(); err != nil {
			_ = store.Close()
			return nil, err
		}

		llm, err := ai.CreateAndValidateLLMService(ctx, &settings.LLM, prompts)
		if err != nil {
			_ = store.Close()
			return nil, err
		}

		summarise, err := newPipeline(settings, store, llm, opts.OnRun)
		if err != nil {
			_ = llm.Close()
			_ = store.Close()
			return nil, err
		}

		rt.Summarise = summarise
		rt.Watch = prompts.Watch
		rt.Close = func() error {
			return errors.Join(llm.Close(), store.Close())
		}
		return rt, nil
	}
}

func newPipeline(
	settings *domain.AppSettings,
	store driven.DocumentStore,
	llm driven.LLMService,
	onRun func(domain.DocumentRun),
) (*services.Pipeline, error) {
	encoding := settings.Summariser.Encoding
	if encoding == "" {
		encoding = tokenizer.EncodingForModel(llm.ModelName())
	}
	tok, err := tokenizer.New(encoding)
	if err != nil {
		return nil, err
	}
	logger.Debug("Using %s with %s tokenizer", llm.ModelName(), tok.Name())

	remote := web.New(
		web.WithTimeout(settings.Fetch.Timeout),
		web.WithRateLimit(settings.Fetch.RequestsPerSecond, 1),
		web.WithTempDir(settings.Fetch.TempDir),
		web.WithUserAgent(settings.Fetch.UserAgent),
	)
	var local driven.ByteFetcher
	if settings.Fetch.LocalRoot != "" {
		fs, err := filesystem.New(settings.Fetch.LocalRoot)
		if err != nil {
			return nil, err
		}
		local = fs
	}
	fetcher := connectors.NewRouter(remote, local)

	extractor := normalisers.NewRegistry(pdf.New(), plaintext.New())

	chunker := services.NewChunker(tok, services.WithMaxTokens(settings.Summariser.ChunkTokens))
	summariser := services.NewSummariser(llm, services.WithGenerateOptions(driven.GenerateOptions{
		MaxTokens: settings.Summariser.MaxTokens,
		MinTokens: settings.Summariser.MinTokens,
	}))

	var opts []services.PipelineOption
	if onRun != nil {
		opts = append(opts, services.WithRunObserver(onRun))
	}
	return services.NewPipeline(store, fetcher, extractor, chunker, summariser, opts...), nil
}
