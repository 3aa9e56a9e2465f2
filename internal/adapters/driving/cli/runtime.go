package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/papersum/internal/core/domain"
	"github.com/custodia-labs/papersum/internal/core/ports/driving"
)

// Runtime holds the services a command needs for one invocation.
type Runtime struct {
	// Summarise runs the pipeline. Nil when opened with StoreOnly.
	Summarise driving.SummariseService

	// Papers reads and registers papers.
	Papers driving.PaperService

	// Watch hot-reloads prompt templates until ctx is done. May be nil.
	Watch func(ctx context.Context) error

	// Close releases the store and model clients.
	Close func() error
}

// RuntimeOptions tune how a runtime is opened.
type RuntimeOptions struct {
	// StoreOnly skips the LLM and pipeline.
	StoreOnly bool

	// OnRun is called with every finished paper run.
	OnRun func(domain.DocumentRun)
}

// RuntimeFactory opens a runtime from the current settings.
type RuntimeFactory func(ctx context.Context, opts RuntimeOptions) (*Runtime, error)

func openRuntime(ctx context.Context, opts RuntimeOptions) (*Runtime, error) {
	if runtimeFactory == nil {
		return nil, errors.New("pipeline not configured")
	}
	rt, err := runtimeFactory(ctx, opts)
	if err != nil {
		return nil, err
	}
	if rt.Close == nil {
		rt.Close = func() error { return nil }
	}
	if !opts.StoreOnly && rt.Summarise == nil {
		_ = rt.Close()
		return nil, errors.New("summarise service not configured")
	}
	return rt, nil
}
