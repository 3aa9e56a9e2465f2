package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/papersum/internal/core/domain"
	"github.com/custodia-labs/papersum/internal/core/ports/driven"
	"github.com/custodia-labs/papersum/internal/core/ports/driving"
	"github.com/custodia-labs/papersum/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.SummariseService = (*Pipeline)(nil)

// Report messages.
const (
	MessageNoPapers        = "No papers found to summarize."
	MessageComplete        = "Summarization complete"
	messageCompleteOnePrfx = "Summarization complete for paper "
)

// Pipeline drives papers through download, extraction, chunking,
// summarisation and persistence, one paper at a time.
type Pipeline struct {
	store      driven.DocumentStore
	fetcher    driven.ByteFetcher
	extractor  driven.TextExtractor
	chunker    *Chunker
	summariser *Summariser

	removeFile func(string) error
	observer   func(domain.DocumentRun)
}

// PipelineOption configures the pipeline.
type PipelineOption func(*Pipeline)

// WithRunObserver registers a callback invoked with every finished run,
// successful or not.
func WithRunObserver(fn func(domain.DocumentRun)) PipelineOption {
	return func(p *Pipeline) {
		p.observer = fn
	}
}

// withRemoveFile replaces the spool file cleanup. Used by tests.
func withRemoveFile(fn func(string) error) PipelineOption {
	return func(p *Pipeline) {
		p.removeFile = fn
	}
}

// NewPipeline creates a pipeline. The model and tokenizer are captured by the
// summariser and chunker and shared for the pipeline's lifetime.
func NewPipeline(
	store driven.DocumentStore,
	fetcher driven.ByteFetcher,
	extractor driven.TextExtractor,
	chunker *Chunker,
	summariser *Summariser,
	opts ...PipelineOption,
) *Pipeline {
	p := &Pipeline{
		store:      store,
		fetcher:    fetcher,
		extractor:  extractor,
		chunker:    chunker,
		summariser: summariser,
		removeFile: os.Remove,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SummariseAll summarises every paper that has no summary yet.
func (p *Pipeline) SummariseAll(ctx context.Context) (*domain.Report, error) {
	papers, err := p.store.SelectPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("select pending papers: %w", err)
	}
	return p.run(ctx, papers, MessageComplete)
}

// SummariseOne summarises a single paper, overwriting any existing summary.
func (p *Pipeline) SummariseOne(ctx context.Context, paperID string) (*domain.Report, error) {
	paperID = strings.TrimSpace(paperID)
	if paperID == "" {
		return nil, domain.ErrMissingIdentifier
	}

	papers, err := p.store.SelectByID(ctx, paperID)
	if err != nil {
		return nil, fmt.Errorf("select paper %s: %w", paperID, err)
	}
	return p.run(ctx, papers, messageCompleteOnePrfx+paperID)
}

// run processes the selected papers in order and reports the persisted ones.
func (p *Pipeline) run(ctx context.Context, papers []domain.Paper, message string) (*domain.Report, error) {
	if len(papers) == 0 {
		logger.Info("No papers found that require summarisation")
		return &domain.Report{Message: MessageNoPapers, Summaries: []domain.PipelineOutcome{}}, nil
	}

	report := &domain.Report{
		Message:   message,
		Summaries: make([]domain.PipelineOutcome, 0, len(papers)),
	}

	for _, paper := range papers {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("summarise: %w", err)
		}

		run, summary := p.process(ctx, paper)
		if p.observer != nil {
			p.observer(*run)
		}
		if !run.Succeeded() {
			continue
		}
		report.Summaries = append(report.Summaries, domain.PipelineOutcome{
			PaperID: paper.ID,
			Summary: summary,
		})
	}

	return report, nil
}

// process drives one paper to a terminal stage and returns the run with
// the persisted summary.
func (p *Pipeline) process(ctx context.Context, paper domain.Paper) (*domain.DocumentRun, string) {
	run := domain.NewDocumentRun(paper.ID)
	logger.Section("Paper " + paper.ID)
	logger.Info("Processing paper %s", paper.ID)

	// Selected -> Downloaded
	raw, err := p.fetcher.Fetch(ctx, paper.PDFURL)
	if raw != nil && raw.LocalPath != "" {
		defer p.cleanup(raw.LocalPath)
	}
	if err == nil && (raw == nil || len(raw.Content) == 0) {
		err = errors.New("empty body")
	}
	if err != nil {
		logger.Error("Failed to download PDF for paper %s: %v", paper.ID, err)
		run.Fail(wrapStage(domain.ErrDownloadFailed, err))
		return run, ""
	}
	if !p.advance(run, domain.StageDownloaded) {
		return run, ""
	}

	// Downloaded -> Extracted
	text, err := p.extractor.Extract(ctx, raw)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("no text extracted")
	}
	if err != nil {
		logger.Error("Failed to extract text for paper %s: %v", paper.ID, err)
		run.Fail(wrapStage(domain.ErrExtractionFailed, err))
		return run, ""
	}
	if !p.advance(run, domain.StageExtracted) {
		return run, ""
	}

	// Extracted -> Chunked -> Summarised. Chunk failures are absorbed.
	chunks := p.chunker.Split(text)
	logger.Debug("Split paper %s into %d chunks", paper.ID, len(chunks))
	if !p.advance(run, domain.StageChunked) {
		return run, ""
	}
	summary := Aggregate(p.summariser.SummariseAll(ctx, chunks))
	if !p.advance(run, domain.StageSummarised) {
		return run, ""
	}

	// Summarised -> Persisted
	if err := p.store.UpdateSummary(ctx, paper.ID, summary); err != nil {
		logger.Error("Failed to store summary for paper %s: %v", paper.ID, err)
		run.Fail(wrapStage(domain.ErrPersistFailed, err))
		return run, ""
	}
	if !p.advance(run, domain.StagePersisted) {
		return run, ""
	}

	logger.Info("Summary updated for paper %s", paper.ID)
	return run, summary
}

// advance moves the run forward, failing it on an invalid transition.
func (p *Pipeline) advance(run *domain.DocumentRun, to domain.Stage) bool {
	if err := run.Advance(to); err != nil {
		logger.Error("Paper %s: %v", run.PaperID, err)
		run.Fail(err)
		return false
	}
	return true
}

// cleanup removes a temporary spool file.
func (p *Pipeline) cleanup(path string) {
	if err := p.removeFile(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Failed to remove temporary file %s: %v", path, err)
	}
}

// wrapStage tags err with the stage sentinel unless it already carries it.
func wrapStage(sentinel, err error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
