package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/papersum/internal/core/domain"
	"github.com/custodia-labs/papersum/internal/core/ports/driven"
	"github.com/custodia-labs/papersum/internal/logger"
)

// Summariser invokes the language model on one chunk at a time.
// A model failure on one chunk never fails the document.
type Summariser struct {
	llm  driven.LLMService
	opts driven.GenerateOptions
}

// SummariserOption configures the summariser.
type SummariserOption func(*Summariser)

// WithGenerateOptions overrides the generation bounds.
func WithGenerateOptions(opts driven.GenerateOptions) SummariserOption {
	return func(s *Summariser) {
		s.opts = opts
	}
}

// NewSummariser creates a summariser using the fixed summary bounds
// from driven.SummaryOptions unless overridden.
func NewSummariser(llm driven.LLMService, opts ...SummariserOption) *Summariser {
	s := &Summariser{
		llm:  llm,
		opts: driven.SummaryOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SummariseChunk summarises a single chunk.
// Blank chunks are skipped without calling the model. Model errors produce a
// ChunkFailed result with an empty summary.
func (s *Summariser) SummariseChunk(ctx context.Context, chunk domain.Chunk) domain.ChunkResult {
	result := domain.ChunkResult{Position: chunk.Position}

	if strings.TrimSpace(chunk.Text) == "" {
		logger.Debug("Skipping empty chunk %d", chunk.Position+1)
		result.Status = domain.ChunkSkipped
		return result
	}

	summary, err := s.llm.Summarise(ctx, chunk.Text, s.opts)
	if err != nil {
		logger.Warn("Error summarising chunk %d: %v", chunk.Position+1, err)
		result.Status = domain.ChunkFailed
		result.Err = fmt.Errorf("%w: chunk %d: %w", domain.ErrChunkSummarisation, chunk.Position, err)
		return result
	}

	result.Status = domain.ChunkSummarised
	result.Summary = summary
	return result
}

// SummariseAll summarises chunks sequentially, returning one result per chunk
// in the same order.
func (s *Summariser) SummariseAll(ctx context.Context, chunks []domain.Chunk) []domain.ChunkResult {
	results := make([]domain.ChunkResult, 0, len(chunks))
	for _, chunk := range chunks {
		logger.Info("Summarising chunk %d/%d (length: %d words)",
			chunk.Position+1, len(chunks), len(strings.Fields(chunk.Text)))
		results = append(results, s.SummariseChunk(ctx, chunk))
	}
	return results
}
