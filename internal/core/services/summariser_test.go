package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/papersum/internal/core/domain"
	"github.com/custodia-labs/papersum/internal/core/ports/driven"
)

func TestSummariser_SummariseChunk_Success(t *testing.T) {
	llm := &mockLLM{}
	s := NewSummariser(llm)

	result := s.SummariseChunk(context.Background(), domain.Chunk{Position: 4, Text: "Attention is all you need."})

	assert.Equal(t, domain.ChunkSummarised, result.Status)
	assert.Equal(t, 4, result.Position)
	assert.Equal(t, "S1", result.Summary)
	assert.NoError(t, result.Err)
}

func TestSummariser_UsesFixedGenerationBounds(t *testing.T) {
	llm := &mockLLM{}
	s := NewSummariser(llm)

	s.SummariseChunk(context.Background(), domain.Chunk{Text: "text"})

	require.Len(t, llm.opts, 1)
	assert.Equal(t, 150, llm.opts[0].MaxTokens)
	assert.Equal(t, 40, llm.opts[0].MinTokens)
	assert.Zero(t, llm.opts[0].Temperature)
}

func TestSummariser_WithGenerateOptions(t *testing.T) {
	llm := &mockLLM{}
	s := NewSummariser(llm, WithGenerateOptions(driven.GenerateOptions{MaxTokens: 90, MinTokens: 10}))

	s.SummariseChunk(context.Background(), domain.Chunk{Text: "text"})

	assert.Equal(t, 90, llm.opts[0].MaxTokens)
}

func TestSummariser_SummariseChunk_SkipsBlank(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t \n"} {
		llm := &mockLLM{}
		s := NewSummariser(llm)

		result := s.SummariseChunk(context.Background(), domain.Chunk{Position: 1, Text: text})

		assert.Equal(t, domain.ChunkSkipped, result.Status)
		assert.Empty(t, result.Summary)
		assert.NoError(t, result.Err)
		assert.Zero(t, llm.callCount())
	}
}

func TestSummariser_SummariseChunk_IsolatesModelError(t *testing.T) {
	modelErr := errors.New("CUDA out of memory")
	llm := &mockLLM{failOn: map[int]error{0: modelErr}}
	s := NewSummariser(llm)

	result := s.SummariseChunk(context.Background(), domain.Chunk{Position: 2, Text: "text"})

	assert.Equal(t, domain.ChunkFailed, result.Status)
	assert.Empty(t, result.Summary)
	assert.ErrorIs(t, result.Err, domain.ErrChunkSummarisation)
	assert.ErrorIs(t, result.Err, modelErr)
}

func TestSummariser_SummariseAll_OneResultPerChunk(t *testing.T) {
	llm := &mockLLM{failOn: map[int]error{1: errors.New("boom")}}
	s := NewSummariser(llm)
	chunks := []domain.Chunk{
		{Position: 0, Text: "one"},
		{Position: 1, Text: "two"},
		{Position: 2, Text: "  "},
		{Position: 3, Text: "four"},
	}

	results := s.SummariseAll(context.Background(), chunks)

	require.Len(t, results, len(chunks))
	for i, r := range results {
		assert.Equal(t, i, r.Position)
	}
	assert.Equal(t, domain.ChunkSummarised, results[0].Status)
	assert.Equal(t, domain.ChunkFailed, results[1].Status)
	assert.Equal(t, domain.ChunkSkipped, results[2].Status)
	assert.Equal(t, domain.ChunkSummarised, results[3].Status)
	assert.Equal(t, []string{"one", "two", "four"}, llm.calls)
}
