package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/papersum/internal/core/domain"
)

func TestServer_handleSummariseAll(t *testing.T) {
	ctx := context.Background()

	t.Run("returns report", func(t *testing.T) {
		summarise := &mockSummariseService{report: &domain.Report{
			Message: "Summarization complete",
			Summaries: []domain.PipelineOutcome{
				{PaperID: "p1", Summary: "S1 S2"},
				{PaperID: "p2", Summary: "S3"},
			},
		}}
		server, err := NewServer(&Ports{Summarise: summarise})
		require.NoError(t, err)

		_, output, err := server.handleSummariseAll(ctx, nil, SummariseAllInput{})

		require.NoError(t, err)
		assert.Equal(t, "Summarization complete", output.Message)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, "S1 S2", output.Summaries[0].Summary)
	})

	t.Run("nothing pending yields empty list", func(t *testing.T) {
		summarise := &mockSummariseService{report: &domain.Report{Message: "No papers found to summarize."}}
		server, err := NewServer(&Ports{Summarise: summarise})
		require.NoError(t, err)

		_, output, err := server.handleSummariseAll(ctx, nil, SummariseAllInput{})

		require.NoError(t, err)
		assert.NotNil(t, output.Summaries)
		assert.Zero(t, output.Count)
	})

	t.Run("propagates errors", func(t *testing.T) {
		server, err := NewServer(&Ports{Summarise: &mockSummariseService{err: errors.New("store down")}})
		require.NoError(t, err)

		_, _, err = server.handleSummariseAll(ctx, nil, SummariseAllInput{})

		assert.ErrorContains(t, err, "store down")
	})
}

func TestServer_handleSummarisePaper(t *testing.T) {
	ctx := context.Background()

	t.Run("passes the paper id", func(t *testing.T) {
		summarise := &mockSummariseService{report: &domain.Report{
			Message:   "Summarization complete for paper p7",
			Summaries: []domain.PipelineOutcome{{PaperID: "p7", Summary: "S"}},
		}}
		server, err := NewServer(&Ports{Summarise: summarise})
		require.NoError(t, err)

		_, output, err := server.handleSummarisePaper(ctx, nil, SummarisePaperInput{PaperID: "p7"})

		require.NoError(t, err)
		assert.True(t, summarise.oneCall)
		assert.Equal(t, "p7", summarise.lastID)
		assert.Equal(t, 1, output.Count)
	})

	t.Run("missing id error surfaces", func(t *testing.T) {
		summarise := &mockSummariseService{err: domain.ErrMissingIdentifier}
		server, err := NewServer(&Ports{Summarise: summarise})
		require.NoError(t, err)

		_, _, err = server.handleSummarisePaper(ctx, nil, SummarisePaperInput{})

		assert.ErrorIs(t, err, domain.ErrMissingIdentifier)
	})
}
