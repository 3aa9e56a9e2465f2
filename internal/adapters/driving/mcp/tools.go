package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/papersum/internal/core/domain"
)

// SummariseAllInput is the (empty) input of the summarise_all tool.
type SummariseAllInput struct{}

// SummarisePaperInput is the input schema for the summarise_paper tool.
type SummarisePaperInput struct {
	PaperID string `json:"paper_id" jsonschema:"ID of the paper to summarise; any existing summary is replaced"`
}

// ReportOutput is the output of both summarise tools.
type ReportOutput struct {
	Message   string                   `json:"message"`
	Summaries []domain.PipelineOutcome `json:"summaries"`
	Count     int                      `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarise_all",
		Description: "Summarise every paper that does not have a summary yet",
	}, s.handleSummariseAll)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summarise_paper",
		Description: "Summarise one paper by ID, replacing any existing summary",
	}, s.handleSummarisePaper)
}

func (s *Server) handleSummariseAll(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ SummariseAllInput,
) (*mcp.CallToolResult, ReportOutput, error) {
	report, err := s.ports.Summarise.SummariseAll(ctx)
	if err != nil {
		return nil, ReportOutput{}, err
	}
	return nil, toOutput(report), nil
}

func (s *Server) handleSummarisePaper(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummarisePaperInput,
) (*mcp.CallToolResult, ReportOutput, error) {
	report, err := s.ports.Summarise.SummariseOne(ctx, input.PaperID)
	if err != nil {
		return nil, ReportOutput{}, err
	}
	return nil, toOutput(report), nil
}

func toOutput(report *domain.Report) ReportOutput {
	summaries := report.Summaries
	if summaries == nil {
		summaries = []domain.PipelineOutcome{}
	}
	return ReportOutput{
		Message:   report.Message,
		Summaries: summaries,
		Count:     len(summaries),
	}
}
