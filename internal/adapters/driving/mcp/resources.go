package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/papersum/internal/core/domain"
)

const uriScheme = "papersum://"

// paperInfo is the JSON shape of a paper resource.
type paperInfo struct {
	PaperID string  `json:"paper_id"`
	PDFURL  string  `json:"pdf_url"`
	Summary *string `json:"ai_generated_summary"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "papers/pending",
		Name:        "pending-papers",
		Description: "Papers that do not have a summary yet",
		MIMEType:    "application/json",
	}, s.handlePendingResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "papers/{paperId}",
		Name:        "paper",
		Description: "A paper and its stored summary",
		MIMEType:    "application/json",
	}, s.handlePaperResource)
}

func (s *Server) handlePendingResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Papers == nil {
		return jsonResult(req.Params.URI, "[]"), nil
	}

	papers, err := s.ports.Papers.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing pending papers: %w", err)
	}

	infos := make([]paperInfo, len(papers))
	for i, p := range papers {
		infos[i] = toInfo(p)
	}
	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling papers: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

func (s *Server) handlePaperResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Papers == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	paperID := extractPaperID(req.Params.URI)
	if paperID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	paper, err := s.ports.Papers.Get(ctx, paperID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting paper: %w", err)
	}

	data, err := json.MarshalIndent(toInfo(*paper), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling paper: %w", err)
	}
	return jsonResult(req.Params.URI, string(data)), nil
}

// extractPaperID extracts the ID from papersum://papers/{paperId}.
// The static pending listing is not a paper.
func extractPaperID(uri string) string {
	const prefix = uriScheme + "papers/"

	id, ok := strings.CutPrefix(uri, prefix)
	if !ok || id == "pending" || strings.Contains(id, "/") {
		return ""
	}
	return id
}

func toInfo(p domain.Paper) paperInfo {
	return paperInfo{PaperID: p.ID, PDFURL: p.PDFURL, Summary: p.Summary}
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}
