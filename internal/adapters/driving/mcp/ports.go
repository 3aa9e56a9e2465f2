package mcp

import (
	"github.com/custodia-labs/papersum/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server uses.
type Ports struct {
	// Summarise runs the pipeline.
	Summarise driving.SummariseService

	// Papers reads the catalogue. Optional; resources return nothing without it.
	Papers driving.PaperService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Summarise == nil {
		return ErrMissingSummariseService
	}
	return nil
}
