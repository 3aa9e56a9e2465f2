// Package mcp provides an MCP (Model Context Protocol) server adapter for papersum.
// It lets AI assistants trigger summarisation and read stored summaries.
package mcp

import "errors"

// ErrMissingSummariseService is returned when the summarise service is not provided.
var ErrMissingSummariseService = errors.New("mcp: summarise service is required")
