// Package rest exposes the summarisation pipeline over HTTP.
//
// Routes:
//   - GET  /                   landing page with trigger forms
//   - GET  /health             liveness probe
//   - GET  /summarize_all      summarise every pending paper
//   - POST /summarize_single   summarise one paper (form or query paper_id)
//   - /mcp                     optional streamable MCP endpoint
package rest
