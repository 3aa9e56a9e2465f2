// Package domain defines the core business entities for papersum.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Paper: A research paper record owned by the document store
//   - RawDocument: Opaque bytes fetched from a paper's locator
//   - Chunk: A token-bounded slice of extracted text
//   - ChunkResult: The per-chunk summarisation outcome
//   - DocumentRun: The stage a paper has reached in one pipeline run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
