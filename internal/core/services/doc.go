// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The summarisation pipeline is split into four parts:
//
//   - Chunker: splits extracted text into fixed token windows
//   - Summariser: summarises one chunk, isolating model failures
//   - Aggregate: joins chunk summaries in document order
//   - Pipeline: selects papers and drives each through its stages
//
// Services are pure Go with no CGO or external dependencies.
package services
