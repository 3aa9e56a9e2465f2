// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to run:
//
//   - DocumentStore: Paper selection and summary persistence
//   - ByteFetcher: Downloads a paper's bytes from its locator
//   - TextExtractor: Turns raw bytes into plain text (PDF, plain text)
//   - Tokenizer: Encodes text to tokens and back, used for chunking
//   - LLMService: Produces the per-chunk summaries
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - PromptStore: Customisable prompt templates. Without it, adapters use
//     their built-in defaults.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
