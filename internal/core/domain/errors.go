package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown provider, store or MIME type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// Pipeline Errors.

	// ErrMissingIdentifier indicates a single-paper request without a paper ID.
	ErrMissingIdentifier = errors.New("missing paper_id")

	// ErrDownloadFailed indicates the paper's bytes could not be fetched.
	ErrDownloadFailed = errors.New("download failed")

	// ErrExtractionFailed indicates no usable text was extracted from the paper.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrChunkSummarisation indicates the model failed on a single chunk.
	// It never fails the document; the chunk contributes an empty placeholder.
	ErrChunkSummarisation = errors.New("chunk summarisation failed")

	// ErrPersistFailed indicates the summary could not be written back.
	ErrPersistFailed = errors.New("persist failed")

	// ErrInvalidTransition indicates a pipeline stage was skipped or repeated.
	ErrInvalidTransition = errors.New("invalid stage transition")
)
