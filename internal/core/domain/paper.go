package domain

// Paper is a research paper as seen by the summarisation pipeline.
// The store owns the record; the pipeline only reads PDFURL and writes Summary.
type Paper struct {
	// ID is the unique, opaque paper identifier.
	ID string

	// PDFURL locates the paper's PDF. It may carry stray quoting or
	// bracket characters and must be normalised before fetching.
	PDFURL string

	// Summary is the AI generated summary, nil until computed.
	Summary *string
}

// HasSummary reports whether a summary has been stored for the paper.
func (p Paper) HasSummary() bool {
	return p.Summary != nil
}

// RawDocument holds the bytes fetched for a paper during one pipeline run.
// It is never persisted.
type RawDocument struct {
	// URI is the normalised locator the bytes were fetched from.
	URI string

	// MIMEType is the content type reported by the server (e.g., "application/pdf").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// LocalPath is the temporary spool file backing Content, if any.
	// The pipeline removes it once the paper has been processed.
	LocalPath string
}

// Chunk is a token-bounded contiguous slice of a paper's text.
type Chunk struct {
	// Position is the zero-based ordinal within the document.
	Position int

	// Tokens is the token window this chunk was decoded from.
	Tokens []int

	// Text is the decoded text of Tokens.
	Text string
}

// ChunkStatus describes what happened to a single chunk.
type ChunkStatus int

const (
	// ChunkSummarised means the model produced a summary.
	ChunkSummarised ChunkStatus = iota

	// ChunkSkipped means the chunk was blank and the model was not called.
	ChunkSkipped

	// ChunkFailed means the model call failed; Summary is the empty placeholder.
	ChunkFailed
)

// String returns the string representation.
func (s ChunkStatus) String() string {
	switch s {
	case ChunkSummarised:
		return "summarised"
	case ChunkSkipped:
		return "skipped"
	case ChunkFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ChunkResult is the outcome of summarising one chunk.
// A document always has exactly one ChunkResult per Chunk.
type ChunkResult struct {
	// Position mirrors Chunk.Position.
	Position int

	// Summary is the model output, or "" for skipped and failed chunks.
	Summary string

	// Status records how the chunk was handled.
	Status ChunkStatus

	// Err is the model error for failed chunks.
	Err error
}

// PipelineOutcome is reported for every paper that reached the persisted stage.
type PipelineOutcome struct {
	// PaperID identifies the summarised paper.
	PaperID string `json:"paper_id"`

	// Summary is the aggregated summary that was written to the store.
	Summary string `json:"summary"`
}

// Report is returned by the summarise entry points.
type Report struct {
	// Message is a human-readable status line.
	Message string `json:"message"`

	// Summaries lists the successfully persisted papers in selection order.
	Summaries []PipelineOutcome `json:"summaries"`
}
