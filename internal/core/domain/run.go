package domain

import "fmt"

// Stage is a step in the per-paper pipeline state machine.
type Stage string

// Pipeline stages in the order a successful run passes through them.
const (
	StageSelected   Stage = "selected"
	StageDownloaded Stage = "downloaded"
	StageExtracted  Stage = "extracted"
	StageChunked    Stage = "chunked"
	StageSummarised Stage = "summarised"
	StagePersisted  Stage = "persisted"
	StageFailed     Stage = "failed"
)

// IsTerminal reports whether no further transition is possible.
func (s Stage) IsTerminal() bool {
	return s == StagePersisted || s == StageFailed
}

// next maps each non-terminal stage to its single successor.
var next = map[Stage]Stage{
	StageSelected:   StageDownloaded,
	StageDownloaded: StageExtracted,
	StageExtracted:  StageChunked,
	StageChunked:    StageSummarised,
	StageSummarised: StagePersisted,
}

// DocumentRun tracks one paper through one pipeline run.
type DocumentRun struct {
	// PaperID identifies the paper being processed.
	PaperID string

	// Stage is the current stage.
	Stage Stage

	// FailedAt is the stage that was being attempted when the run failed.
	FailedAt Stage

	// Err is the failure cause for failed runs.
	Err error
}

// NewDocumentRun starts a run in the selected stage.
func NewDocumentRun(paperID string) *DocumentRun {
	return &DocumentRun{PaperID: paperID, Stage: StageSelected}
}

// Advance moves the run to the given stage.
// Only the immediate successor of the current stage is accepted.
func (r *DocumentRun) Advance(to Stage) error {
	want, ok := next[r.Stage]
	if !ok || want != to {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Stage, to)
	}
	r.Stage = to
	return nil
}

// Fail moves the run to the failed stage, recording the stage being attempted.
func (r *DocumentRun) Fail(err error) {
	if r.Stage.IsTerminal() {
		return
	}
	r.FailedAt = next[r.Stage]
	r.Stage = StageFailed
	r.Err = err
}

// Succeeded reports whether the run reached the persisted stage.
func (r *DocumentRun) Succeeded() bool {
	return r.Stage == StagePersisted
}
