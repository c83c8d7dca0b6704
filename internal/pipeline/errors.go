package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrRunActive rejects a submission while another run is active
	ErrRunActive = errors.New("a run is already active")
)

// ValidationError reports a bad or missing job field, or a missing external
// capability required by the selected options. It is surfaced before any
// run starts.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid job: %s: %s", e.Field, e.Reason)
}

// EngineError is fatal to a run: the engine failed outside of cancellation
type EngineError struct {
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("engine error: %v", e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// PostProcessError is a per-file enrichment failure. It is logged with the
// offending filename and never affects sibling files or the run's terminal
// state.
type PostProcessError struct {
	Path string
	Err  error
}

func (e *PostProcessError) Error() string {
	return fmt.Sprintf("post-processing %s: %v", e.Path, e.Err)
}

func (e *PostProcessError) Unwrap() error {
	return e.Err
}
