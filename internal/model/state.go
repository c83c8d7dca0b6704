package model

import (
	"fmt"
)

// RunState represents the overall status of a pipeline run
type RunState string

const (
	// StateIdle means no run is active
	StateIdle RunState = "Idle"

	// StatePreparing means the run is validating and probing item count
	StatePreparing RunState = "Preparing"

	// StateDownloading means the engine transfer is in progress
	StateDownloading RunState = "Downloading"

	// StateProcessing means per-item enrichment is in progress
	StateProcessing RunState = "Processing"

	// StateDone means the run finished successfully
	StateDone RunState = "Done"

	// StateCancelled means the run was cancelled by the user
	StateCancelled RunState = "Cancelled"

	// StateFailed means the run failed with an error
	StateFailed RunState = "Failed"
)

// String returns the string representation of RunState
func (s RunState) String() string {
	return string(s)
}

// IsActive returns true if the state belongs to a run in flight
func (s RunState) IsActive() bool {
	return s == StatePreparing || s == StateDownloading || s == StateProcessing
}

// IsTerminal returns true if the state is final for the run
func (s RunState) IsTerminal() bool {
	return s == StateDone || s == StateCancelled || s == StateFailed
}

// ProgressSnapshot is an immutable view of run progress pushed to
// subscribers. Byte counters reset per item; item counters are monotonic.
type ProgressSnapshot struct {
	State           RunState
	TotalItems      int
	CompletedItems  int
	DownloadedBytes int64
	TotalBytes      int64
	Percent         float64 // 0 to 100
	Speed           string  // human readable speed (e.g., "1.2MB/s")
	ETASec          int     // ETA in seconds, -1 if unknown
	Message         string
}

// RemainingItems returns how many items are left to complete, never negative
func (p ProgressSnapshot) RemainingItems() int {
	remaining := p.TotalItems - p.CompletedItems
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (p ProgressSnapshot) ETAString() string {
	return FormatETA(p.ETASec)
}

// FormatETA formats a second count as mm:ss or hh:mm:ss, "—" if unknown
func FormatETA(etaSec int) string {
	if etaSec <= 0 {
		return "—"
	}

	hours := etaSec / 3600
	minutes := (etaSec % 3600) / 60
	seconds := etaSec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// FormatSpeed formats a byte rate as a human readable MB/s string
func FormatSpeed(bytesPerSecond float64) string {
	if bytesPerSecond <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
}
