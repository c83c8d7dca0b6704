package pipeline

// Package pipeline drives a download job end to end: pre-flight item count
// probe, engine invocation with aggregated progress and cooperative
// cancellation, and the deterministic per-item post-processing pass that
// resolves output files, applies tag metadata, and upgrades cover art. One
// background worker runs at a time; subscribers observe the run only
// through immutable snapshots and log lines on the event channel.
