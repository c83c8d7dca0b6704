package engine

// Package engine wraps the external extraction/download subsystem behind a
// small interface: a download-free probe to enumerate items, and a
// synchronous download that streams raw progress events and returns the
// flattened sequence of produced entries.
