package model

// Package model defines domain data structures used across the app: job
// specifications, resolved media entries, and run/progress state. Structures
// are designed for explicit state transitions and immutable snapshots pushed
// to subscribers.
