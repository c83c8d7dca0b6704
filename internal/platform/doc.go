package platform

// Package platform contains OS/platform integration and external tooling
// glue: filesystem helpers, default download locations, and presence checks
// for the external binaries the pipeline depends on.
