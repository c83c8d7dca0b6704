package tagging

import (
	"path/filepath"
	"strings"

	"github.com/ytget/fetchtube/internal/metadata"
)

// Writer applies or clears the managed tag slots on a produced file. Apply
// always removes the managed slots first so reapplying never leaves stale
// values from a previous run; when clearOnly is false the non-empty fields
// are then written back. EmbedCover replaces only the embedded picture and
// never touches textual slots.
type Writer interface {
	Apply(path string, fields metadata.Fields, clearOnly bool) error
	EmbedCover(path string, img []byte, mime string) error
}

// ForPath selects the tag writer for a file by its container extension.
// Returns nil when no writer supports the container; callers treat that as
// "skip tagging for this file".
func ForPath(path string) Writer {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return &ID3Writer{}
	case ".m4a", ".m4b", ".mp4", ".m4v":
		return &MP4Writer{}
	default:
		return nil
	}
}
