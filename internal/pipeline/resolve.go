package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/ytget/fetchtube/internal/model"
	"github.com/ytget/fetchtube/internal/platform"
)

// resolveOutput maps an engine-reported entry back to the real file on disk.
// Resolution order, first hit wins: the explicit reported path; the working
// filename (for audio targets, a same-name sibling with the audio extension
// is preferred, since post-download transcoding changes the extension); a
// filename re-derived from the entry metadata and the naming template.
// Returns "" when no candidate exists; callers skip enrichment then.
func resolveOutput(outputDir string, e *model.MediaEntry, kind model.ContainerKind, tmpl string) string {
	if e.Filepath != "" && !platform.IsTemporaryArtifact(e.Filepath) && platform.FileExists(e.Filepath) {
		return e.Filepath
	}

	if e.Filename != "" && !platform.IsTemporaryArtifact(e.Filename) {
		name := e.Filename
		if !filepath.IsAbs(name) {
			name = filepath.Join(outputDir, name)
		}
		if kind == model.KindAudio {
			if sibling := platform.ReplaceExt(name, kind.Ext()); platform.FileExists(sibling) {
				return sibling
			}
		}
		if platform.FileExists(name) {
			return name
		}
	}

	if derived := deriveFilename(tmpl, e); derived != "" {
		path := platform.ReplaceExt(filepath.Join(outputDir, derived), kind.Ext())
		if platform.FileExists(path) {
			return path
		}
	}

	return ""
}

// Naming template placeholders understood by deriveFilename
var templateReplacements = []string{
	"%(title)s",
	"%(id)s",
	"%(uploader)s",
	"%(ext)s",
}

// deriveFilename re-derives the expected filename from entry metadata and
// the engine naming template, applying the same filename restriction the
// engine was invoked with
func deriveFilename(tmpl string, e *model.MediaEntry) string {
	if tmpl == "" || e.Title == "" {
		return ""
	}

	values := map[string]string{
		"%(title)s":    restrictName(e.Title),
		"%(id)s":       e.ID,
		"%(uploader)s": restrictName(e.Uploader),
		"%(ext)s":      strings.TrimPrefix(e.Ext, "."),
	}

	name := tmpl
	for _, placeholder := range templateReplacements {
		name = strings.ReplaceAll(name, placeholder, values[placeholder])
	}

	if name == "" || strings.ContainsRune(name, '%') {
		return ""
	}
	return name
}

// restrictName mirrors the engine's restricted-filename sanitization:
// spaces become underscores and anything outside a conservative ASCII set
// is dropped
func restrictName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == ' ':
			b.WriteByte('_')
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
