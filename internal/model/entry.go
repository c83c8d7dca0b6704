package model

import "strings"

// Thumbnail describes one candidate cover image reported by the engine
type Thumbnail struct {
	URL    string
	Width  int
	Height int
}

// MediaEntry is the engine's description of one resolved item. Entries exist
// only for the duration of a single run and are never persisted.
type MediaEntry struct {
	ID            string
	Title         string
	Uploader      string
	Channel       string
	Playlist      string
	PlaylistTitle string
	WebpageURL    string

	// Filename is the engine's working filename; its extension may predate
	// post-download transcoding. Filepath, when set, is the final reported
	// location on disk.
	Filename string
	Filepath string
	Ext      string

	Thumbnails []Thumbnail
}

// DisplayTitle returns title, filename, or webpage URL in order of preference
func (e *MediaEntry) DisplayTitle() string {
	if e.Title != "" && !strings.HasPrefix(e.Title, "http") {
		return e.Title
	}

	if e.Filename != "" {
		parts := strings.FieldsFunc(e.Filename, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			name := parts[len(parts)-1]
			if idx := strings.LastIndex(name, "."); idx > 0 {
				name = name[:idx]
			}
			return name
		}
	}

	return e.WebpageURL
}
