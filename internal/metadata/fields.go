package metadata

import (
	"github.com/ytget/fetchtube/internal/model"
)

// Managed tag slots. The tag writers own these slots exclusively; anything
// else already present on a file is left alone.
const (
	SlotTitle       = "title"
	SlotArtist      = "artist"
	SlotAlbum       = "album"
	SlotAlbumArtist = "albumartist"
	SlotComment     = "comment"
)

// Fields maps managed tag slots to rendered string values. A Fields value is
// produced per entry, consumed once by a tag writer, then discarded.
type Fields map[string]string

// Context builds the placeholder context for one entry at the given 1-based
// position within the run
func Context(e *model.MediaEntry, index int) map[string]string {
	playlistTitle := e.PlaylistTitle
	if playlistTitle == "" {
		playlistTitle = e.Playlist
	}

	return map[string]string{
		PlaceholderTitle:         e.Title,
		PlaceholderUploader:      e.Uploader,
		PlaceholderChannel:       e.Channel,
		PlaceholderPlaylistTitle: playlistTitle,
		PlaceholderIndex:         IndexValue(index),
	}
}

// Resolve produces the tag fields for one entry according to the job's
// metadata mode. Blank mode yields no fields (the writer clears slots
// regardless). Custom mode renders each non-empty template; an empty
// rendered value falls through to the extracted default for that slot.
func Resolve(spec *model.JobSpec, e *model.MediaEntry, index int) Fields {
	if spec.MetadataMode == model.MetaBlank {
		return Fields{}
	}

	defaults := extractedDefaults(e)
	if spec.MetadataMode != model.MetaCustom {
		return defaults
	}

	ctx := Context(e, index)
	fields := Fields{}
	for slot, tmpl := range map[string]string{
		SlotTitle:       spec.Custom.Title,
		SlotArtist:      spec.Custom.Artist,
		SlotAlbum:       spec.Custom.Album,
		SlotAlbumArtist: spec.Custom.AlbumArtist,
		SlotComment:     spec.Custom.Comment,
	} {
		value := ""
		if tmpl != "" {
			value = Render(tmpl, ctx)
		}
		if value == "" {
			value = defaults[slot]
		}
		fields[slot] = value
	}
	return fields
}

// extractedDefaults maps engine-extracted entry metadata onto the managed
// slots. Album-artist carries the channel concept for audio output.
func extractedDefaults(e *model.MediaEntry) Fields {
	album := e.PlaylistTitle
	if album == "" {
		album = e.Playlist
	}

	return Fields{
		SlotTitle:       e.Title,
		SlotArtist:      e.Uploader,
		SlotAlbum:       album,
		SlotAlbumArtist: e.Channel,
		SlotComment:     "",
	}
}
