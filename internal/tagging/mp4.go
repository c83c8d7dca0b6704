package tagging

import (
	"fmt"

	mp4tag "github.com/Sorrow446/go-mp4tag"

	"github.com/ytget/fetchtube/internal/metadata"
)

// Managed box atoms, by go-mp4tag delete name
var mp4ManagedAtoms = []string{
	"title",
	"artist",
	"album",
	"albumartist",
	"comment",
	"cover",
}

// MP4Writer manages box-atom tags on mp4-family containers
type MP4Writer struct{}

// Apply clears the managed atoms and, unless clearOnly, writes the given
// fields back
func (w *MP4Writer) Apply(path string, fields metadata.Fields, clearOnly bool) error {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("mp4 open error: %w", err)
	}
	defer mp4.Close()

	tags := &mp4tag.MP4Tags{}
	if !clearOnly {
		tags.Title = fields[metadata.SlotTitle]
		tags.Artist = fields[metadata.SlotArtist]
		tags.Album = fields[metadata.SlotAlbum]
		tags.AlbumArtist = fields[metadata.SlotAlbumArtist]
		tags.Comment = fields[metadata.SlotComment]
	}

	if err := mp4.Write(tags, mp4ManagedAtoms); err != nil {
		return fmt.Errorf("mp4 write error: %w", err)
	}
	return nil
}

// EmbedCover replaces any embedded picture with the given image. The image
// format is resniffed by the tag library from the data itself.
func (w *MP4Writer) EmbedCover(path string, img []byte, mime string) error {
	mp4, err := mp4tag.Open(path)
	if err != nil {
		return fmt.Errorf("mp4 open error: %w", err)
	}
	defer mp4.Close()

	tags := &mp4tag.MP4Tags{
		Pictures: []*mp4tag.MP4Picture{
			{Format: mp4tag.ImageTypeAuto, Data: img},
		},
	}

	if err := mp4.Write(tags, []string{"cover"}); err != nil {
		return fmt.Errorf("mp4 write error: %w", err)
	}
	return nil
}
