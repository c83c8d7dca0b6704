package tagging

import (
	"fmt"

	"github.com/bogem/id3v2"

	"github.com/ytget/fetchtube/internal/metadata"
)

// Comment frame language
const (
	id3CommentLanguage = "eng"
)

// Frame descriptions for CommonID lookups
const (
	frameTitle       = "Title"
	frameArtist      = "Artist"
	frameAlbum       = "Album/Movie/Show title"
	frameAlbumArtist = "Band/Orchestra/Accompaniment"
	frameComments    = "Comments"
	framePicture     = "Attached picture"
)

// ID3Writer manages ID3v2 frame tags on mp3 files
type ID3Writer struct{}

// Apply clears the managed frames and, unless clearOnly, writes the given
// fields back
func (w *ID3Writer) Apply(path string, fields metadata.Fields, clearOnly bool) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("id3 open error: %w", err)
	}
	defer tag.Close()

	tag.SetVersion(3)
	deleteManagedFrames(tag)

	if !clearOnly {
		if v := fields[metadata.SlotTitle]; v != "" {
			tag.SetTitle(v)
		}
		if v := fields[metadata.SlotArtist]; v != "" {
			tag.SetArtist(v)
		}
		if v := fields[metadata.SlotAlbum]; v != "" {
			tag.SetAlbum(v)
		}
		if v := fields[metadata.SlotAlbumArtist]; v != "" {
			tag.AddTextFrame(tag.CommonID(frameAlbumArtist), tag.DefaultEncoding(), v)
		}
		if v := fields[metadata.SlotComment]; v != "" {
			tag.AddCommentFrame(id3v2.CommentFrame{
				Encoding: id3v2.EncodingUTF8,
				Language: id3CommentLanguage,
				Text:     v,
			})
		}
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("id3 save error: %w", err)
	}
	return nil
}

// EmbedCover replaces any embedded picture with the given image
func (w *ID3Writer) EmbedCover(path string, img []byte, mime string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("id3 open error: %w", err)
	}
	defer tag.Close()

	tag.SetVersion(3)
	tag.DeleteFrames(tag.CommonID(framePicture))
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    mime,
		PictureType: id3v2.PTFrontCover,
		Picture:     img,
	})

	if err := tag.Save(); err != nil {
		return fmt.Errorf("id3 save error: %w", err)
	}
	return nil
}

// deleteManagedFrames removes every frame the writer owns
func deleteManagedFrames(tag *id3v2.Tag) {
	for _, desc := range []string{
		frameTitle,
		frameArtist,
		frameAlbum,
		frameAlbumArtist,
		frameComments,
		framePicture,
	} {
		tag.DeleteFrames(tag.CommonID(desc))
	}
}
