package tagging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	dhowden "github.com/dhowden/tag"

	"github.com/ytget/fetchtube/internal/metadata"
)

// newTestMP3 creates a tagless file with junk audio payload
func newTestMP3(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.mp3")
	payload := bytes.Repeat([]byte{0xFF, 0xFB, 0x90, 0x00}, 256)
	if err := os.WriteFile(path, payload, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

func TestApplyWritesFields(t *testing.T) {
	path := newTestMP3(t)
	w := &ID3Writer{}

	fields := metadata.Fields{
		metadata.SlotTitle:       "Song (Remix)",
		metadata.SlotArtist:      "Uploader",
		metadata.SlotAlbum:       "Greatest Hits",
		metadata.SlotAlbumArtist: "Channel",
	}
	if err := w.Apply(path, fields, false); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to reopen file: %v", err)
	}
	defer f.Close()

	m, err := dhowden.ReadFrom(f)
	if err != nil {
		t.Fatalf("Failed to read tags back: %v", err)
	}

	if m.Title() != "Song (Remix)" {
		t.Errorf("Expected title 'Song (Remix)', got '%s'", m.Title())
	}
	if m.Artist() != "Uploader" {
		t.Errorf("Expected artist 'Uploader', got '%s'", m.Artist())
	}
	if m.Album() != "Greatest Hits" {
		t.Errorf("Expected album 'Greatest Hits', got '%s'", m.Album())
	}
	if m.AlbumArtist() != "Channel" {
		t.Errorf("Expected album artist 'Channel', got '%s'", m.AlbumArtist())
	}
}

func TestApplyClearOnlyEmptiesManagedSlots(t *testing.T) {
	path := newTestMP3(t)
	w := &ID3Writer{}

	fields := metadata.Fields{
		metadata.SlotTitle:  "Old Title",
		metadata.SlotArtist: "Old Artist",
	}
	if err := w.Apply(path, fields, false); err != nil {
		t.Fatalf("Initial apply failed: %v", err)
	}

	if err := w.Apply(path, metadata.Fields{}, true); err != nil {
		t.Fatalf("Clear apply failed: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("Failed to reopen tag: %v", err)
	}
	defer tag.Close()

	if got := tag.Title(); got != "" {
		t.Errorf("Expected empty title after clear, got '%s'", got)
	}
	if got := tag.Artist(); got != "" {
		t.Errorf("Expected empty artist after clear, got '%s'", got)
	}
	if frames := tag.GetFrames(tag.CommonID("Attached picture")); len(frames) != 0 {
		t.Errorf("Expected no picture frames after clear, got %d", len(frames))
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	path := newTestMP3(t)
	w := &ID3Writer{}

	first := metadata.Fields{
		metadata.SlotTitle:   "First",
		metadata.SlotComment: "first pass",
	}
	if err := w.Apply(path, first, false); err != nil {
		t.Fatalf("First apply failed: %v", err)
	}

	// Second pass sets fewer fields; leftovers from the first pass must go
	second := metadata.Fields{metadata.SlotTitle: "Second"}
	if err := w.Apply(path, second, false); err != nil {
		t.Fatalf("Second apply failed: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("Failed to reopen tag: %v", err)
	}
	defer tag.Close()

	if got := tag.Title(); got != "Second" {
		t.Errorf("Expected title 'Second', got '%s'", got)
	}
	if frames := tag.GetFrames(tag.CommonID("Comments")); len(frames) != 0 {
		t.Errorf("Expected stale comment frame removed, got %d frames", len(frames))
	}
}

func TestEmbedCoverReplacesPicture(t *testing.T) {
	path := newTestMP3(t)
	w := &ID3Writer{}

	img1 := bytes.Repeat([]byte{0x01}, 1500)
	if err := w.EmbedCover(path, img1, "image/jpeg"); err != nil {
		t.Fatalf("First embed failed: %v", err)
	}

	img2 := bytes.Repeat([]byte{0x02}, 2000)
	if err := w.EmbedCover(path, img2, "image/png"); err != nil {
		t.Fatalf("Second embed failed: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("Failed to reopen tag: %v", err)
	}
	defer tag.Close()

	frames := tag.GetFrames(tag.CommonID("Attached picture"))
	if len(frames) != 1 {
		t.Fatalf("Expected exactly one picture frame, got %d", len(frames))
	}

	pic, ok := frames[0].(id3v2.PictureFrame)
	if !ok {
		t.Fatal("Expected a PictureFrame")
	}
	if len(pic.Picture) != 2000 {
		t.Errorf("Expected second image to replace first, got %d bytes", len(pic.Picture))
	}
}

func TestEmbedCoverKeepsTextFrames(t *testing.T) {
	path := newTestMP3(t)
	w := &ID3Writer{}

	fields := metadata.Fields{metadata.SlotTitle: "Keep Me"}
	if err := w.Apply(path, fields, false); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if err := w.EmbedCover(path, bytes.Repeat([]byte{0x01}, 1500), "image/jpeg"); err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("Failed to reopen tag: %v", err)
	}
	defer tag.Close()

	if got := tag.Title(); got != "Keep Me" {
		t.Errorf("Expected title untouched by cover embed, got '%s'", got)
	}
}

func TestForPath(t *testing.T) {
	if _, ok := ForPath("/tmp/a.mp3").(*ID3Writer); !ok {
		t.Error("Expected ID3Writer for .mp3")
	}
	if _, ok := ForPath("/tmp/a.m4a").(*MP4Writer); !ok {
		t.Error("Expected MP4Writer for .m4a")
	}
	if _, ok := ForPath("/tmp/a.MP4").(*MP4Writer); !ok {
		t.Error("Expected MP4Writer for upper-case .MP4")
	}
	if got := ForPath("/tmp/a.ogg"); got != nil {
		t.Errorf("Expected nil writer for .ogg, got %T", got)
	}
}
