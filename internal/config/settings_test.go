package config

import (
	"testing"

	"github.com/ytget/fetchtube/internal/model"
)

func TestNewSettingsDefaults(t *testing.T) {
	settings, err := NewSettings(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create settings: %v", err)
	}

	spec := settings.JobDefaults()
	if spec.Kind != model.KindVideo {
		t.Errorf("Expected default kind video, got '%s'", spec.Kind)
	}
	if spec.MetadataMode != model.MetaExtract {
		t.Errorf("Expected default metadata mode extract, got '%s'", spec.MetadataMode)
	}
	if spec.FilenameTemplate != model.DefaultFilenameTemplate {
		t.Errorf("Expected default filename template, got '%s'", spec.FilenameTemplate)
	}
	if spec.OutputDir == "" {
		t.Error("Expected non-empty default output directory")
	}
}

func TestRememberJobRoundTrip(t *testing.T) {
	dir := t.TempDir()

	settings, err := NewSettings(dir)
	if err != nil {
		t.Fatalf("Failed to create settings: %v", err)
	}

	submitted := model.JobSpec{
		OutputDir:      "/music",
		Kind:           model.KindAudio,
		AudioBitrate:   256,
		AllPlaylist:    true,
		EmbedThumbnail: true,
		MetadataMode:   model.MetaCustom,
		Custom:         model.CustomFields{Title: "{title} (Remix)"},
		WriteSubtitles: true,
		SubtitleLangs:  []string{"en", "de"},
	}
	settings.RememberJob(&submitted)

	if err := settings.Save(); err != nil {
		t.Fatalf("Failed to save settings: %v", err)
	}

	// Reload from disk
	reloaded, err := NewSettings(dir)
	if err != nil {
		t.Fatalf("Failed to reload settings: %v", err)
	}

	spec := reloaded.JobDefaults()
	if spec.Kind != model.KindAudio {
		t.Errorf("Expected audio kind after reload, got '%s'", spec.Kind)
	}
	if spec.AudioBitrate != 256 {
		t.Errorf("Expected bitrate 256, got %d", spec.AudioBitrate)
	}
	if !spec.AllPlaylist || !spec.EmbedThumbnail {
		t.Error("Expected playlist and thumbnail flags to survive reload")
	}
	if spec.Custom.Title != "{title} (Remix)" {
		t.Errorf("Expected custom title template to survive reload, got '%s'", spec.Custom.Title)
	}
	if len(spec.SubtitleLangs) != 2 || spec.SubtitleLangs[0] != "en" {
		t.Errorf("Expected subtitle langs [en de], got %v", spec.SubtitleLangs)
	}
	if spec.URL != "" {
		t.Error("Expected locator to never be persisted")
	}
}

func TestSplitLangs(t *testing.T) {
	if got := splitLangs(""); got != nil {
		t.Errorf("Expected nil for empty input, got %v", got)
	}

	got := splitLangs("en, de ,fr")
	if len(got) != 3 || got[1] != "de" {
		t.Errorf("Expected trimmed [en de fr], got %v", got)
	}
}
