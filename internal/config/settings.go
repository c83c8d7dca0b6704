package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ytget/fetchtube/internal/model"
	"github.com/ytget/fetchtube/internal/platform"
)

// Settings keys; one flat key per job field
const (
	KeyDownloadDir      = "download_directory"
	KeyContainerKind    = "container_kind"
	KeyMaxHeight        = "max_height"
	KeyAudioBitrate     = "audio_bitrate"
	KeyAllPlaylist      = "all_playlist"
	KeyEmbedThumbnail   = "embed_thumbnail"
	KeyExportCover      = "export_cover"
	KeyMetadataMode     = "metadata_mode"
	KeyCustomTitle      = "custom_title"
	KeyCustomArtist     = "custom_artist"
	KeyCustomAlbum      = "custom_album"
	KeyCustomAlbumArt   = "custom_album_artist"
	KeyCustomComment    = "custom_comment"
	KeyWriteInfoJSON    = "write_info_json"
	KeyWriteDescription = "write_description"
	KeyWriteSubtitles   = "write_subtitles"
	KeySubtitleLangs    = "subtitle_langs"
	KeyFilenameTemplate = "filename_template"
)

// Config file constants
const (
	ConfigName = "settings"
	ConfigType = "yaml"
	ConfigFile = ConfigName + "." + ConfigType
)

// Settings manages the persisted flat key-value record mirroring JobSpec
// fields. It is loaded at startup and saved on submission and shutdown.
type Settings struct {
	v   *viper.Viper
	dir string
}

// NewSettings loads settings from dir, applying defaults for missing keys.
// A missing config file is not an error; it appears on first Save.
func NewSettings(dir string) (*Settings, error) {
	v := viper.New()
	v.SetConfigName(ConfigName)
	v.SetConfigType(ConfigType)
	v.AddConfigPath(dir)

	defaultDir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		defaultDir = os.TempDir()
	}
	v.SetDefault(KeyDownloadDir, defaultDir)
	v.SetDefault(KeyContainerKind, string(model.KindVideo))
	v.SetDefault(KeyMetadataMode, string(model.MetaExtract))
	v.SetDefault(KeyFilenameTemplate, model.DefaultFilenameTemplate)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	return &Settings{v: v, dir: dir}, nil
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	return s.v.GetString(KeyDownloadDir)
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.v.Set(KeyDownloadDir, dir)
}

// JobDefaults builds a JobSpec pre-filled from the persisted record. The
// locator is never persisted; it belongs to a single submission.
func (s *Settings) JobDefaults() model.JobSpec {
	return model.JobSpec{
		OutputDir:        s.v.GetString(KeyDownloadDir),
		Kind:             model.ContainerKind(s.v.GetString(KeyContainerKind)),
		MaxHeight:        s.v.GetInt(KeyMaxHeight),
		AudioBitrate:     s.v.GetInt(KeyAudioBitrate),
		AllPlaylist:      s.v.GetBool(KeyAllPlaylist),
		EmbedThumbnail:   s.v.GetBool(KeyEmbedThumbnail),
		ExportCover:      s.v.GetBool(KeyExportCover),
		MetadataMode:     model.MetadataMode(s.v.GetString(KeyMetadataMode)),
		Custom: model.CustomFields{
			Title:       s.v.GetString(KeyCustomTitle),
			Artist:      s.v.GetString(KeyCustomArtist),
			Album:       s.v.GetString(KeyCustomAlbum),
			AlbumArtist: s.v.GetString(KeyCustomAlbumArt),
			Comment:     s.v.GetString(KeyCustomComment),
		},
		WriteInfoJSON:    s.v.GetBool(KeyWriteInfoJSON),
		WriteDescription: s.v.GetBool(KeyWriteDescription),
		WriteSubtitles:   s.v.GetBool(KeyWriteSubtitles),
		SubtitleLangs:    splitLangs(s.v.GetString(KeySubtitleLangs)),
		FilenameTemplate: s.v.GetString(KeyFilenameTemplate),
	}
}

// RememberJob records the submitted job's fields as the new defaults
func (s *Settings) RememberJob(spec *model.JobSpec) {
	s.v.Set(KeyDownloadDir, spec.OutputDir)
	s.v.Set(KeyContainerKind, string(spec.Kind))
	s.v.Set(KeyMaxHeight, spec.MaxHeight)
	s.v.Set(KeyAudioBitrate, spec.AudioBitrate)
	s.v.Set(KeyAllPlaylist, spec.AllPlaylist)
	s.v.Set(KeyEmbedThumbnail, spec.EmbedThumbnail)
	s.v.Set(KeyExportCover, spec.ExportCover)
	s.v.Set(KeyMetadataMode, string(spec.MetadataMode))
	s.v.Set(KeyCustomTitle, spec.Custom.Title)
	s.v.Set(KeyCustomArtist, spec.Custom.Artist)
	s.v.Set(KeyCustomAlbum, spec.Custom.Album)
	s.v.Set(KeyCustomAlbumArt, spec.Custom.AlbumArtist)
	s.v.Set(KeyCustomComment, spec.Custom.Comment)
	s.v.Set(KeyWriteInfoJSON, spec.WriteInfoJSON)
	s.v.Set(KeyWriteDescription, spec.WriteDescription)
	s.v.Set(KeyWriteSubtitles, spec.WriteSubtitles)
	s.v.Set(KeySubtitleLangs, strings.Join(spec.SubtitleLangs, ","))
	s.v.Set(KeyFilenameTemplate, spec.FilenameTemplate)
}

// Save writes the record to disk, creating the directory if needed
func (s *Settings) Save() error {
	if err := platform.CreateDirectoryIfNotExists(s.dir); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	return s.v.WriteConfigAs(filepath.Join(s.dir, ConfigFile))
}

// splitLangs parses the comma-separated subtitle language preference list
func splitLangs(raw string) []string {
	if raw == "" {
		return nil
	}
	var langs []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			langs = append(langs, part)
		}
	}
	return langs
}
