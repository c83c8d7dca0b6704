package model

// ContainerKind selects the target container for produced files
type ContainerKind string

const (
	// KindVideo keeps the video stream and remuxes into an mp4 container
	KindVideo ContainerKind = "video"

	// KindAudio extracts the audio stream into an mp3 container
	KindAudio ContainerKind = "audio"
)

// Ext returns the file extension for the container kind, with leading dot
func (k ContainerKind) Ext() string {
	if k == KindAudio {
		return ".mp3"
	}
	return ".mp4"
}

// MetadataMode controls how tag metadata is applied after download
type MetadataMode string

const (
	// MetaExtract relies on the engine's own metadata embedding
	MetaExtract MetadataMode = "extract"

	// MetaBlank clears all managed tag slots on produced files
	MetaBlank MetadataMode = "blank"

	// MetaCustom renders user templates into the managed tag slots
	MetaCustom MetadataMode = "custom"
)

// CustomFields holds per-field metadata templates for MetaCustom mode.
// Empty fields fall through to the values extracted by the engine.
type CustomFields struct {
	Title       string
	Artist      string
	Album       string
	AlbumArtist string
	Comment     string
}

// Default values
const (
	DefaultFilenameTemplate = "%(title)s.%(ext)s"
)

// JobSpec describes one user request. It is treated as immutable once
// submitted to the pipeline.
type JobSpec struct {
	URL       string
	OutputDir string
	Kind      ContainerKind

	// MaxHeight caps video resolution; 0 means best available
	MaxHeight int
	// AudioBitrate is the target bitrate in kbps for audio extraction
	AudioBitrate int

	// AllPlaylist downloads every item at the locator instead of one
	AllPlaylist bool

	EmbedThumbnail bool
	ExportCover    bool

	MetadataMode MetadataMode
	Custom       CustomFields

	WriteInfoJSON    bool
	WriteDescription bool
	WriteSubtitles   bool
	SubtitleLangs    []string

	FilenameTemplate string

	// AllowUntagged lets a blank/custom run proceed when no tag writer
	// supports the target container; tag passes are then skipped.
	AllowUntagged bool
}

// Template returns the output filename template, falling back to the default
func (s *JobSpec) Template() string {
	if s.FilenameTemplate == "" {
		return DefaultFilenameTemplate
	}
	return s.FilenameTemplate
}
