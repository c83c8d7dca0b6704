package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/fetchtube/internal/model"
)

// Timeout constants
const (
	DefaultProbeTimeout = 60 * time.Second

	ProgressInterval = 500 * time.Millisecond
)

// Post-processing formats handed to the engine
const (
	AudioCodec         = "mp3"
	VideoContainer     = "mp4"
	ThumbnailConvertTo = "jpg"
)

// YTDLP drives the yt-dlp engine through its library wrapper
type YTDLP struct {
	log hclog.Logger
}

// NewYTDLP creates the engine adapter
func NewYTDLP(log hclog.Logger) *YTDLP {
	return &YTDLP{log: log.Named("engine")}
}

// Probe enumerates the items at the locator without fetching media. YouTube
// playlist URLs take a lightweight library path; everything else goes
// through a flat, download-free engine query.
func (y *YTDLP) Probe(ctx context.Context, spec *model.JobSpec) ([]*model.MediaEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultProbeTimeout)
	defer cancel()

	if !spec.AllPlaylist {
		return []*model.MediaEntry{{WebpageURL: spec.URL}}, nil
	}

	if playlistID := extractPlaylistID(spec.URL); playlistID != "" {
		entries, err := probePlaylistItems(ctx, playlistID)
		if err == nil {
			return entries, nil
		}
		y.log.Debug("playlist probe fast path failed, falling back to engine", "error", err)
	}

	dl := ytdlp.New().
		SkipDownload().
		FlatPlaylist().
		DumpJSON()

	result, err := dl.Run(ctx, spec.URL)
	if err != nil {
		return nil, fmt.Errorf("probe failed: %w", err)
	}

	entries := parseInfoLines(result.Stdout)
	if len(entries) == 0 {
		return nil, fmt.Errorf("probe returned no items for %s", spec.URL)
	}
	return entries, nil
}

// Download invokes the engine synchronously, streaming progress events into
// fn. The caller aborts a transfer mid-flight by cancelling ctx.
func (y *YTDLP) Download(ctx context.Context, spec *model.JobSpec, fn ProgressFunc) ([]*model.MediaEntry, error) {
	dl := ytdlp.New().
		ForceOverwrites().
		RestrictFilenames().
		PrintJSON().
		Format(formatSelector(spec)).
		Output(filepath.Join(spec.OutputDir, spec.Template()))

	if spec.AllPlaylist {
		dl.YesPlaylist()
	} else {
		dl.NoPlaylist()
	}

	applyPostProcessing(dl, spec)
	applySidecars(dl, spec)

	if fn != nil {
		dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
			fn(progressFromUpdate(update))
		})
	}

	y.log.Info("starting engine download", "url", spec.URL, "kind", spec.Kind)
	result, err := dl.Run(ctx, spec.URL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("engine download failed: %w", err)
	}

	entries := parseInfoLines(result.Stdout)
	if len(entries) == 0 {
		entries = entriesFromResult(result)
	}
	y.log.Info("engine download complete", "entries", len(entries))
	return entries, nil
}

// applyPostProcessing adds the container conversion chain for the target
// kind plus thumbnail handling
func applyPostProcessing(dl *ytdlp.Command, spec *model.JobSpec) {
	if spec.Kind == model.KindAudio {
		dl.ExtractAudio()
		dl.AudioFormat(AudioCodec)
		dl.AudioQuality(audioQuality(spec))
		if spec.EmbedThumbnail {
			dl.ConvertThumbnails(ThumbnailConvertTo)
			dl.EmbedThumbnail()
		}
	} else {
		dl.MergeOutputFormat(VideoContainer)
	}

	if spec.MetadataMode == model.MetaExtract {
		dl.EmbedMetadata()
	}
}

// applySidecars adds the auxiliary output flags
func applySidecars(dl *ytdlp.Command, spec *model.JobSpec) {
	if spec.WriteInfoJSON {
		dl.WriteInfoJSON()
	}
	if spec.WriteDescription {
		dl.WriteDescription()
	}
	if spec.WriteSubtitles {
		dl.WriteSubs()
		if len(spec.SubtitleLangs) > 0 {
			dl.SubLangs(strings.Join(spec.SubtitleLangs, ","))
		}
	}
	if spec.ExportCover {
		dl.WriteThumbnail()
	}
}

// formatSelector builds the engine format/quality expression for the job
func formatSelector(spec *model.JobSpec) string {
	if spec.Kind == model.KindAudio {
		return "bestaudio/best"
	}
	if spec.MaxHeight > 0 {
		return fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]", spec.MaxHeight, spec.MaxHeight)
	}
	return "bestvideo+bestaudio/best"
}

// audioQuality maps the target bitrate onto the engine's audio quality
// expression; zero means best available
func audioQuality(spec *model.JobSpec) string {
	if spec.AudioBitrate > 0 {
		return fmt.Sprintf("%dK", spec.AudioBitrate)
	}
	return "0"
}

// progressFromUpdate converts one wrapper callback into a raw event
func progressFromUpdate(update ytdlp.ProgressUpdate) Progress {
	p := Progress{
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
		ETASec:          -1,
		Finished:        update.Status == ytdlp.ProgressStatusFinished,
	}

	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 {
			p.BytesPerSecond = float64(update.DownloadedBytes) / elapsed.Seconds()
		}
	}

	if eta := update.ETA(); eta > 0 {
		p.ETASec = int(eta.Seconds())
	}

	return p
}

// entriesFromResult recovers entry paths from the wrapper's own extraction
// when no info lines were printed
func entriesFromResult(result *ytdlp.Result) []*model.MediaEntry {
	info, err := result.GetExtractedInfo()
	if err != nil {
		return nil
	}

	var entries []*model.MediaEntry
	for _, item := range info {
		if item == nil {
			continue
		}
		entry := &model.MediaEntry{}
		if item.Title != nil {
			entry.Title = *item.Title
		}
		if item.Filename != nil {
			entry.Filename = *item.Filename
		}
		entries = append(entries, entry)
	}
	return entries
}
