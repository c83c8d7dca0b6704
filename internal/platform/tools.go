package platform

import (
	"context"
	"os/exec"

	"github.com/lrstanley/go-ytdlp"
)

// External tool executables
const (
	FFmpegCommand  = "ffmpeg"
	FFprobeCommand = "ffprobe"
)

// HasFFmpeg reports whether the ffmpeg binary is available on PATH. The
// engine drives ffmpeg itself for audio extraction, container remux, and
// thumbnail conversion; without it those options must be rejected up front.
func HasFFmpeg() bool {
	_, err := exec.LookPath(FFmpegCommand)
	return err == nil
}

// EnsureYTDLP makes sure a usable yt-dlp binary is available, downloading a
// managed copy when the system has none
func EnsureYTDLP(ctx context.Context) error {
	_, err := ytdlp.Install(ctx, nil)
	return err
}
