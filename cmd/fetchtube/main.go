package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/hashicorp/go-hclog"

	"github.com/ytget/fetchtube/internal/config"
	"github.com/ytget/fetchtube/internal/engine"
	"github.com/ytget/fetchtube/internal/model"
	"github.com/ytget/fetchtube/internal/pipeline"
	"github.com/ytget/fetchtube/internal/platform"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppName = "fetchtube"
)

func main() {
	os.Exit(run())
}

func run() int {
	settings, err := config.NewSettings(defaultSettingsDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load settings: %v\n", err)
		return 1
	}
	defaults := settings.JobDefaults()

	var (
		outDir      = flag.String("out", defaults.OutputDir, "output directory")
		kind        = flag.String("kind", string(defaults.Kind), "target container: video or audio")
		maxHeight   = flag.Int("max-height", defaults.MaxHeight, "cap video height (0 = best)")
		bitrate     = flag.Int("audio-bitrate", defaults.AudioBitrate, "target audio bitrate in kbps (0 = best)")
		playlist    = flag.Bool("playlist", defaults.AllPlaylist, "download every item at the locator")
		embedThumb  = flag.Bool("embed-thumbnail", defaults.EmbedThumbnail, "embed cover art into audio output")
		exportCover = flag.Bool("export-cover", defaults.ExportCover, "write the cover image next to the media file")
		metaMode    = flag.String("metadata", string(defaults.MetadataMode), "metadata mode: extract, blank, or custom")
		title       = flag.String("title", defaults.Custom.Title, "custom title template")
		artist      = flag.String("artist", defaults.Custom.Artist, "custom artist template")
		album       = flag.String("album", defaults.Custom.Album, "custom album template")
		albumArtist = flag.String("album-artist", defaults.Custom.AlbumArtist, "custom album-artist template")
		comment     = flag.String("comment", defaults.Custom.Comment, "custom comment template")
		writeInfo   = flag.Bool("write-info-json", defaults.WriteInfoJSON, "write info json sidecar")
		writeDesc   = flag.Bool("write-description", defaults.WriteDescription, "write description sidecar")
		writeSubs   = flag.Bool("write-subs", defaults.WriteSubtitles, "write subtitle files")
		subLangs    = flag.String("sub-langs", strings.Join(defaults.SubtitleLangs, ","), "comma-separated subtitle language preference")
		nameTmpl    = flag.String("output-template", defaults.FilenameTemplate, "output naming template")
		force       = flag.Bool("force", false, "proceed without metadata edits when tagging is unavailable")
		verbose     = flag.Bool("verbose", false, "enable debug logging")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s v%s\n", AppName, version)
		return 0
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] URL\n", AppName)
		flag.PrintDefaults()
		return 2
	}

	level := hclog.Info
	if *verbose {
		level = hclog.Debug
	}
	log := hclog.New(&hclog.LoggerOptions{
		Name:   AppName,
		Level:  level,
		Output: os.Stderr,
	})
	log.Info("starting", "version", version)

	spec := model.JobSpec{
		URL:              flag.Arg(0),
		OutputDir:        *outDir,
		Kind:             model.ContainerKind(*kind),
		MaxHeight:        *maxHeight,
		AudioBitrate:     *bitrate,
		AllPlaylist:      *playlist,
		EmbedThumbnail:   *embedThumb,
		ExportCover:      *exportCover,
		MetadataMode:     model.MetadataMode(*metaMode),
		Custom: model.CustomFields{
			Title:       *title,
			Artist:      *artist,
			Album:       *album,
			AlbumArtist: *albumArtist,
			Comment:     *comment,
		},
		WriteInfoJSON:    *writeInfo,
		WriteDescription: *writeDesc,
		WriteSubtitles:   *writeSubs,
		SubtitleLangs:    splitLangs(*subLangs),
		FilenameTemplate: *nameTmpl,
		AllowUntagged:    *force,
	}

	if err := platform.EnsureYTDLP(context.Background()); err != nil {
		log.Warn("could not provision engine binary, relying on PATH", "error", err)
	}

	ctrl := pipeline.New(engine.NewYTDLP(log), log)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		fmt.Fprintln(os.Stderr, "\ncancelling...")
		ctrl.Cancel()
	}()

	if err := ctrl.Start(spec); err != nil {
		log.Error("job rejected", "error", err)
		return 1
	}

	// Persist the submitted job as the new defaults
	settings.RememberJob(&spec)
	if err := settings.Save(); err != nil {
		log.Warn("failed to save settings", "error", err)
	}

	final := consumeEvents(ctrl)
	fmt.Printf("\n%s: %s\n", final.State, final.Message)
	if final.State != model.StateDone {
		return 1
	}
	return 0
}

// consumeEvents drains the controller's subscription until the run reaches
// a terminal state, rendering progress in place
func consumeEvents(ctrl *pipeline.Controller) model.ProgressSnapshot {
	for {
		ev := <-ctrl.Events()
		switch ev.Kind {
		case pipeline.EventLog:
			fmt.Fprintf(os.Stderr, "\n%s\n", ev.Message)
		case pipeline.EventProgress:
			p := ev.Progress
			if p.State.IsTerminal() {
				return p
			}
			fmt.Printf("\r[%s] %5.1f%% %s\x1b[K", p.State, p.Percent, p.Message)
		}
	}
}

// defaultSettingsDir returns the settings directory for the current OS
func defaultSettingsDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), AppName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", AppName)
	}
}

// splitLangs parses the comma-separated subtitle language list
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
