package pipeline

import (
	"context"
	"fmt"

	"github.com/ytget/fetchtube/internal/metadata"
	"github.com/ytget/fetchtube/internal/model"
	"github.com/ytget/fetchtube/internal/tagging"
)

// postProcess runs the per-item enrichment pass: resolve the produced file,
// apply or clear tags for blank/custom modes, and upgrade the embedded
// cover for audio output. Failures are per-file; siblings and the run's
// terminal state are unaffected. Returns the number of files enriched.
func (c *Controller) postProcess(ctx context.Context, spec *model.JobSpec, entries []*model.MediaEntry) int {
	applyTags := spec.MetadataMode == model.MetaBlank || spec.MetadataMode == model.MetaCustom
	processed := 0

	for i, entry := range entries {
		if c.cancelled.Load() {
			c.log.Info("cancellation observed, skipping remaining items", "remaining", len(entries)-i)
			break
		}

		path := resolveOutput(spec.OutputDir, entry, spec.Kind, spec.Template())
		if path == "" {
			c.log.Warn("no output file found for entry, skipping enrichment", "title", entry.DisplayTitle())
			c.publishLog(fmt.Sprintf("skipped enrichment: no file found for %q", entry.DisplayTitle()))
			continue
		}

		writer := tagging.ForPath(path)
		enriched := false

		if applyTags {
			if writer == nil {
				c.log.Warn("no tag writer for container, skipping tags", "path", path)
				c.publishLog(fmt.Sprintf("skipped tags: unsupported container %q", path))
			} else {
				fields := metadata.Resolve(spec, entry, i+1)
				if err := writer.Apply(path, fields, spec.MetadataMode == model.MetaBlank); err != nil {
					ppErr := &PostProcessError{Path: path, Err: err}
					c.log.Error("tag write failed", "path", path, "error", err)
					c.publishLog(ppErr.Error())
				} else {
					enriched = true
				}
			}
		}

		// Cover upgrade is orthogonal to tag content and runs for audio
		// output regardless of metadata mode. It never touches textual tags.
		if spec.Kind == model.KindAudio && spec.EmbedThumbnail && writer != nil {
			if img, mime := c.fetcher.FetchBest(ctx, entry); img != nil {
				if err := writer.EmbedCover(path, img, mime); err != nil {
					ppErr := &PostProcessError{Path: path, Err: err}
					c.log.Error("cover embed failed", "path", path, "error", err)
					c.publishLog(ppErr.Error())
				} else {
					enriched = true
				}
			} else {
				c.log.Warn("no acceptable cover image found", "title", entry.DisplayTitle())
			}
		}

		if enriched {
			processed++
		}
	}

	return processed
}
