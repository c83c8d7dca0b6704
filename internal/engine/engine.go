package engine

import (
	"context"

	"github.com/ytget/fetchtube/internal/model"
)

// Progress is one raw engine progress event. Transferring events carry byte
// counts and rate; a Finished event marks one item's transfer complete.
type Progress struct {
	DownloadedBytes int64
	TotalBytes      int64
	BytesPerSecond  float64
	ETASec          int // -1 if unknown
	Finished        bool
}

// ProgressFunc consumes engine progress events. It is invoked from the
// engine's callback goroutine; implementations must not block.
type ProgressFunc func(Progress)

// Engine is the boundary to the external extraction/download subsystem.
// Probe enumerates items at the locator without fetching media; Download
// performs extraction, transfer, and the configured post-processing chain,
// returning the flattened sequence of produced entries. Both honor context
// cancellation as the abort signal.
type Engine interface {
	Probe(ctx context.Context, spec *model.JobSpec) ([]*model.MediaEntry, error)
	Download(ctx context.Context, spec *model.JobSpec, fn ProgressFunc) ([]*model.MediaEntry, error)
}
