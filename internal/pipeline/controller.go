package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/ytget/fetchtube/internal/engine"
	"github.com/ytget/fetchtube/internal/model"
	"github.com/ytget/fetchtube/internal/platform"
	"github.com/ytget/fetchtube/internal/tagging"
	"github.com/ytget/fetchtube/internal/thumbnail"
)

// Controller drives a full job: pre-flight probe, engine invocation with
// aggregated progress, cooperative cancellation, and the per-item
// post-processing pass. At most one run is active at a time; a second
// submission is rejected, not queued.
type Controller struct {
	engine  engine.Engine
	fetcher *thumbnail.Fetcher
	log     hclog.Logger

	events chan Event

	mu     sync.Mutex
	state  model.RunState
	cancel context.CancelFunc
	runID  string

	cancelled atomic.Bool

	ffmpegPresent func() bool
}

// New creates a controller over the given engine
func New(eng engine.Engine, log hclog.Logger) *Controller {
	return &Controller{
		engine:        eng,
		fetcher:       thumbnail.NewFetcher(),
		log:           log.Named("pipeline"),
		events:        make(chan Event, eventBuffer),
		state:         model.StateIdle,
		ffmpegPresent: platform.HasFFmpeg,
	}
}

// Events returns the subscription channel for status/progress/log events.
// Subscribers must keep draining it; progress and log events are dropped
// when the buffer is full, but the terminal snapshot of a run is always
// delivered.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// State returns the current run state
func (c *Controller) State() model.RunState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start validates the spec and launches the run on a background goroutine.
// Returns ErrRunActive while a run is in flight, or a ValidationError for a
// bad spec; in both cases no run begins.
func (c *Controller) Start(spec model.JobSpec) error {
	c.mu.Lock()
	if c.state.IsActive() {
		c.mu.Unlock()
		return ErrRunActive
	}
	if err := c.validate(&spec); err != nil {
		c.mu.Unlock()
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.cancelled.Store(false)
	c.state = model.StatePreparing
	c.runID = uuid.NewString()
	c.mu.Unlock()

	go c.run(ctx, cancel, &spec)
	return nil
}

// Cancel sets the single-shot cancellation token for the active run. It
// does not preempt in-flight operations; the engine callback and the
// post-processing loop observe the token at their next opportunity.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.IsActive() {
		return
	}
	c.cancelled.Store(true)
	if c.cancel != nil {
		c.cancel()
	}
	c.log.Info("cancellation requested", "run", c.runID)
}

// validate applies the pre-flight contract from the job submission
// boundary. It also normalizes defaults and creates the output directory.
func (c *Controller) validate(spec *model.JobSpec) error {
	if strings.TrimSpace(spec.URL) == "" {
		return &ValidationError{Field: "url", Reason: "locator is empty"}
	}
	if spec.OutputDir == "" {
		return &ValidationError{Field: "output_dir", Reason: "output directory is empty"}
	}
	if err := platform.CreateDirectoryIfNotExists(spec.OutputDir); err != nil {
		return &ValidationError{Field: "output_dir", Reason: fmt.Sprintf("cannot create: %v", err)}
	}
	if spec.Kind == "" {
		spec.Kind = model.KindVideo
	}
	if spec.MetadataMode == "" {
		spec.MetadataMode = model.MetaExtract
	}

	needsFFmpeg := spec.Kind == model.KindAudio || spec.EmbedThumbnail || spec.MaxHeight > 0
	if needsFFmpeg && !c.ffmpegPresent() {
		return &ValidationError{Field: "ffmpeg", Reason: "required transcode tool not found on PATH"}
	}

	tagsRequired := spec.MetadataMode == model.MetaBlank || spec.MetadataMode == model.MetaCustom
	if tagsRequired && tagging.ForPath("out"+spec.Kind.Ext()) == nil && !spec.AllowUntagged {
		return &ValidationError{Field: "metadata_mode", Reason: "no tag writer for target container; enable AllowUntagged to proceed without metadata edits"}
	}

	return nil
}

// run executes one job end to end on the background worker
func (c *Controller) run(ctx context.Context, cancel context.CancelFunc, spec *model.JobSpec) {
	defer cancel()

	log := c.log.With("run", c.runID)
	log.Info("run starting", "url", spec.URL, "kind", spec.Kind, "metadata", spec.MetadataMode)
	c.publishSnapshot(model.ProgressSnapshot{State: model.StatePreparing, TotalItems: 1, ETASec: -1, Message: "preparing"})

	// Probe failures are non-fatal; the expected count defaults to 1
	total := 1
	if probed, err := c.engine.Probe(ctx, spec); err != nil {
		log.Warn("probe failed, assuming a single item", "error", err)
		c.publishLog("probe failed, assuming a single item")
	} else if len(probed) > 1 {
		total = len(probed)
	}
	log.Info("probe complete", "expected", total)

	if c.cancelled.Load() {
		log.Info("run cancelled before transfer")
		c.finish(model.StateCancelled, total, 0, "cancelled")
		return
	}

	c.setState(model.StateDownloading)
	agg := newAggregator(total, &c.cancelled, cancel, c.publishSnapshot)

	entries, err := c.engine.Download(ctx, spec, agg.handle)
	if err != nil {
		if c.cancelled.Load() || errors.Is(err, context.Canceled) {
			log.Info("run cancelled during transfer")
			c.finish(model.StateCancelled, total, agg.completed, "cancelled")
			return
		}
		engErr := &EngineError{Err: err}
		log.Error("run failed", "error", err)
		c.finish(model.StateFailed, total, agg.completed, engErr.Error())
		return
	}

	if c.cancelled.Load() {
		log.Info("run cancelled after transfer, skipping post-processing")
		c.finish(model.StateCancelled, total, agg.completed, "cancelled")
		return
	}

	c.setState(model.StateProcessing)
	c.publishSnapshot(model.ProgressSnapshot{
		State:      model.StateProcessing,
		TotalItems: total,
		Percent:    100,
		ETASec:     -1,
		Message:    "post-processing",
	})

	processed := c.postProcess(ctx, spec, entries)

	if c.cancelled.Load() {
		c.finish(model.StateCancelled, total, agg.completed, "cancelled")
		return
	}

	log.Info("run complete", "entries", len(entries), "enriched", processed)
	c.finish(model.StateDone, total, total, fmt.Sprintf("done: %d file(s) downloaded", len(entries)))
}

func (c *Controller) setState(state model.RunState) {
	c.mu.Lock()
	c.state = state
	c.mu.Unlock()
}

// finish publishes the terminal snapshot for the run
func (c *Controller) finish(state model.RunState, total, completed int, message string) {
	c.setState(state)

	percent := 0.0
	if state == model.StateDone {
		percent = 100
		completed = total
	}
	c.publishSnapshot(model.ProgressSnapshot{
		State:          state,
		TotalItems:     total,
		CompletedItems: completed,
		Percent:        percent,
		ETASec:         -1,
		Message:        message,
	})
}
