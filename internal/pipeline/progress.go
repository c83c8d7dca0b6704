package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/ytget/fetchtube/internal/engine"
	"github.com/ytget/fetchtube/internal/model"
)

// aggregator converts raw engine progress events into unified snapshots.
// It is driven solely from the engine's callback goroutine; published
// snapshots are the only values that leave it.
type aggregator struct {
	total     int
	completed int
	cancelled *atomic.Bool
	abort     context.CancelFunc
	publish   func(model.ProgressSnapshot)
}

func newAggregator(total int, cancelled *atomic.Bool, abort context.CancelFunc, publish func(model.ProgressSnapshot)) *aggregator {
	if total < 1 {
		total = 1
	}
	return &aggregator{
		total:     total,
		cancelled: cancelled,
		abort:     abort,
		publish:   publish,
	}
}

// handle consumes one engine event. The cancellation token is checked
// before any processing; once set, the transfer is aborted instead of
// completing normally.
func (a *aggregator) handle(p engine.Progress) {
	if a.cancelled.Load() {
		a.abort()
		return
	}

	if p.Finished {
		a.completed++
		a.publish(model.ProgressSnapshot{
			State:          model.StateDownloading,
			TotalItems:     a.total,
			CompletedItems: a.completed,
			Percent:        100,
			ETASec:         -1,
			Message:        a.finishedMessage(),
		})
		return
	}

	percent := 0.0
	if p.TotalBytes > 0 {
		percent = float64(p.DownloadedBytes) / float64(p.TotalBytes) * 100
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	speed := model.FormatSpeed(p.BytesPerSecond)
	a.publish(model.ProgressSnapshot{
		State:           model.StateDownloading,
		TotalItems:      a.total,
		CompletedItems:  a.completed,
		DownloadedBytes: p.DownloadedBytes,
		TotalBytes:      p.TotalBytes,
		Percent:         percent,
		Speed:           speed,
		ETASec:          p.ETASec,
		Message:         a.transferMessage(p, percent, speed),
	})
}

// transferMessage renders the status text for one transferring event: byte
// counts, rate, ETA, plus remaining files for multi-item runs
func (a *aggregator) transferMessage(p engine.Progress, percent float64, speed string) string {
	msg := fmt.Sprintf("%s / %s (%.1f%%)", formatBytes(p.DownloadedBytes), formatBytes(p.TotalBytes), percent)
	if speed != "" {
		msg += " at " + speed
	}
	msg += ", ETA " + model.FormatETA(p.ETASec)
	if a.total > 1 {
		msg += fmt.Sprintf(", %d files left", a.remaining())
	}
	return msg
}

func (a *aggregator) finishedMessage() string {
	msg := fmt.Sprintf("item %d of %d complete", a.completed, a.total)
	if a.total > 1 {
		msg += fmt.Sprintf(", %d files left", a.remaining())
	}
	return msg
}

func (a *aggregator) remaining() int {
	remaining := a.total - a.completed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// formatBytes renders a byte count as MB with one decimal, "?" when unknown
func formatBytes(n int64) string {
	if n <= 0 {
		return "?"
	}
	return fmt.Sprintf("%.1fMB", float64(n)/1024/1024)
}
