package pipeline

import (
	"github.com/ytget/fetchtube/internal/model"
)

// EventKind discriminates subscriber events
type EventKind int

const (
	// EventProgress carries a progress snapshot
	EventProgress EventKind = iota

	// EventLog carries a human-readable log line
	EventLog
)

// Event is the one-way message from the background worker to the foreground.
// Snapshots are immutable values; the channel is the marshaling boundary, so
// subscribers never observe worker-owned state directly.
type Event struct {
	Kind     EventKind
	Progress model.ProgressSnapshot
	Message  string
}

// Event channel capacity. Transfer-progress and log events are lossy when
// the subscriber lags; terminal snapshots are always delivered.
const eventBuffer = 128

// publishSnapshot pushes one snapshot to the subscriber. Terminal snapshots
// block until delivered so a lagging subscriber can never miss the end of a
// run; everything else is dropped when the buffer is full.
func (c *Controller) publishSnapshot(snapshot model.ProgressSnapshot) {
	ev := Event{Kind: EventProgress, Progress: snapshot}
	if snapshot.State.IsTerminal() {
		c.events <- ev
		return
	}
	select {
	case c.events <- ev:
	default:
	}
}

func (c *Controller) publishLog(message string) {
	select {
	case c.events <- Event{Kind: EventLog, Message: message}:
	default:
	}
}
