package generation

import (
	"time"

	"ebiten-dungen/events"
)

// Event type constants
const (
	EventStageCompleted events.EventType = "generation_stage_completed"
	EventAttemptFailed  events.EventType = "generation_attempt_failed"
	EventMapGenerated   events.EventType = "generation_map_generated"
)

// StageCompleted is emitted after each pipeline stage of an attempt succeeds
type StageCompleted struct {
	Attempt int
	Stage   Stage
	Elapsed time.Duration
}

// Type returns the event type
func (e StageCompleted) Type() events.EventType {
	return EventStageCompleted
}

// AttemptFailed is emitted when an attempt fails with a recoverable error and will be retried
type AttemptFailed struct {
	Attempt int
	Err     error
}

// Type returns the event type
func (e AttemptFailed) Type() events.EventType {
	return EventAttemptFailed
}

// MapGenerated is emitted once a map has been built
type MapGenerated struct {
	Attempts  int // Attempts used, including the successful one
	Rooms     int
	Cells     int // Filler cells kept after pruning
	Corridors int
}

// Type returns the event type
func (e MapGenerated) Type() events.EventType {
	return EventMapGenerated
}
