package engine

import (
	"context"
	"time"

	"netlayout/internal/domain"
)

// RenderSink receives a frame after every tick. Frames are owned by the sink.
type RenderSink interface {
	Render(frame *domain.Frame)
}

// RenderFunc adapts a function to RenderSink
type RenderFunc func(frame *domain.Frame)

func (f RenderFunc) Render(frame *domain.Frame) { f(frame) }

// Persister stores snapshots of a session
type Persister interface {
	SaveSnapshot(ctx context.Context, doc *domain.Document) error
}

// Recorder receives engine measurements
type Recorder interface {
	RecordTick(session string, alpha float64, moves int, duration time.Duration)
	RecordConvergence(session string, ticks uint64)
	RecordRemoval(result string)
	RecordEvent(eventType string)
	SetElements(session string, elements int)
}
