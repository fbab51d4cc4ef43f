package events

//go:generate mockgen -destination=mock/mock_broadcaster.go -package=mockevents -source=broadcaster.go

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"
)

// Broadcaster hands a batch of stamped events to connected clients of a game.
// Implementations must keep the batch order.
type Broadcaster interface {
	Broadcast(ctx context.Context, gameID string, evs []Event) error
}

// Sink is a named Broadcaster
type Sink struct {
	Name        string
	Broadcaster Broadcaster
}

// FanOut delivers each batch to every sink concurrently. Each sink receives
// the whole batch in order.
type FanOut struct {
	sinks []Sink
}

// NewFanOut creates a fan-out over the given sinks
func NewFanOut(sinks ...Sink) *FanOut {
	return &FanOut{sinks: sinks}
}

// Add registers another sink
func (f *FanOut) Add(sink Sink) {
	f.sinks = append(f.sinks, sink)
}

// Broadcast waits for every sink and returns the first error. A failing
// sink does not cancel the others.
func (f *FanOut) Broadcast(ctx context.Context, gameID string, evs []Event) error {
	if len(evs) == 0 || len(f.sinks) == 0 {
		return nil
	}

	g := new(errgroup.Group)
	for _, sink := range f.sinks {
		sink := sink
		g.Go(func() error {
			if err := sink.Broadcaster.Broadcast(ctx, gameID, evs); err != nil {
				log.Printf("EventBus: sink %s failed for game %s: %v", sink.Name, gameID, err)
				return fmt.Errorf("sink %s: %w", sink.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// BusBroadcaster feeds batches into an in-process Bus
type BusBroadcaster struct {
	Bus *Bus
}

// Broadcast emits the batch on the bus in order
func (b *BusBroadcaster) Broadcast(ctx context.Context, _ string, evs []Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.Bus.EmitAll(evs)
}

// Recorder keeps every broadcast batch. Used by the simulate command and
// tests.
type Recorder struct {
	Events []Event
}

// Broadcast appends the batch
func (r *Recorder) Broadcast(_ context.Context, _ string, evs []Event) error {
	r.Events = append(r.Events, evs...)
	return nil
}

// Kinds lists the recorded kinds in order
func (r *Recorder) Kinds() []Kind {
	kinds := make([]Kind, len(r.Events))
	for i, e := range r.Events {
		kinds[i] = e.Kind
	}
	return kinds
}
