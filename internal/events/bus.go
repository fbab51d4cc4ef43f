package events

import (
	"fmt"
	"log"
	"sort"
	"sync"
)

// AllKinds subscribes a listener to every event kind
const AllKinds Kind = "*"

// EventListener processes events
type EventListener interface {
	HandleEvent(event Event) error
	Priority() int
	ID() string
}

// ListenerFunc adapts a function to EventListener
type ListenerFunc struct {
	ListenerID string
	Order      int
	Fn         func(Event) error
}

func (l *ListenerFunc) HandleEvent(event Event) error { return l.Fn(event) }
func (l *ListenerFunc) Priority() int                 { return l.Order }
func (l *ListenerFunc) ID() string                    { return l.ListenerID }

// Bus manages in-process event distribution
type Bus struct {
	listeners map[Kind][]EventListener
	mu        sync.RWMutex
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[Kind][]EventListener),
	}
}

// Subscribe adds a listener for an event kind, or AllKinds
func (b *Bus) Subscribe(kind Kind, listener EventListener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[kind] = append(b.listeners[kind], listener)

	// Sort by priority
	sort.SliceStable(b.listeners[kind], func(i, j int) bool {
		return b.listeners[kind][i].Priority() < b.listeners[kind][j].Priority()
	})

	log.Printf("EventBus: Subscribed listener %s to event %s with priority %d",
		listener.ID(), kind, listener.Priority())
}

// Unsubscribe removes a listener
func (b *Bus) Unsubscribe(kind Kind, listenerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	listeners := b.listeners[kind]
	for i, l := range listeners {
		if l.ID() != listenerID {
			continue
		}
		b.listeners[kind] = append(listeners[:i:i], listeners[i+1:]...)
		log.Printf("EventBus: Unsubscribed listener %s from event %s", listenerID, kind)
		return
	}
}

// Emit sends an event to its kind's listeners and the AllKinds listeners,
// merged in priority order. The first listener error stops propagation.
func (b *Bus) Emit(event Event) error {
	b.mu.RLock()
	listeners := make([]EventListener, 0, len(b.listeners[event.Kind])+len(b.listeners[AllKinds]))
	listeners = append(listeners, b.listeners[event.Kind]...)
	listeners = append(listeners, b.listeners[AllKinds]...)
	b.mu.RUnlock()

	sort.SliceStable(listeners, func(i, j int) bool {
		return listeners[i].Priority() < listeners[j].Priority()
	})

	if Verbose {
		log.Printf("EventBus: Emitting event %s with %d listeners", event.Kind, len(listeners))
	}

	for _, listener := range listeners {
		if err := listener.HandleEvent(event); err != nil {
			return fmt.Errorf("listener %s failed: %w", listener.ID(), err)
		}
	}

	return nil
}

// EmitAll emits events in order, stopping at the first failure
func (b *Bus) EmitAll(evs []Event) error {
	for _, event := range evs {
		if err := b.Emit(event); err != nil {
			return err
		}
	}
	return nil
}

// Clear removes all listeners
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = make(map[Kind][]EventListener)
	log.Printf("EventBus: Cleared all listeners")
}

// Verbose enables per-event logging
var Verbose = false
