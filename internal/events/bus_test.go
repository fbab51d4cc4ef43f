package events_test

import (
	"errors"
	"testing"

	"github.com/KirkDiggler/dnd-combat-engine/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_Priority(t *testing.T) {
	bus := events.NewBus()

	// Track execution order
	var executionOrder []string

	lowPriority := &testListener{
		id:       "low",
		priority: 300,
		handler: func(e events.Event) error {
			executionOrder = append(executionOrder, "low")
			return nil
		},
	}

	highPriority := &testListener{
		id:       "high",
		priority: 100,
		handler: func(e events.Event) error {
			executionOrder = append(executionOrder, "high")
			return nil
		},
	}

	mediumPriority := &testListener{
		id:       "medium",
		priority: 200,
		handler: func(e events.Event) error {
			executionOrder = append(executionOrder, "medium")
			return nil
		},
	}

	// Subscribe in random order, one of them to every kind
	bus.Subscribe(events.KindTurnStarted, lowPriority)
	bus.Subscribe(events.AllKinds, highPriority)
	bus.Subscribe(events.KindTurnStarted, mediumPriority)

	err := bus.Emit(events.New(events.KindTurnStarted, events.Actor{}, events.TurnStarted{Round: 1}))
	require.NoError(t, err)

	// Verify execution order (lower priority number = earlier execution)
	assert.Equal(t, []string{"high", "medium", "low"}, executionOrder)
}

func TestEventBus_OnlyMatchingKind(t *testing.T) {
	bus := events.NewBus()
	var calls int
	bus.Subscribe(events.KindRoundEnded, &events.ListenerFunc{
		ListenerID: "round",
		Fn: func(events.Event) error {
			calls++
			return nil
		},
	})

	require.NoError(t, bus.Emit(events.New(events.KindTurnEnded, events.Actor{}, nil)))
	require.NoError(t, bus.Emit(events.New(events.KindRoundEnded, events.Actor{}, events.RoundEnded{Round: 1})))

	assert.Equal(t, 1, calls)
}

func TestEventBus_ErrorStopsPropagation(t *testing.T) {
	bus := events.NewBus()

	var secondExecuted bool

	first := &testListener{
		id:       "first",
		priority: 100,
		handler: func(e events.Event) error {
			return errors.New("boom")
		},
	}

	second := &testListener{
		id:       "second",
		priority: 200,
		handler: func(e events.Event) error {
			secondExecuted = true
			return nil
		},
	}

	bus.Subscribe(events.KindDamageDealt, first)
	bus.Subscribe(events.KindDamageDealt, second)

	err := bus.Emit(events.New(events.KindDamageDealt, events.Actor{}, events.DamageDealt{Amount: 3}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listener first failed")
	assert.False(t, secondExecuted)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := events.NewBus()
	var calls int
	listener := &testListener{id: "gone", handler: func(events.Event) error {
		calls++
		return nil
	}}

	bus.Subscribe(events.KindCombatEnded, listener)
	bus.Unsubscribe(events.KindCombatEnded, "gone")
	require.NoError(t, bus.Emit(events.New(events.KindCombatEnded, events.Actor{}, events.CombatEnded{})))

	assert.Zero(t, calls)
}

// Test helper: simple event listener
type testListener struct {
	id       string
	priority int
	handler  func(events.Event) error
}

func (l *testListener) ID() string                       { return l.id }
func (l *testListener) Priority() int                    { return l.priority }
func (l *testListener) HandleEvent(e events.Event) error { return l.handler(e) }
