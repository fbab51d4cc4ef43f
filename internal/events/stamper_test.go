package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/KirkDiggler/dnd-combat-engine/internal/events"
	mockevents "github.com/KirkDiggler/dnd-combat-engine/internal/events/mock"
	"github.com/KirkDiggler/dnd-combat-engine/internal/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fixedTime = time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC)

func TestStamper_FillsEnvelope(t *testing.T) {
	stamper := events.NewStamper(&events.StamperConfig{
		UUIDGenerator: uuid.NewSequenceGenerator("evt"),
		Clock:         func() time.Time { return fixedTime },
	})

	stamped := stamper.Stamp("game-1", "combat-1", []events.Event{
		events.New(events.KindRoundEnded, events.Actor{}, events.RoundEnded{Round: 1}),
		events.New(events.KindTurnStarted, events.Actor{ID: "f1", Name: "Aria"}, events.TurnStarted{Round: 2, Name: "Aria"}),
	})

	require.Len(t, stamped, 2)
	assert.Equal(t, "evt-1", stamped[0].ID)
	assert.Equal(t, "evt-2", stamped[1].ID)
	assert.Equal(t, "game-1", stamped[1].GameID)
	assert.Equal(t, "combat-1", stamped[1].CombatID)
	assert.Equal(t, fixedTime, stamped[0].Timestamp)
	assert.Equal(t, "Round 1 has ended.", stamped[0].Message)
	assert.Equal(t, "Round 2: Aria's turn!", stamped[1].Message)
}

func TestEvent_JSONRoundTripKeepsPayloadType(t *testing.T) {
	original := events.Event{
		ID:        "evt-1",
		Kind:      events.KindDamageDealt,
		GameID:    "game-1",
		Timestamp: fixedTime,
		Payload:   events.DamageDealt{TargetName: "Goblin", Amount: 7, Source: "Longsword"},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded events.Event
	require.NoError(t, json.Unmarshal(data, &decoded))

	payload, ok := decoded.Payload.(events.DamageDealt)
	require.True(t, ok, "payload is %T", decoded.Payload)
	assert.Equal(t, 7, payload.Amount)
	assert.Equal(t, "game-1", decoded.GameID)
}

func TestFanOut_DeliversToEverySink(t *testing.T) {
	ctrl := gomock.NewController(t)
	failing := mockevents.NewMockBroadcaster(ctrl)
	recorder := &events.Recorder{}
	batch := []events.Event{events.New(events.KindCombatEnded, events.Actor{}, events.CombatEnded{})}

	failing.EXPECT().Broadcast(gomock.Any(), "game-1", batch).Return(errors.New("offline"))

	fanOut := events.NewFanOut(
		events.Sink{Name: "recorder", Broadcaster: recorder},
		events.Sink{Name: "discord", Broadcaster: failing},
	)

	err := fanOut.Broadcast(context.Background(), "game-1", batch)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink discord")
	assert.Equal(t, []events.Kind{events.KindCombatEnded}, recorder.Kinds())
}

// pacedSink waits for another sink to fail, then delivers event by event
// while the context is live
type pacedSink struct {
	after     <-chan struct{}
	delivered int
}

func (p *pacedSink) Broadcast(ctx context.Context, _ string, evs []events.Event) error {
	<-p.after
	for range evs {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.delivered++
	}
	return nil
}

func TestFanOut_FailingSinkDoesNotCancelOthers(t *testing.T) {
	ctrl := gomock.NewController(t)
	failing := mockevents.NewMockBroadcaster(ctrl)
	failed := make(chan struct{})
	healthy := &pacedSink{after: failed}
	batch := []events.Event{
		events.New(events.KindTurnEnded, events.Actor{}, events.TurnEnded{}),
		events.New(events.KindRoundEnded, events.Actor{}, events.RoundEnded{Round: 1}),
		events.New(events.KindTurnStarted, events.Actor{}, events.TurnStarted{Round: 2}),
	}

	failing.EXPECT().Broadcast(gomock.Any(), "game-1", batch).
		DoAndReturn(func(context.Context, string, []events.Event) error {
			close(failed)
			return errors.New("offline")
		})

	fanOut := events.NewFanOut(
		events.Sink{Name: "discord", Broadcaster: failing},
		events.Sink{Name: "redis", Broadcaster: healthy},
	)

	err := fanOut.Broadcast(context.Background(), "game-1", batch)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink discord")
	assert.Equal(t, len(batch), healthy.delivered)
}

func TestBusBroadcaster_EmitsInOrder(t *testing.T) {
	bus := events.NewBus()
	var seen []events.Kind
	bus.Subscribe(events.AllKinds, &events.ListenerFunc{ListenerID: "log", Fn: func(e events.Event) error {
		seen = append(seen, e.Kind)
		return nil
	}})

	err := (&events.BusBroadcaster{Bus: bus}).Broadcast(context.Background(), "game-1", []events.Event{
		events.New(events.KindRoundEnded, events.Actor{}, events.RoundEnded{Round: 1}),
		events.New(events.KindTurnStarted, events.Actor{}, events.TurnStarted{Round: 2}),
	})

	require.NoError(t, err)
	assert.Equal(t, []events.Kind{events.KindRoundEnded, events.KindTurnStarted}, seen)
}
