package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind names what happened
type Kind string

// Actor is who caused an event
type Actor struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Event is an immutable record of something the engine did. Payload holds
// one of the payload structs in payloads.go, selected by Kind.
type Event struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	GameID    string    `json:"game_id"`
	CombatID  string    `json:"combat_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Actor     Actor     `json:"actor"`
	Payload   any       `json:"payload,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// New creates an unstamped event
func New(kind Kind, actor Actor, payload any) Event {
	return Event{Kind: kind, Actor: actor, Payload: payload}
}

// UnmarshalJSON decodes the payload into the struct registered for Kind so
// events read back from Redis carry typed payloads.
func (e *Event) UnmarshalJSON(data []byte) error {
	type alias Event
	raw := struct {
		*alias
		Payload json.RawMessage `json:"payload,omitempty"`
	}{alias: (*alias)(e)}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Payload = nil
	if len(raw.Payload) == 0 || string(raw.Payload) == "null" {
		return nil
	}

	newPayload, ok := payloadTypes[e.Kind]
	if !ok {
		var generic map[string]any
		if err := json.Unmarshal(raw.Payload, &generic); err != nil {
			return fmt.Errorf("failed to decode %s payload: %w", e.Kind, err)
		}
		e.Payload = generic
		return nil
	}

	payload := newPayload()
	if err := json.Unmarshal(raw.Payload, payload); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", e.Kind, err)
	}
	e.Payload = derefPayload(payload)
	return nil
}
