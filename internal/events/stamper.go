package events

import (
	"time"

	"github.com/KirkDiggler/dnd-combat-engine/internal/uuid"
)

// Clock returns the current time
type Clock func() time.Time

// StamperConfig holds stamper dependencies
type StamperConfig struct {
	UUIDGenerator uuid.Generator
	Formatter     *Formatter
	Clock         Clock
}

// Stamper fills in the envelope fields the domain leaves blank: ID, game,
// combat, timestamp and the rendered message.
type Stamper struct {
	uuidGen   uuid.Generator
	formatter *Formatter
	clock     Clock
}

// NewStamper creates a stamper. Missing dependencies fall back to real ones.
func NewStamper(cfg *StamperConfig) *Stamper {
	if cfg == nil {
		cfg = &StamperConfig{}
	}
	s := &Stamper{uuidGen: cfg.UUIDGenerator, formatter: cfg.Formatter, clock: cfg.Clock}
	if s.uuidGen == nil {
		s.uuidGen = uuid.NewGoogleUUIDGenerator()
	}
	if s.formatter == nil {
		s.formatter = NewFormatter(nil)
	}
	if s.clock == nil {
		s.clock = func() time.Time { return time.Now().UTC() }
	}
	return s
}

// Stamp returns stamped copies in the same order. Every event of one batch
// shares a timestamp.
func (s *Stamper) Stamp(gameID, combatID string, evs []Event) []Event {
	now := s.clock()
	out := make([]Event, len(evs))
	for i, e := range evs {
		if e.ID == "" {
			e.ID = s.uuidGen.New()
		}
		e.GameID = gameID
		if e.CombatID == "" {
			e.CombatID = combatID
		}
		if e.Timestamp.IsZero() {
			e.Timestamp = now
		}
		if e.Message == "" {
			e.Message = s.formatter.Format(e)
		}
		out[i] = e
	}
	return out
}
