package encounters

//go:generate mockgen -destination=mock/mock_repository.go -package=mockencrepo -source=repository.go

import (
	"context"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/game/combat"
)

// Encounter is the persisted unit: a combat and the combatants fighting in
// it. Both are written together so a save commits all of an action or
// none of it.
type Encounter struct {
	Combat     *combat.Combat                  `json:"combat"`
	Combatants map[string]*character.Combatant `json:"combatants"`
}

// ID is the combat ID
func (e *Encounter) ID() string {
	return e.Combat.ID
}

// Clone deep copies the encounter
func (e *Encounter) Clone() *Encounter {
	if e == nil {
		return nil
	}
	out := &Encounter{
		Combat:     e.Combat.Clone(),
		Combatants: make(map[string]*character.Combatant, len(e.Combatants)),
	}
	for id, c := range e.Combatants {
		out.Combatants[id] = c.Clone()
	}
	return out
}

// Repository defines the interface for encounter storage operations
type Repository interface {
	// Create stores a new encounter at version 1
	Create(ctx context.Context, encounter *Encounter) error

	// Get retrieves an encounter by combat ID
	Get(ctx context.Context, id string) (*Encounter, error)

	// Update stores the encounter if its version matches the stored one and
	// bumps the version. A stale version returns an Aborted error.
	Update(ctx context.Context, encounter *Encounter) error

	// Delete removes an encounter
	Delete(ctx context.Context, id string) error

	// GetByGame retrieves all encounters for a game
	GetByGame(ctx context.Context, gameID string) ([]*Encounter, error)

	// GetActiveByGame retrieves the unfinished encounter for a game, nil
	// when there is none
	GetActiveByGame(ctx context.Context, gameID string) (*Encounter, error)
}

func isUnfinished(e *Encounter) bool {
	return e.Combat.State != combat.StateEnded
}
