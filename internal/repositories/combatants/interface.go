package combatants

//go:generate mockgen -destination=mock/mock.go -package=mockcombatants -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
)

// Repository persists combatant records between encounters: character
// sheets keep their hit points, slots and conditions after a fight ends.
type Repository interface {
	// Get retrieves a combatant by ID
	Get(ctx context.Context, id string) (*character.Combatant, error)

	// GetMany retrieves combatants in the order requested. Any missing ID
	// fails the whole call.
	GetMany(ctx context.Context, ids []string) ([]*character.Combatant, error)

	// Save creates or replaces a combatant
	Save(ctx context.Context, combatant *character.Combatant) error

	// SaveAll writes several combatants at once
	SaveAll(ctx context.Context, combatants []*character.Combatant) error

	// Delete removes a combatant
	Delete(ctx context.Context, id string) error
}
