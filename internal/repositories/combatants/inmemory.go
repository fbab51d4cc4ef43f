package combatants

import (
	"context"
	"sync"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
)

// InMemoryRepository is an in-memory implementation of Repository
type InMemoryRepository struct {
	mu         sync.RWMutex
	combatants map[string]*character.Combatant
}

// NewInMemoryRepository creates a new in-memory combatant repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		combatants: make(map[string]*character.Combatant),
	}
}

// Get retrieves a combatant by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*character.Combatant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.combatants[id]
	if !ok {
		return nil, dnderr.NotFoundf("combatant not found: %s", id).WithMeta(dnderr.MetaFighterID, id)
	}
	return c.Clone(), nil
}

// GetMany retrieves combatants in order
func (r *InMemoryRepository) GetMany(ctx context.Context, ids []string) ([]*character.Combatant, error) {
	out := make([]*character.Combatant, len(ids))
	for i, id := range ids {
		c, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// Save creates or replaces a combatant
func (r *InMemoryRepository) Save(ctx context.Context, combatant *character.Combatant) error {
	if err := validate(combatant); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.combatants[combatant.ID] = combatant.Clone()
	return nil
}

// SaveAll validates every combatant before writing any
func (r *InMemoryRepository) SaveAll(ctx context.Context, combatants []*character.Combatant) error {
	for _, c := range combatants {
		if err := validate(c); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range combatants {
		r.combatants[c.ID] = c.Clone()
	}
	return nil
}

// Delete removes a combatant
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.combatants[id]; !ok {
		return dnderr.NotFoundf("combatant not found: %s", id)
	}
	delete(r.combatants, id)
	return nil
}

func validate(c *character.Combatant) error {
	if c == nil {
		return dnderr.InvalidArgument("combatant cannot be nil")
	}
	if c.ID == "" {
		return dnderr.InvalidArgument("combatant ID cannot be empty")
	}
	if c.HitPoints.Max <= 0 {
		return dnderr.InvalidArgumentf("combatant %s needs positive max hit points", c.ID).
			WithMeta(dnderr.MetaFighterID, c.ID)
	}
	return nil
}
