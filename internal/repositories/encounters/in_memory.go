package encounters

import (
	"context"
	"fmt"
	"slices"
	"sync"

	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
)

type inMemoryRepository struct {
	mu         sync.RWMutex
	encounters map[string]*Encounter
	byGame     map[string][]string // gameID -> combat IDs
}

// NewInMemoryRepository creates a new in-memory encounter repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		encounters: make(map[string]*Encounter),
		byGame:     make(map[string][]string),
	}
}

// Create stores a new encounter
func (r *inMemoryRepository) Create(ctx context.Context, encounter *Encounter) error {
	if err := validate(encounter); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.encounters[encounter.ID()]; exists {
		return dnderr.AlreadyExistsf("encounter with ID %s already exists", encounter.ID())
	}
	if isUnfinished(encounter) {
		for _, id := range r.byGame[encounter.Combat.GameID] {
			if isUnfinished(r.encounters[id]) {
				return unfinishedExists(encounter.Combat.GameID, id)
			}
		}
	}

	encounter.Combat.Version = 1
	r.encounters[encounter.ID()] = encounter.Clone()
	r.byGame[encounter.Combat.GameID] = append(r.byGame[encounter.Combat.GameID], encounter.ID())
	return nil
}

// Get retrieves an encounter by ID
func (r *inMemoryRepository) Get(ctx context.Context, id string) (*Encounter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	encounter, exists := r.encounters[id]
	if !exists {
		return nil, dnderr.NotFoundf("encounter not found: %s", id).WithMeta(dnderr.MetaCombatID, id)
	}
	return encounter.Clone(), nil
}

// Update stores the encounter when the version matches
func (r *inMemoryRepository) Update(ctx context.Context, encounter *Encounter) error {
	if err := validate(encounter); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.encounters[encounter.ID()]
	if !exists {
		return dnderr.NotFoundf("encounter not found: %s", encounter.ID()).WithMeta(dnderr.MetaCombatID, encounter.ID())
	}
	if stored.Combat.Version != encounter.Combat.Version {
		return staleVersion(encounter.ID(), encounter.Combat.Version, stored.Combat.Version)
	}

	encounter.Combat.Version++
	r.encounters[encounter.ID()] = encounter.Clone()
	return nil
}

// Delete removes an encounter
func (r *inMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	encounter, exists := r.encounters[id]
	if !exists {
		return dnderr.NotFoundf("encounter not found: %s", id)
	}

	delete(r.encounters, id)
	gameID := encounter.Combat.GameID
	r.byGame[gameID] = slices.DeleteFunc(r.byGame[gameID], func(eid string) bool { return eid == id })
	return nil
}

// GetByGame retrieves all encounters for a game
func (r *inMemoryRepository) GetByGame(ctx context.Context, gameID string) ([]*Encounter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byGame[gameID]
	out := make([]*Encounter, 0, len(ids))
	for _, id := range ids {
		if encounter, exists := r.encounters[id]; exists {
			out = append(out, encounter.Clone())
		}
	}
	return out, nil
}

// GetActiveByGame retrieves the unfinished encounter for a game
func (r *inMemoryRepository) GetActiveByGame(ctx context.Context, gameID string) (*Encounter, error) {
	all, err := r.GetByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	for _, encounter := range all {
		if isUnfinished(encounter) {
			return encounter, nil
		}
	}
	return nil, nil
}

func validate(encounter *Encounter) error {
	if encounter == nil || encounter.Combat == nil {
		return dnderr.InvalidArgument("encounter cannot be nil")
	}
	if encounter.Combat.ID == "" {
		return dnderr.InvalidArgument("encounter ID cannot be empty")
	}
	return nil
}

func staleVersion(id string, have, stored int64) error {
	return dnderr.Aborted(fmt.Sprintf("encounter %s was modified concurrently (version %d, stored %d)", id, have, stored)).
		WithMeta(dnderr.MetaCombatID, id)
}

func unfinishedExists(gameID, combatID string) error {
	return dnderr.AlreadyExistsf("game %s already has an unfinished combat", gameID).
		WithMeta(dnderr.MetaCombatID, combatID)
}
