package catalog

import (
	"context"
	"log"
	"sync"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/equipment"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/magic"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"golang.org/x/sync/errgroup"
)

// importConcurrency bounds requests in flight against the API
const importConcurrency = 4

// Source provides reference data from outside the catalog, usually the
// D&D 5e API client
type Source interface {
	GetWeapon(key string) (*equipment.Weapon, error)
	GetSpell(key string) (*magic.Spell, error)
}

// ImportResult counts what an import added
type ImportResult struct {
	Weapons []string
	Spells  []string
}

// Import fetches the keyed weapons and spells and adds them. Weapons keep
// the mastery already recorded for the same key, since the API carries
// none. Entries already present are refreshed. The first failure stops the
// import; entries fetched before it are kept.
func (c *Catalog) Import(ctx context.Context, src Source, weaponKeys, spellKeys []string) (*ImportResult, error) {
	var (
		mu     sync.Mutex
		result ImportResult
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(importConcurrency)

	for _, key := range weaponKeys {
		key := key
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			weapon, err := src.GetWeapon(key)
			if err != nil {
				return dnderr.Wrapf(err, "failed to import weapon %s", key)
			}
			if existing, err := c.Weapon(key); err == nil && !weapon.HasMastery() {
				weapon.Mastery = existing.Mastery
			}
			if err := c.AddWeapon(*weapon); err != nil {
				return err
			}

			mu.Lock()
			result.Weapons = append(result.Weapons, key)
			mu.Unlock()
			return nil
		})
	}

	for _, key := range spellKeys {
		key := key
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			spell, err := src.GetSpell(key)
			if err != nil {
				return dnderr.Wrapf(err, "failed to import spell %s", key)
			}
			if err := c.AddSpell(*spell); err != nil {
				return err
			}

			mu.Lock()
			result.Spells = append(result.Spells, key)
			mu.Unlock()
			return nil
		})
	}

	err := g.Wait()
	log.Printf("Catalog: imported %d weapons and %d spells", len(result.Weapons), len(result.Spells))
	return &result, err
}
