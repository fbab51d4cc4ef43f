package dnd5e

//go:generate mockgen -destination=mock/mock_client.go -package=mockdnd5e . Client

import (
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/equipment"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/magic"
)

// Client reads weapon and spell reference data from the D&D 5e API and
// returns it as catalog entries.
type Client interface {
	GetWeapon(key string) (*equipment.Weapon, error)
	GetSpell(key string) (*magic.Spell, error)
	ListSpellKeys(classKey string, level int) ([]string, error)
}
