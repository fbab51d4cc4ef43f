package equipment

import (
	"slices"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
)

// DefaultDamageDice is used when a weapon carries no damage dice.
const DefaultDamageDice = "1d4"

type Category string

const (
	CategorySimple  Category = "simple"
	CategoryMartial Category = "martial"
)

type Range string

const (
	RangeMelee  Range = "melee"
	RangeRanged Range = "ranged"
)

type Property string

const (
	PropertyAmmunition Property = "ammunition"
	PropertyFinesse    Property = "finesse"
	PropertyHeavy      Property = "heavy"
	PropertyLight      Property = "light"
	PropertyLoading    Property = "loading"
	PropertyReach      Property = "reach"
	PropertyThrown     Property = "thrown"
	PropertyTwoHanded  Property = "two-handed"
	PropertyVersatile  Property = "versatile"
)

// Weapon is immutable reference data.
type Weapon struct {
	Key        string            `json:"key" yaml:"key"`
	Name       string            `json:"name" yaml:"name"`
	Category   Category          `json:"category" yaml:"category"`
	Range      Range             `json:"range" yaml:"range"`
	DamageDice string            `json:"damage_dice" yaml:"damage_dice"`
	DamageType shared.DamageType `json:"damage_type" yaml:"damage_type"`
	Properties []Property        `json:"properties,omitempty" yaml:"properties,omitempty"`
	Mastery    MasteryKind       `json:"mastery,omitempty" yaml:"mastery,omitempty"`
}

func (w *Weapon) IsRanged() bool {
	return w.Range == RangeRanged
}

func (w *Weapon) IsMelee() bool {
	return !w.IsRanged()
}

func (w *Weapon) IsFinesse() bool {
	return w.HasProperty(PropertyFinesse)
}

func (w *Weapon) IsLight() bool {
	return w.HasProperty(PropertyLight)
}

// HasProperty checks if the weapon has a specific property
func (w *Weapon) HasProperty(prop Property) bool {
	return slices.Contains(w.Properties, prop)
}

// Damage returns the damage dice, falling back to DefaultDamageDice.
func (w *Weapon) Damage() string {
	if w.DamageDice == "" {
		return DefaultDamageDice
	}
	return w.DamageDice
}

// HasMastery reports whether the weapon declares a mastery property.
func (w *Weapon) HasMastery() bool {
	return w.Mastery != MasteryNone
}
