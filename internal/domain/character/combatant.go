package character

import (
	"slices"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
)

// Kind separates player characters, who make death saves, from monsters,
// who die at 0 HP.
type Kind string

const (
	KindCharacter Kind = "character"
	KindMonster   Kind = "monster"
)

const DefaultSpeed = 30

// Combatant is the resolution-time view of a creature in combat. Ability
// scores and proficiency are already resolved by the character record.
type Combatant struct {
	ID               string                   `json:"id"`
	Name             string                   `json:"name"`
	Kind             Kind                     `json:"kind"`
	Level            int                      `json:"level"`
	Abilities        map[shared.Attribute]int `json:"abilities"`
	ProficiencyBonus int                      `json:"proficiency_bonus"`
	ArmorClass       int                      `json:"armor_class"`
	Speed            int                      `json:"speed"`
	HitPoints        HitPoints                `json:"hit_points"`
	DeathSaves       DeathSaves               `json:"death_saves"`

	// WeaponProficiencies holds weapon keys ("longsword") or categories ("martial")
	WeaponProficiencies []string           `json:"weapon_proficiencies,omitempty"`
	ArmorProficiencies  []string           `json:"armor_proficiencies,omitempty"`
	SaveProficiencies   []shared.Attribute `json:"save_proficiencies,omitempty"`

	Resistances     []shared.DamageType `json:"resistances,omitempty"`
	Immunities      []shared.DamageType `json:"immunities,omitempty"`
	Vulnerabilities []shared.DamageType `json:"vulnerabilities,omitempty"`

	Conditions    []shared.Condition `json:"conditions,omitempty"`
	Concentration *Concentration     `json:"concentration,omitempty"`
	Spellcasting  *Spellcasting      `json:"spellcasting,omitempty"`
}

// Score returns the raw ability score, 10 when unset.
func (c *Combatant) Score(attr shared.Attribute) int {
	if score, ok := c.Abilities[attr]; ok {
		return score
	}
	return 10
}

// Modifier returns floor((score - 10) / 2) for the attribute.
func (c *Combatant) Modifier(attr shared.Attribute) int {
	if attr == shared.AttributeNone {
		return 0
	}
	return shared.AbilityModifier(c.Score(attr))
}

// MovementSpeed falls back to 30 feet.
func (c *Combatant) MovementSpeed() int {
	if c.Speed <= 0 {
		return DefaultSpeed
	}
	return c.Speed
}

// IsProficientWith reports whether any of the keys (weapon key, category)
// is in the weapon proficiency list.
func (c *Combatant) IsProficientWith(keys ...string) bool {
	for _, key := range keys {
		if key != "" && slices.Contains(c.WeaponProficiencies, key) {
			return true
		}
	}
	return false
}

// IsProficientInSave reports saving throw proficiency.
func (c *Combatant) IsProficientInSave(attr shared.Attribute) bool {
	return slices.Contains(c.SaveProficiencies, attr)
}

// SaveModifier is the ability modifier plus proficiency when proficient.
func (c *Combatant) SaveModifier(attr shared.Attribute) int {
	mod := c.Modifier(attr)
	if c.IsProficientInSave(attr) {
		mod += c.ProficiencyBonus
	}
	return mod
}

// HasCondition reports whether the condition is active.
func (c *Combatant) HasCondition(condition shared.ConditionType) bool {
	for _, cond := range c.Conditions {
		if cond.Type == condition {
			return true
		}
	}
	return false
}

// AddCondition applies a condition, replacing an existing one of the same type.
func (c *Combatant) AddCondition(cond shared.Condition) {
	for i := range c.Conditions {
		if c.Conditions[i].Type == cond.Type {
			c.Conditions[i] = cond
			return
		}
	}
	c.Conditions = append(c.Conditions, cond)
}

// RemoveCondition removes a condition and reports whether it was present.
func (c *Combatant) RemoveCondition(condition shared.ConditionType) bool {
	before := len(c.Conditions)
	c.Conditions = slices.DeleteFunc(c.Conditions, func(cond shared.Condition) bool {
		return cond.Type == condition
	})
	return len(c.Conditions) != before
}

// IsAlive is false for dead characters and for monsters at 0 HP.
func (c *Combatant) IsAlive() bool {
	if c.Kind == KindMonster {
		return c.HitPoints.Current > 0
	}
	return !c.DeathSaves.Dead
}

// IsConcentrating reports whether the combatant holds a concentration.
func (c *Combatant) IsConcentrating() bool {
	return c.Concentration != nil
}

// Clone returns a deep copy so a rejected action can be dropped without
// touching the stored combatant.
func (c *Combatant) Clone() *Combatant {
	if c == nil {
		return nil
	}
	out := *c
	if c.Abilities != nil {
		out.Abilities = make(map[shared.Attribute]int, len(c.Abilities))
		for k, v := range c.Abilities {
			out.Abilities[k] = v
		}
	}
	out.WeaponProficiencies = slices.Clone(c.WeaponProficiencies)
	out.ArmorProficiencies = slices.Clone(c.ArmorProficiencies)
	out.SaveProficiencies = slices.Clone(c.SaveProficiencies)
	out.Resistances = slices.Clone(c.Resistances)
	out.Immunities = slices.Clone(c.Immunities)
	out.Vulnerabilities = slices.Clone(c.Vulnerabilities)
	out.Conditions = slices.Clone(c.Conditions)
	if c.Concentration != nil {
		conc := *c.Concentration
		out.Concentration = &conc
	}
	if c.Spellcasting != nil {
		out.Spellcasting = c.Spellcasting.Clone()
	}
	return &out
}
