package effects

import "github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"

// Kind is what an active spell effect does to its target
type Kind string

const (
	KindBuff      Kind = "buff"
	KindDebuff    Kind = "debuff"
	KindCondition Kind = "condition"
)

// StackingRule defines how effects from the same source stack
type StackingRule string

const (
	StackingReplace StackingRule = "replace" // New effect replaces old
	StackingStack   StackingRule = "stack"   // Effects add together
)

// ActiveSpellEffect is an ongoing spell effect on a combatant.
// RoundsRemaining of 0 means it is not measured in rounds.
type ActiveSpellEffect struct {
	ID              string               `json:"id"`
	TargetID        string               `json:"target_id"`
	CasterID        string               `json:"caster_id"`
	SpellKey        string               `json:"spell_key"`
	SpellName       string               `json:"spell_name"`
	Kind            Kind                 `json:"kind"`
	Description     string               `json:"description,omitempty"`
	Condition       shared.ConditionType `json:"condition,omitempty"`
	ACModifier      int                  `json:"ac_modifier,omitempty"`
	AttackModifier  int                  `json:"attack_modifier,omitempty"`
	DamageModifier  int                  `json:"damage_modifier,omitempty"`
	RoundsRemaining int                  `json:"rounds_remaining,omitempty"`
	IsConcentration bool                 `json:"is_concentration,omitempty"`
	StackingRule    StackingRule         `json:"stacking_rule,omitempty"`
}

// DecrementRounds ticks a round-limited effect and reports whether it
// has run out.
func (e *ActiveSpellEffect) DecrementRounds() bool {
	if e.RoundsRemaining <= 0 {
		return false
	}
	e.RoundsRemaining--
	return e.RoundsRemaining <= 0
}

// SummonedCreature is a creature conjured by a spell.
type SummonedCreature struct {
	ID              string `json:"id"`
	SummonerID      string `json:"summoner_id"`
	SpellKey        string `json:"spell_key"`
	Name            string `json:"name"`
	HPCurrent       int    `json:"hp_current"`
	HPMax           int    `json:"hp_max"`
	ArmorClass      int    `json:"armor_class"`
	RoundsRemaining int    `json:"rounds_remaining,omitempty"`
	IsConcentration bool   `json:"is_concentration,omitempty"`
}

// TakeDamage reduces HP to no lower than 0 and returns the HP left.
func (s *SummonedCreature) TakeDamage(damage int) int {
	s.HPCurrent = max(0, s.HPCurrent-max(0, damage))
	return s.HPCurrent
}

// Heal restores HP up to max and returns the HP after healing.
func (s *SummonedCreature) Heal(amount int) int {
	s.HPCurrent = min(s.HPMax, s.HPCurrent+max(0, amount))
	return s.HPCurrent
}

// IsAlive reports HP above 0.
func (s *SummonedCreature) IsAlive() bool {
	return s.HPCurrent > 0
}

// DecrementRounds ticks a round-limited summon and reports expiry.
func (s *SummonedCreature) DecrementRounds() bool {
	if s.RoundsRemaining <= 0 {
		return false
	}
	s.RoundsRemaining--
	return s.RoundsRemaining <= 0
}

// Modifiers is the sum of active buff and debuff modifiers on a target.
type Modifiers struct {
	AC     int `json:"ac"`
	Attack int `json:"attack"`
	Damage int `json:"damage"`
}
