package character

import (
	"slices"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
)

// SpellcastingAbility is the class configured casting ability.
type SpellcastingAbility string

const (
	SpellcastingNone         SpellcastingAbility = ""
	SpellcastingIntelligence SpellcastingAbility = "intelligence"
	SpellcastingWisdom       SpellcastingAbility = "wisdom"
	SpellcastingCharisma     SpellcastingAbility = "charisma"
)

// Attribute maps the casting ability to an ability score.
func (a SpellcastingAbility) Attribute() shared.Attribute {
	switch a {
	case SpellcastingIntelligence:
		return shared.AttributeIntelligence
	case SpellcastingWisdom:
		return shared.AttributeWisdom
	case SpellcastingCharisma:
		return shared.AttributeCharisma
	default:
		return shared.AttributeNone
	}
}

// CasterType decides whether the spell list is known or prepared.
type CasterType string

const (
	CasterPrepared CasterType = "prepared"
	CasterKnown    CasterType = "known"
)

// Spellcasting is the caster configuration carried on a combatant.
type Spellcasting struct {
	Ability    SpellcastingAbility `json:"ability"`
	CasterType CasterType          `json:"caster_type"`
	// Spells are the known or prepared spell keys, cantrips included
	Spells []string   `json:"spells"`
	Slots  SpellSlots `json:"slots"`
	Pact   *PactSlots `json:"pact,omitempty"`
}

// Clone deep copies the configuration.
func (s *Spellcasting) Clone() *Spellcasting {
	out := *s
	out.Spells = slices.Clone(s.Spells)
	if s.Pact != nil {
		pact := *s.Pact
		out.Pact = &pact
	}
	return &out
}

// Knows reports whether the spell is on the known or prepared list.
func (s *Spellcasting) Knows(spellKey string) bool {
	return slices.Contains(s.Spells, spellKey)
}

// SpellcastingModifier returns the casting ability modifier, 0 for non-casters.
func (c *Combatant) SpellcastingModifier() int {
	if c.Spellcasting == nil {
		return 0
	}
	return c.Modifier(c.Spellcasting.Ability.Attribute())
}

// SpellSaveDC is 8 + proficiency + spellcasting modifier.
func (c *Combatant) SpellSaveDC() int {
	return 8 + c.ProficiencyBonus + c.SpellcastingModifier()
}

// ConsumeSpellSlot spends a slot for casting a spell of spellLevel at
// slotLevel. Cantrips are free. Regular slots are tried before pact slots.
func (c *Combatant) ConsumeSpellSlot(spellKey string, spellLevel, slotLevel int) error {
	if c.Spellcasting == nil || c.Spellcasting.Ability == SpellcastingNone {
		return dnderr.RulesViolationf("spellcasting", "%s cannot cast spells", c.Name)
	}
	if !c.Spellcasting.Knows(spellKey) {
		verb := "know"
		if c.Spellcasting.CasterType == CasterPrepared {
			verb = "have prepared"
		}
		return dnderr.RulesViolationf("spell:"+spellKey, "%s does not %s %s", c.Name, verb, spellKey)
	}
	if spellLevel == 0 {
		return nil
	}
	if slotLevel < spellLevel {
		return dnderr.RulesViolationf(SlotPrerequisite(spellLevel),
			"cannot cast a level %d spell with a level %d slot", spellLevel, slotLevel)
	}

	if c.Spellcasting.Slots.Remaining(slotLevel) > 0 {
		return c.Spellcasting.Slots.UseSlot(slotLevel)
	}
	if pact := c.Spellcasting.Pact; pact != nil && pact.Level == slotLevel && pact.Use() {
		return nil
	}
	return dnderr.RulesViolationf(SlotPrerequisite(slotLevel), "%s has no level %d spell slots remaining", c.Name, slotLevel)
}
