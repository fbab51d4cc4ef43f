package effects

import (
	"fmt"
	"slices"
)

// Manager holds the active spell effects and summons of one combat. It is
// plain data so it persists with the combat; the combat's single writer
// serializes access.
type Manager struct {
	Effects []ActiveSpellEffect `json:"effects,omitempty"`
	Summons []SummonedCreature  `json:"summons,omitempty"`
}

// Expired lists what ProcessRoundEnd or a concentration cleanup removed.
type Expired struct {
	Effects []ActiveSpellEffect `json:"effects,omitempty"`
	Summons []SummonedCreature  `json:"summons,omitempty"`
}

// Empty reports whether nothing was removed.
func (e Expired) Empty() bool {
	return len(e.Effects) == 0 && len(e.Summons) == 0
}

// AddEffect adds a new spell effect. With StackingReplace (the default) an
// effect from the same caster and spell on the same target is replaced.
func (m *Manager) AddEffect(effect ActiveSpellEffect) error {
	if effect.ID == "" {
		return fmt.Errorf("effect must have an ID")
	}

	if effect.StackingRule != StackingStack {
		m.Effects = slices.DeleteFunc(m.Effects, func(existing ActiveSpellEffect) bool {
			return existing.TargetID == effect.TargetID &&
				existing.CasterID == effect.CasterID &&
				existing.SpellKey == effect.SpellKey &&
				existing.Kind == effect.Kind
		})
	}

	m.Effects = append(m.Effects, effect)
	return nil
}

// AddSummon adds a summoned creature.
func (m *Manager) AddSummon(summon SummonedCreature) error {
	if summon.ID == "" {
		return fmt.Errorf("summon must have an ID")
	}
	m.Summons = append(m.Summons, summon)
	return nil
}

// RemoveEffect removes a spell effect by ID
func (m *Manager) RemoveEffect(id string) bool {
	before := len(m.Effects)
	m.Effects = slices.DeleteFunc(m.Effects, func(e ActiveSpellEffect) bool { return e.ID == id })
	return len(m.Effects) != before
}

// Summon returns a summoned creature by ID
func (m *Manager) Summon(id string) (*SummonedCreature, bool) {
	for i := range m.Summons {
		if m.Summons[i].ID == id {
			return &m.Summons[i], true
		}
	}
	return nil, false
}

// Dismiss removes a summoned creature and returns it.
func (m *Manager) Dismiss(id string) (*SummonedCreature, bool) {
	for i := range m.Summons {
		if m.Summons[i].ID == id {
			dismissed := m.Summons[i]
			m.Summons = slices.Delete(m.Summons, i, i+1)
			return &dismissed, true
		}
	}
	return nil, false
}

// EffectsOn returns the active effects on a target
func (m *Manager) EffectsOn(targetID string) []ActiveSpellEffect {
	var out []ActiveSpellEffect
	for _, e := range m.Effects {
		if e.TargetID == targetID {
			out = append(out, e)
		}
	}
	return out
}

// ModifiersFor sums the buff and debuff modifiers on a target
func (m *Manager) ModifiersFor(targetID string) Modifiers {
	var mods Modifiers
	for _, e := range m.Effects {
		if e.TargetID != targetID || e.Kind == KindCondition {
			continue
		}
		mods.AC += e.ACModifier
		mods.Attack += e.AttackModifier
		mods.Damage += e.DamageModifier
	}
	return mods
}

// ProcessRoundEnd decrements round-limited effects and summons, removing
// those that run out.
func (m *Manager) ProcessRoundEnd() Expired {
	var expired Expired

	kept := m.Effects[:0]
	for _, e := range m.Effects {
		if e.DecrementRounds() {
			expired.Effects = append(expired.Effects, e)
			continue
		}
		kept = append(kept, e)
	}
	m.Effects = kept

	keptSummons := m.Summons[:0]
	for _, s := range m.Summons {
		if s.DecrementRounds() {
			expired.Summons = append(expired.Summons, s)
			continue
		}
		keptSummons = append(keptSummons, s)
	}
	m.Summons = keptSummons

	return expired
}

// ClearConcentration removes every concentration-bound effect and summon
// the caster created with the spell.
func (m *Manager) ClearConcentration(casterID, spellKey string) Expired {
	var expired Expired

	m.Effects = slices.DeleteFunc(m.Effects, func(e ActiveSpellEffect) bool {
		if e.IsConcentration && e.CasterID == casterID && e.SpellKey == spellKey {
			expired.Effects = append(expired.Effects, e)
			return true
		}
		return false
	})
	m.Summons = slices.DeleteFunc(m.Summons, func(s SummonedCreature) bool {
		if s.IsConcentration && s.SummonerID == casterID && s.SpellKey == spellKey {
			expired.Summons = append(expired.Summons, s)
			return true
		}
		return false
	})

	return expired
}

// RemoveDeadSummons drops summons at 0 HP.
func (m *Manager) RemoveDeadSummons() []SummonedCreature {
	var dead []SummonedCreature
	m.Summons = slices.DeleteFunc(m.Summons, func(s SummonedCreature) bool {
		if !s.IsAlive() {
			dead = append(dead, s)
			return true
		}
		return false
	})
	return dead
}

// Clone deep copies the manager
func (m *Manager) Clone() Manager {
	return Manager{
		Effects: slices.Clone(m.Effects),
		Summons: slices.Clone(m.Summons),
	}
}
