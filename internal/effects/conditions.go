package effects

import (
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
)

// ReleaseConditions removes the conditions that expired condition effects
// were holding on their targets. A condition applied by another source is
// left alone. It returns the effects whose condition was lifted.
func ReleaseConditions(expired []ActiveSpellEffect, combatants map[string]*character.Combatant) []ActiveSpellEffect {
	var released []ActiveSpellEffect
	for _, effect := range expired {
		if effect.Kind != KindCondition || effect.Condition == "" {
			continue
		}
		target, ok := combatants[effect.TargetID]
		if !ok {
			continue
		}
		for _, cond := range target.Conditions {
			if cond.Type == effect.Condition && cond.Source == effect.SpellKey {
				target.RemoveCondition(cond.Type)
				released = append(released, effect)
				break
			}
		}
	}
	return released
}
