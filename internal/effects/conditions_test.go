package effects

import (
	"testing"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestReleaseConditions(t *testing.T) {
	goblin := &character.Combatant{ID: "goblin", Conditions: []shared.Condition{
		{Type: shared.ConditionParalyzed, Source: "hold-person"},
		{Type: shared.ConditionProne, Source: "trip"},
	}}
	orc := &character.Combatant{ID: "orc", Conditions: []shared.Condition{
		{Type: shared.ConditionParalyzed, Source: "ghoul-claw"},
	}}
	combatants := map[string]*character.Combatant{"goblin": goblin, "orc": orc}

	expired := []ActiveSpellEffect{
		{ID: "e1", TargetID: "goblin", SpellKey: "hold-person", Kind: KindCondition, Condition: shared.ConditionParalyzed},
		{ID: "e2", TargetID: "orc", SpellKey: "hold-person", Kind: KindCondition, Condition: shared.ConditionParalyzed},
		{ID: "e3", TargetID: "goblin", SpellKey: "bless", Kind: KindBuff},
		{ID: "e4", TargetID: "missing", SpellKey: "hold-person", Kind: KindCondition, Condition: shared.ConditionParalyzed},
	}

	released := ReleaseConditions(expired, combatants)

	assert.Len(t, released, 1)
	assert.Equal(t, "e1", released[0].ID)
	assert.False(t, goblin.HasCondition(shared.ConditionParalyzed))
	assert.True(t, goblin.HasCondition(shared.ConditionProne))
	assert.True(t, orc.HasCondition(shared.ConditionParalyzed), "paralysis from another source stays")
}
