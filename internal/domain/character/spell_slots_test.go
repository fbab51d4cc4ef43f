package character_test

import (
	"testing"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestSlotLevel(t *testing.T) {
	slot := character.SlotLevel{Total: 2}

	assert.True(t, slot.Use())
	assert.True(t, slot.Use())
	assert.False(t, slot.Use())
	assert.Equal(t, 0, slot.Remaining())

	slot.Restore(5)
	assert.Equal(t, 0, slot.Used)
}

func TestSpellSlots_UseSlotExhausted(t *testing.T) {
	slots := character.NewSpellSlots(map[int]int{1: 1})

	require.NoError(t, slots.UseSlot(1))
	err := slots.UseSlot(1)

	require.Error(t, err)
	assert.True(t, dnderr.IsRulesViolation(err))
	assert.Equal(t, "spell_slot_level_1", dnderr.GetMeta(err)[dnderr.MetaPrerequisite])
}

func TestSpellSlots_RestoreAllRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		level := rapid.IntRange(1, 9).Draw(rt, "level")
		total := rapid.IntRange(0, 4).Draw(rt, "total")
		uses := rapid.IntRange(0, 6).Draw(rt, "uses")
		slots := character.NewSpellSlots(map[int]int{level: total})

		slots.RestoreAll()
		for i := 0; i < uses; i++ {
			_ = slots.UseSlot(level)
		}
		slots.RestoreAll()

		if used := slots.Levels[level-1].Used; used != 0 {
			rt.Fatalf("used = %d after RestoreAll", used)
		}
	})
}

func TestPactSlots(t *testing.T) {
	pact := character.PactSlots{Level: 3, Total: 2}

	assert.True(t, pact.Use())
	assert.True(t, pact.Use())
	assert.False(t, pact.Use())

	pact.RestoreAll()
	assert.Equal(t, 2, pact.Remaining())
}

func newWizard() *character.Combatant {
	return &character.Combatant{
		ID:               "wiz",
		Name:             "Merric",
		Kind:             character.KindCharacter,
		ProficiencyBonus: 3,
		Abilities:        map[shared.Attribute]int{shared.AttributeIntelligence: 18},
		Spellcasting: &character.Spellcasting{
			Ability:    character.SpellcastingIntelligence,
			CasterType: character.CasterPrepared,
			Spells:     []string{"fire-bolt", "fireball"},
			Slots:      character.NewSpellSlots(map[int]int{3: 1, 5: 1}),
		},
	}
}

func TestConsumeSpellSlot(t *testing.T) {
	t.Run("cantrip is free", func(t *testing.T) {
		c := newWizard()
		require.NoError(t, c.ConsumeSpellSlot("fire-bolt", 0, 0))
	})

	t.Run("upcast uses the higher slot", func(t *testing.T) {
		c := newWizard()
		require.NoError(t, c.ConsumeSpellSlot("fireball", 3, 5))
		assert.Equal(t, 0, c.Spellcasting.Slots.Remaining(5))
		assert.Equal(t, 1, c.Spellcasting.Slots.Remaining(3))
	})

	t.Run("slot below spell level", func(t *testing.T) {
		c := newWizard()
		err := c.ConsumeSpellSlot("fireball", 3, 2)
		assert.True(t, dnderr.IsRulesViolation(err))
	})

	t.Run("unprepared spell names the spell", func(t *testing.T) {
		c := newWizard()
		err := c.ConsumeSpellSlot("wish", 9, 9)
		require.Error(t, err)
		assert.Equal(t, "spell:wish", dnderr.GetMeta(err)[dnderr.MetaPrerequisite])
		assert.Contains(t, err.Error(), "have prepared")
	})

	t.Run("falls back to pact slots", func(t *testing.T) {
		c := newWizard()
		c.Spellcasting.Slots = character.SpellSlots{}
		c.Spellcasting.Pact = &character.PactSlots{Level: 3, Total: 1}

		require.NoError(t, c.ConsumeSpellSlot("fireball", 3, 3))
		assert.Equal(t, 0, c.Spellcasting.Pact.Remaining())
	})
}

func TestSpellSaveDC(t *testing.T) {
	c := newWizard()
	assert.Equal(t, 15, c.SpellSaveDC())

	c.Spellcasting = nil
	assert.Equal(t, 11, c.SpellSaveDC())
}

func TestClone_IsDeep(t *testing.T) {
	c := newWizard()
	c.Concentration = &character.Concentration{SpellKey: "haste"}

	clone := c.Clone()
	clone.Abilities[shared.AttributeIntelligence] = 3
	clone.Concentration.SpellKey = "fly"
	require.NoError(t, clone.Spellcasting.Slots.UseSlot(3))

	assert.Equal(t, 18, c.Abilities[shared.AttributeIntelligence])
	assert.Equal(t, "haste", c.Concentration.SpellKey)
	assert.Equal(t, 1, c.Spellcasting.Slots.Remaining(3))
}
