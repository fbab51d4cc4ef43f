package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blessOn(id, target string) ActiveSpellEffect {
	return ActiveSpellEffect{
		ID:              id,
		TargetID:        target,
		CasterID:        "cleric",
		SpellKey:        "bless",
		SpellName:       "Bless",
		Kind:            KindBuff,
		AttackModifier:  2,
		IsConcentration: true,
	}
}

func TestManager_AddEffect(t *testing.T) {
	t.Run("adds simple effect", func(t *testing.T) {
		var manager Manager

		require.NoError(t, manager.AddEffect(blessOn("e1", "fighter")))

		assert.Len(t, manager.EffectsOn("fighter"), 1)
	})

	t.Run("rejects effect without ID", func(t *testing.T) {
		var manager Manager
		assert.Error(t, manager.AddEffect(ActiveSpellEffect{TargetID: "fighter"}))
	})

	t.Run("same caster and spell replaces", func(t *testing.T) {
		var manager Manager
		require.NoError(t, manager.AddEffect(blessOn("e1", "fighter")))
		require.NoError(t, manager.AddEffect(blessOn("e2", "fighter")))

		active := manager.EffectsOn("fighter")
		require.Len(t, active, 1)
		assert.Equal(t, "e2", active[0].ID)
	})

	t.Run("stacking rule keeps both", func(t *testing.T) {
		var manager Manager
		first := blessOn("e1", "fighter")
		second := blessOn("e2", "fighter")
		second.StackingRule = StackingStack
		require.NoError(t, manager.AddEffect(first))
		require.NoError(t, manager.AddEffect(second))

		assert.Len(t, manager.EffectsOn("fighter"), 2)
	})
}

func TestManager_ModifiersFor(t *testing.T) {
	var manager Manager
	require.NoError(t, manager.AddEffect(blessOn("e1", "fighter")))
	require.NoError(t, manager.AddEffect(ActiveSpellEffect{
		ID: "e2", TargetID: "fighter", CasterID: "wizard", SpellKey: "shield-of-faith", Kind: KindBuff, ACModifier: 2,
	}))
	require.NoError(t, manager.AddEffect(ActiveSpellEffect{
		ID: "e3", TargetID: "fighter", CasterID: "hag", SpellKey: "bane", Kind: KindDebuff, AttackModifier: -1,
	}))

	assert.Equal(t, Modifiers{AC: 2, Attack: 1}, manager.ModifiersFor("fighter"))
	assert.Equal(t, Modifiers{}, manager.ModifiersFor("rogue"))
}

func TestManager_ProcessRoundEnd(t *testing.T) {
	var manager Manager
	short := blessOn("short", "fighter")
	short.RoundsRemaining = 1
	long := blessOn("long", "rogue")
	long.RoundsRemaining = 3
	untimed := blessOn("untimed", "wizard")
	require.NoError(t, manager.AddEffect(short))
	require.NoError(t, manager.AddEffect(long))
	require.NoError(t, manager.AddEffect(untimed))
	require.NoError(t, manager.AddSummon(SummonedCreature{ID: "wolf", HPCurrent: 5, HPMax: 5, RoundsRemaining: 1}))

	expired := manager.ProcessRoundEnd()

	require.Len(t, expired.Effects, 1)
	assert.Equal(t, "short", expired.Effects[0].ID)
	require.Len(t, expired.Summons, 1)
	assert.Len(t, manager.Effects, 2)
	assert.Equal(t, 2, manager.EffectsOn("rogue")[0].RoundsRemaining)
	assert.Empty(t, manager.Summons)
}

func TestManager_ClearConcentration(t *testing.T) {
	var manager Manager
	require.NoError(t, manager.AddEffect(blessOn("e1", "fighter")))
	require.NoError(t, manager.AddEffect(blessOn("e2", "rogue")))
	other := blessOn("e3", "wizard")
	other.SpellKey = "shield-of-faith"
	require.NoError(t, manager.AddEffect(other))
	require.NoError(t, manager.AddSummon(SummonedCreature{ID: "s1", SummonerID: "cleric", SpellKey: "bless", IsConcentration: true, HPCurrent: 1, HPMax: 1}))

	expired := manager.ClearConcentration("cleric", "bless")

	assert.Len(t, expired.Effects, 2)
	assert.Len(t, expired.Summons, 1)
	require.Len(t, manager.Effects, 1)
	assert.Equal(t, "e3", manager.Effects[0].ID)
}

func TestSummonedCreature(t *testing.T) {
	wolf := SummonedCreature{ID: "wolf", HPCurrent: 11, HPMax: 11}

	assert.Equal(t, 3, wolf.TakeDamage(8))
	assert.Equal(t, 11, wolf.Heal(20))
	assert.Equal(t, 0, wolf.TakeDamage(50))
	assert.False(t, wolf.IsAlive())

	var manager Manager
	require.NoError(t, manager.AddSummon(wolf))
	dead := manager.RemoveDeadSummons()
	assert.Len(t, dead, 1)

	require.NoError(t, manager.AddSummon(SummonedCreature{ID: "hawk", HPCurrent: 1, HPMax: 1}))
	dismissed, ok := manager.Dismiss("hawk")
	require.True(t, ok)
	assert.Equal(t, "hawk", dismissed.ID)
	_, ok = manager.Summon("hawk")
	assert.False(t, ok)
}

func TestManager_CloneIsIndependent(t *testing.T) {
	var manager Manager
	require.NoError(t, manager.AddEffect(blessOn("e1", "fighter")))

	clone := manager.Clone()
	clone.Effects[0].AttackModifier = 99

	assert.Equal(t, 2, manager.Effects[0].AttackModifier)
}
