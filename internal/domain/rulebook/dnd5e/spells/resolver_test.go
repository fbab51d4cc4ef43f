package spells_test

import (
	"testing"

	mockdice "github.com/KirkDiggler/dnd-combat-engine/internal/dice/mock"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/magic"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/rulebook/dnd5e/spells"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func fireball() *magic.Spell {
	return &magic.Spell{
		Key:   "fireball",
		Name:  "Fireball",
		Level: 3,
		Templates: []magic.EffectTemplate{{
			Kind:            magic.EffectDamage,
			Target:          magic.TargetArea,
			DamageType:      shared.DamageTypeFire,
			BaseDice:        "8d6",
			DicePerLevel:    "1d6",
			SaveType:        shared.AttributeDexterity,
			SaveConsequence: magic.SaveHalf,
			DurationKind:    magic.DurationInstantaneous,
		}},
	}
}

func holdPerson() *magic.Spell {
	return &magic.Spell{
		Key:           "hold-person",
		Name:          "Hold Person",
		Level:         2,
		Concentration: true,
		Templates: []magic.EffectTemplate{{
			Kind:            magic.EffectCondition,
			Target:          magic.TargetSingle,
			SaveType:        shared.AttributeWisdom,
			SaveConsequence: magic.SaveNegate,
			Condition:       shared.ConditionParalyzed,
			DurationKind:    magic.DurationConcentration,
		}},
	}
}

func cureWounds() *magic.Spell {
	return &magic.Spell{
		Key:   "cure-wounds",
		Name:  "Cure Wounds",
		Level: 1,
		Templates: []magic.EffectTemplate{{
			Kind:         magic.EffectHealing,
			Target:       magic.TargetSingle,
			BaseDice:     "1d8",
			DicePerLevel: "1d8",
		}},
	}
}

func shieldOfFaith() *magic.Spell {
	return &magic.Spell{
		Key:           "shield-of-faith",
		Name:          "Shield of Faith",
		Level:         1,
		Concentration: true,
		Templates: []magic.EffectTemplate{{
			Kind:         magic.EffectBuff,
			Target:       magic.TargetSingle,
			Description:  "+2 AC",
			ACModifier:   2,
			DurationKind: magic.DurationConcentration,
		}},
	}
}

type ResolverTestSuite struct {
	suite.Suite
	roller   *mockdice.ManualMockRoller
	resolver *spells.Resolver

	wizard *character.Combatant
	cleric *character.Combatant
	goblin *character.Combatant
}

func (s *ResolverTestSuite) SetupTest() {
	s.roller = mockdice.NewManualMockRoller()
	s.resolver = spells.NewResolver(&spells.Config{Roller: s.roller})

	s.wizard = &character.Combatant{
		ID:               "wizard",
		Name:             "Mira",
		ProficiencyBonus: 2,
		Abilities:        map[shared.Attribute]int{shared.AttributeIntelligence: 16},
		Spellcasting:     &character.Spellcasting{Ability: character.SpellcastingIntelligence},
	}
	s.cleric = &character.Combatant{
		ID:               "cleric",
		Name:             "Tomas",
		ProficiencyBonus: 2,
		Abilities:        map[shared.Attribute]int{shared.AttributeWisdom: 16},
		HitPoints:        character.HitPoints{Current: 5, Max: 10},
		Spellcasting:     &character.Spellcasting{Ability: character.SpellcastingWisdom},
	}
	s.goblin = &character.Combatant{
		ID:        "goblin",
		Name:      "Goblin",
		Kind:      character.KindMonster,
		Abilities: map[shared.Attribute]int{shared.AttributeDexterity: 14},
		HitPoints: character.HitPoints{Current: 30, Max: 30},
	}
}

func (s *ResolverTestSuite) TestSaveForHalf() {
	tests := []struct {
		name   string
		save   int
		total  int
		halved bool
	}{
		{name: "failed save takes full damage", save: 5, total: 24},
		{name: "successful save halves", save: 15, total: 12, halved: true},
		{name: "tie succeeds", save: 11, total: 12, halved: true},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.roller.SetRolls([]int{tt.save, 3, 3, 3, 3, 3, 3, 3, 3})

			result, err := s.resolver.Resolve(&spells.Input{
				Caster: s.wizard, Spell: fireball(), Targets: []*character.Combatant{s.goblin}, SlotLevel: 3,
			})

			s.Require().NoError(err)
			s.Equal(13, result.SaveDC)
			s.Require().Len(result.Saves, 1)
			s.Equal(tt.save+2, result.Saves[0].Total)
			s.Require().Len(result.Damage, 1)
			s.Equal(tt.total, result.Damage[0].Total)
			s.Equal(tt.halved, result.Damage[0].Halved)
			s.Equal(shared.DamageTypeFire, result.Damage[0].DamageType)
			s.Equal("8d6", result.Damage[0].Dice)
			s.False(result.ConcentrationStarted)
		})
	}
}

func (s *ResolverTestSuite) TestHalfDamageFloors() {
	s.roller.SetRolls([]int{20, 3, 3, 3, 3, 3, 3, 3, 2})

	result, err := s.resolver.Resolve(&spells.Input{
		Caster: s.wizard, Spell: fireball(), Targets: []*character.Combatant{s.goblin}, SlotLevel: 3,
	})

	s.Require().NoError(err)
	s.Equal(11, result.Damage[0].Total)
}

func (s *ResolverTestSuite) TestUpcastRollsExtraDice() {
	s.roller.SetRolls([]int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1})

	result, err := s.resolver.Resolve(&spells.Input{
		Caster: s.wizard, Spell: fireball(), Targets: []*character.Combatant{s.goblin}, SlotLevel: 5,
	})

	s.Require().NoError(err)
	s.Equal("10d6", result.Damage[0].Dice)
	s.Len(result.Damage[0].Rolls, 10)
	s.Zero(s.roller.Remaining())
}

func (s *ResolverTestSuite) TestNegatingSaveSkipsCondition() {
	s.roller.SetRolls([]int{13})

	result, err := s.resolver.Resolve(&spells.Input{
		Caster: s.wizard, Spell: holdPerson(), Targets: []*character.Combatant{s.goblin}, SlotLevel: 2,
	})

	s.Require().NoError(err)
	s.Require().Len(result.Saves, 1)
	s.True(result.Saves[0].Success)
	s.Empty(result.Conditions)
	s.True(result.ConcentrationStarted)
}

func (s *ResolverTestSuite) TestFailedSaveAppliesCondition() {
	s.roller.SetRolls([]int{12})

	result, err := s.resolver.Resolve(&spells.Input{
		Caster: s.wizard, Spell: holdPerson(), Targets: []*character.Combatant{s.goblin}, SlotLevel: 2,
	})

	s.Require().NoError(err)
	s.Require().Len(result.Conditions, 1)
	s.True(result.Conditions[0].Applied)
	s.Equal(shared.ConditionParalyzed, result.Conditions[0].Condition)
	s.True(result.Conditions[0].IsConcentration)
	s.Zero(result.Conditions[0].DurationRounds)
}

func (s *ResolverTestSuite) TestHealingAddsCastingModifier() {
	s.roller.SetRolls([]int{6})

	result, err := s.resolver.Resolve(&spells.Input{
		Caster: s.cleric, Spell: cureWounds(), Targets: []*character.Combatant{s.cleric}, SlotLevel: 1,
	})

	s.Require().NoError(err)
	s.Require().Len(result.Healing, 1)
	s.Equal(9, result.Healing[0].Total)
	s.Equal(3, result.Healing[0].Modifier)
	s.Zero(result.Healing[0].Overheal)
}

func (s *ResolverTestSuite) TestBuffCarriesModifiers() {
	result, err := s.resolver.Resolve(&spells.Input{
		Caster: s.cleric, Spell: shieldOfFaith(), Targets: []*character.Combatant{s.wizard}, SlotLevel: 1,
	})

	s.Require().NoError(err)
	s.Require().Len(result.Buffs, 1)
	s.Equal(2, result.Buffs[0].ACModifier)
	s.Equal("+2 AC", result.Buffs[0].Description)
	s.True(result.Buffs[0].IsConcentration)
	s.True(result.ConcentrationStarted)
}

func (s *ResolverTestSuite) TestSelfTemplatesTargetCaster() {
	spell := shieldOfFaith()
	spell.Templates[0].Target = magic.TargetSelf

	result, err := s.resolver.Resolve(&spells.Input{
		Caster: s.cleric, Spell: spell, Targets: []*character.Combatant{s.wizard, s.goblin}, SlotLevel: 1,
	})

	s.Require().NoError(err)
	s.Require().Len(result.Buffs, 1)
	s.Equal("cleric", result.Buffs[0].TargetID)
}

func (s *ResolverTestSuite) TestSummonResolvesOncePerCast() {
	spell := &magic.Spell{
		Key: "summon-beast", Name: "Summon Beast", Level: 2, Concentration: true,
		Templates: []magic.EffectTemplate{{
			Kind:         magic.EffectSummon,
			Summon:       &magic.SummonStats{Name: "Bestial Spirit", HitPoints: 20, ArmorClass: 13},
			DurationKind: magic.DurationConcentration,
		}},
	}

	result, err := s.resolver.Resolve(&spells.Input{
		Caster: s.wizard, Spell: spell, Targets: []*character.Combatant{s.goblin, s.cleric}, SlotLevel: 2,
	})

	s.Require().NoError(err)
	s.Require().Len(result.Summons, 1)
	s.Equal("Bestial Spirit", result.Summons[0].Name)
}

func (s *ResolverTestSuite) TestNonCasterHasZeroModifier() {
	s.Equal(10, (&character.Combatant{ProficiencyBonus: 2}).SpellSaveDC())
}

func (s *ResolverTestSuite) TestRollerErrorsPropagate() {
	_, err := s.resolver.Resolve(&spells.Input{
		Caster: s.wizard, Spell: fireball(), Targets: []*character.Combatant{s.goblin}, SlotLevel: 3,
	})

	s.Error(err)
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}

func TestCalculateDice(t *testing.T) {
	tests := []struct {
		name      string
		base      string
		perLevel  string
		spell     int
		slot      int
		want      string
		wantError bool
	}{
		{name: "upcast two levels", base: "8d6", perLevel: "1d6", spell: 3, slot: 5, want: "10d6"},
		{name: "cast at base level", base: "8d6", perLevel: "1d6", spell: 3, slot: 3, want: "8d6"},
		{name: "no per level dice", base: "3d4+3", spell: 1, slot: 4, want: "3d4+3"},
		{name: "two dice per level", base: "2d8", perLevel: "2d8", spell: 2, slot: 4, want: "6d8"},
		{name: "no base dice", perLevel: "1d6", spell: 1, slot: 3, want: ""},
		{name: "bad base dice", base: "fire", spell: 1, slot: 1, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			template := &magic.EffectTemplate{BaseDice: tt.base, DicePerLevel: tt.perLevel}

			got, err := spells.CalculateDice(template, tt.spell, tt.slot)

			if tt.wantError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
