package concentration_test

import (
	"testing"

	mockdice "github.com/KirkDiggler/dnd-combat-engine/internal/dice/mock"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/rulebook/dnd5e/concentration"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
	"github.com/stretchr/testify/suite"
	"pgregory.net/rapid"
)

type TrackerTestSuite struct {
	suite.Suite
	roller  *mockdice.ManualMockRoller
	tracker *concentration.Tracker
	cleric  *character.Combatant
}

func (s *TrackerTestSuite) SetupTest() {
	s.roller = mockdice.NewManualMockRoller()
	s.tracker = concentration.NewTracker(&concentration.TrackerConfig{Roller: s.roller})
	s.cleric = &character.Combatant{
		ID:        "cleric",
		Name:      "Tomas",
		Abilities: map[shared.Attribute]int{shared.AttributeConstitution: 14},
	}
}

func (s *TrackerTestSuite) TestStartReplacesExisting() {
	_, ended := s.tracker.Start(s.cleric, character.Concentration{SpellKey: "bless", SpellName: "Bless"})
	s.Nil(ended)

	current, ended := s.tracker.Start(s.cleric, character.Concentration{SpellKey: "spirit-guardians", SpellName: "Spirit Guardians"})

	s.Require().NotNil(ended)
	s.Equal("bless", ended.Previous.SpellKey)
	s.Equal(concentration.ReasonReplaced, ended.Reason)
	s.Equal("spirit-guardians", current.SpellKey)

	_, found := s.tracker.Find(s.cleric, "bless")
	s.False(found)
	got, found := s.tracker.Find(s.cleric, "spirit-guardians")
	s.True(found)
	s.Same(s.cleric.Concentration, got)
}

func (s *TrackerTestSuite) TestBreak() {
	s.Nil(s.tracker.Break(s.cleric, concentration.ReasonDropped))

	s.tracker.Start(s.cleric, character.Concentration{SpellKey: "bless"})
	ended := s.tracker.Break(s.cleric, concentration.ReasonDropped)

	s.Require().NotNil(ended)
	s.Nil(s.cleric.Concentration)
}

func (s *TrackerTestSuite) TestSaveDC() {
	s.Equal(10, concentration.SaveDC(5))
	s.Equal(10, concentration.SaveDC(21))
	s.Equal(11, concentration.SaveDC(22))
	s.Equal(17, concentration.SaveDC(35))
}

func (s *TrackerTestSuite) TestCheckOnDamage() {
	tests := []struct {
		name    string
		damage  int
		roll    int
		success bool
	}{
		{name: "meets dc", damage: 12, roll: 8, success: true},
		{name: "below dc", damage: 12, roll: 7, success: false},
		{name: "natural 20 beats high dc", damage: 80, roll: 20, success: true},
		{name: "natural 1 fails low dc", damage: 2, roll: 1, success: false},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.cleric.Concentration = &character.Concentration{SpellKey: "bless", SpellName: "Bless"}
			s.roller.SetRolls([]int{tt.roll})

			result, err := s.tracker.CheckOnDamage(s.cleric, tt.damage)

			s.Require().NoError(err)
			s.Equal(tt.success, result.Success)
			s.Equal(2, result.Modifier)
			s.Equal(tt.roll+2, result.Total)
			if tt.success {
				s.Nil(result.Broken)
				s.NotNil(s.cleric.Concentration)
			} else {
				s.Require().NotNil(result.Broken)
				s.Equal(concentration.ReasonFailedSave, result.Broken.Reason)
				s.Nil(s.cleric.Concentration)
			}
		})
	}
}

func (s *TrackerTestSuite) TestCheckOnDamageSkipsWhenIdle() {
	result, err := s.tracker.CheckOnDamage(s.cleric, 10)

	s.NoError(err)
	s.Nil(result)
	s.Zero(s.roller.Remaining())
}

func (s *TrackerTestSuite) TestTickExpires() {
	s.tracker.Start(s.cleric, character.Concentration{SpellKey: "hex", RoundsRemaining: 2})

	s.Nil(s.tracker.Tick(s.cleric))
	ended := s.tracker.Tick(s.cleric)

	s.Require().NotNil(ended)
	s.Equal(concentration.ReasonExpired, ended.Reason)
	s.Nil(s.cleric.Concentration)
}

func (s *TrackerTestSuite) TestTickIgnoresUntimed() {
	s.tracker.Start(s.cleric, character.Concentration{SpellKey: "bless"})

	s.Nil(s.tracker.Tick(s.cleric))
	s.NotNil(s.cleric.Concentration)
}

func (s *TrackerTestSuite) TestApplyDamage() {
	s.Run("save after damage uses damage taken", func() {
		s.cleric.HitPoints = character.HitPoints{Current: 30, Max: 30}
		s.cleric.Concentration = &character.Concentration{SpellKey: "bless", SpellName: "Bless"}
		s.roller.SetRolls([]int{9})

		outcome, err := s.tracker.ApplyDamage(s.cleric, 24, shared.DamageTypeFire, false)

		s.Require().NoError(err)
		s.Equal(6, outcome.Report.HPAfter)
		s.Require().NotNil(outcome.Save)
		s.Equal(12, outcome.Save.DC)
		s.False(outcome.Save.Success)
		s.Require().NotNil(outcome.Ended)
		s.Equal(concentration.ReasonFailedSave, outcome.Ended.Reason)
	})

	s.Run("dropping to zero ends concentration without a save", func() {
		s.cleric.HitPoints = character.HitPoints{Current: 5, Max: 30}
		s.cleric.Concentration = &character.Concentration{SpellKey: "bless", SpellName: "Bless"}
		s.roller.Reset()

		outcome, err := s.tracker.ApplyDamage(s.cleric, 9, shared.DamageTypeSlashing, false)

		s.Require().NoError(err)
		s.Nil(outcome.Save)
		s.Require().NotNil(outcome.Ended)
		s.Equal(concentration.ReasonDowned, outcome.Ended.Reason)
		s.True(outcome.Report.DroppedToZero)
	})

	s.Run("no concentration means no roll", func() {
		s.cleric.HitPoints = character.HitPoints{Current: 30, Max: 30}
		s.cleric.Concentration = nil
		s.roller.Reset()

		outcome, err := s.tracker.ApplyDamage(s.cleric, 4, shared.DamageTypeCold, false)

		s.Require().NoError(err)
		s.Nil(outcome.Save)
		s.Nil(outcome.Ended)
		s.Equal(26, s.cleric.HitPoints.Current)
	})
}

func TestTrackerSuite(t *testing.T) {
	suite.Run(t, new(TrackerTestSuite))
}

func TestProperty_AtMostOneConcentration(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tracker := concentration.NewTracker(&concentration.TrackerConfig{Roller: mockdice.NewManualMockRoller()})
		caster := &character.Combatant{ID: "c"}
		keys := rapid.SliceOfN(rapid.SampledFrom([]string{"bless", "haste", "fly", "hex"}), 1, 10).Draw(rt, "spells")

		for _, key := range keys {
			tracker.Start(caster, character.Concentration{SpellKey: key})
		}

		last := keys[len(keys)-1]
		if caster.Concentration == nil || caster.Concentration.SpellKey != last {
			rt.Fatalf("concentration = %+v, want %s", caster.Concentration, last)
		}
	})
}
