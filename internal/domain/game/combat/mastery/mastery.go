// Package mastery computes weapon mastery side effects. It holds no state.
package mastery

import (
	"fmt"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/equipment"
)

// Adding a MasteryKind breaks this line until Resolve handles the new kind.
var _ = [1]struct{}{}[equipment.MasteryKindCount-9]

const (
	PushDistance    = 10
	SpeedReduction  = 10
	SaveDCBase      = 8
	cleaveReachFeet = 5
)

// Effect describes what a mastery property did. Fields outside the
// triggered kind stay at their zero value.
type Effect struct {
	Kind        equipment.MasteryKind `json:"kind"`
	Triggered   bool                  `json:"triggered"`
	Description string                `json:"description,omitempty"`

	GrazeDamage  int `json:"graze_damage,omitempty"`
	CleaveDamage int `json:"cleave_damage,omitempty"`

	PushDistance   int `json:"push_distance,omitempty"`
	SpeedReduction int `json:"speed_reduction,omitempty"`

	TargetHasDisadvantage bool `json:"target_has_disadvantage,omitempty"`
	TargetMustSave        bool `json:"target_must_save,omitempty"`
	ToppleSaveDC          int  `json:"topple_save_dc,omitempty"`

	AttackerHasAdvantage bool `json:"attacker_has_advantage,omitempty"`
	AttackerCanNick      bool `json:"attacker_can_nick,omitempty"`
}

// Input is everything a mastery needs to know about the attack.
type Input struct {
	Kind             equipment.MasteryKind
	Hit              bool
	AbilityModifier  int
	ProficiencyBonus int
	DamageDealt      int
	// TargetHPAfter is the target's HP minus damage dealt, may be negative
	TargetHPAfter int
}

// SaveDC is 8 + proficiency + the ability modifier used for the attack.
func SaveDC(proficiencyBonus, abilityModifier int) int {
	return SaveDCBase + proficiencyBonus + abilityModifier
}

// Resolve computes the effect of a mastery property. Graze only fires on a
// miss, every other kind only on a hit.
func Resolve(in Input) Effect {
	if in.Kind == equipment.MasteryNone {
		return Effect{}
	}
	if in.Hit {
		return onHit(in)
	}
	return onMiss(in)
}

func onHit(in Input) Effect {
	effect := Effect{Kind: in.Kind, Triggered: true}

	switch in.Kind {
	case equipment.MasteryCleave:
		if in.TargetHPAfter > 0 {
			return Effect{Kind: in.Kind}
		}
		effect.CleaveDamage = -in.TargetHPAfter
		effect.Description = fmt.Sprintf("Cleave: %d excess damage can hit another enemy within %d feet",
			effect.CleaveDamage, cleaveReachFeet)
	case equipment.MasteryPush:
		effect.PushDistance = PushDistance
		effect.Description = fmt.Sprintf("Push: Target is pushed %d feet away", PushDistance)
	case equipment.MasterySap:
		effect.TargetHasDisadvantage = true
		effect.Description = "Sap: Target has disadvantage on its next attack before your next turn starts"
	case equipment.MasterySlow:
		effect.SpeedReduction = SpeedReduction
		effect.Description = fmt.Sprintf("Slow: Target's speed is reduced by %d feet until the start of your next turn", SpeedReduction)
	case equipment.MasteryTopple:
		effect.TargetMustSave = true
		effect.ToppleSaveDC = SaveDC(in.ProficiencyBonus, in.AbilityModifier)
		effect.Description = fmt.Sprintf("Topple: Target must make DC %d Constitution save or be knocked prone", effect.ToppleSaveDC)
	case equipment.MasteryVex:
		effect.AttackerHasAdvantage = true
		effect.Description = "Vex: You have advantage on your next attack roll against this target before the end of your next turn"
	case equipment.MasteryNick:
		effect.AttackerCanNick = true
		effect.Description = "Nick: You can make an extra attack with a light weapon as part of this Attack action"
	case equipment.MasteryGraze:
		return Effect{Kind: in.Kind}
	case equipment.MasteryNone, equipment.MasteryKindCount:
		return Effect{}
	}

	return effect
}

func onMiss(in Input) Effect {
	if in.Kind != equipment.MasteryGraze {
		return Effect{Kind: in.Kind}
	}

	effect := Effect{Kind: in.Kind, Triggered: true, GrazeDamage: max(0, in.AbilityModifier)}
	if effect.GrazeDamage > 0 {
		effect.Description = fmt.Sprintf("Graze: Deal %d damage on miss", effect.GrazeDamage)
	} else {
		effect.Description = "Graze: No damage (modifier is 0 or negative)"
	}
	return effect
}
