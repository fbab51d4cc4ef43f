// Package attack resolves a single weapon attack.
package attack

import (
	"github.com/KirkDiggler/dnd-combat-engine/internal/dice"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/equipment"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/game/combat/mastery"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
)

// Input describes one attack.
type Input struct {
	Attacker     *character.Combatant
	Target       *character.Combatant
	Weapon       *equipment.Weapon
	Advantage    bool
	Disadvantage bool
	UseMastery   bool

	// Bonuses from active spell effects. AttackBonus is on the attacker,
	// TargetACBonus on the target.
	AttackBonus   int
	DamageBonus   int
	TargetACBonus int
}

// Result is produced once per attack and not mutated afterwards.
type Result struct {
	AttackerID string `json:"attacker_id"`
	TargetID   string `json:"target_id"`
	WeaponKey  string `json:"weapon_key"`
	WeaponName string `json:"weapon_name"`

	Mode           dice.Mode        `json:"mode"`
	NaturalRoll    int              `json:"natural_roll"`
	DiscardedRoll  int              `json:"discarded_roll,omitempty"`
	AttackModifier int              `json:"attack_modifier"`
	AttackRoll     int              `json:"attack_roll"`
	AbilityUsed    shared.Attribute `json:"ability_used"`
	TargetAC       int              `json:"target_ac"`

	Hit          bool `json:"hit"`
	CriticalHit  bool `json:"critical_hit"`
	CriticalMiss bool `json:"critical_miss"`

	Damage         int               `json:"damage"`
	DamageDice     string            `json:"damage_dice"`
	DamageModifier int               `json:"damage_modifier"`
	DamageRolls    []int             `json:"damage_rolls,omitempty"`
	DamageType     shared.DamageType `json:"damage_type,omitempty"`

	Mastery mastery.Effect `json:"mastery"`
}

// ResolverConfig holds resolver dependencies
type ResolverConfig struct {
	Roller dice.Roller
}

// Resolver resolves weapon attacks
type Resolver struct {
	roller dice.Roller
}

// NewResolver creates a new attack resolver
func NewResolver(cfg *ResolverConfig) *Resolver {
	if cfg == nil || cfg.Roller == nil {
		panic("dice roller is required")
	}
	return &Resolver{roller: cfg.Roller}
}

// AbilityFor picks the attack ability. Finesse weapons use the better of
// Strength and Dexterity with ties going to Dexterity, ranged weapons use
// Dexterity and everything else uses Strength.
func AbilityFor(attacker *character.Combatant, weapon *equipment.Weapon) shared.Attribute {
	if weapon.IsFinesse() {
		if attacker.Modifier(shared.AttributeDexterity) >= attacker.Modifier(shared.AttributeStrength) {
			return shared.AttributeDexterity
		}
		return shared.AttributeStrength
	}
	if weapon.IsRanged() {
		return shared.AttributeDexterity
	}
	return shared.AttributeStrength
}

// IsProficient checks the weapon key and its category.
func IsProficient(attacker *character.Combatant, weapon *equipment.Weapon) bool {
	return attacker.IsProficientWith(weapon.Key, string(weapon.Category))
}

// Resolve rolls the attack. A natural 1 always misses, a natural 20 always
// hits and doubles the damage dice but not the modifier.
func (r *Resolver) Resolve(in *Input) (*Result, error) {
	if in == nil || in.Attacker == nil || in.Target == nil || in.Weapon == nil {
		return nil, dnderr.InvalidArgument("attacker, target and weapon are required")
	}

	ability := AbilityFor(in.Attacker, in.Weapon)
	abilityMod := in.Attacker.Modifier(ability)
	attackMod := abilityMod
	if IsProficient(in.Attacker, in.Weapon) {
		attackMod += in.Attacker.ProficiencyBonus
	}
	attackMod += in.AttackBonus

	mode := dice.ModeFor(in.Advantage, in.Disadvantage)
	d20, err := dice.D20(r.roller, mode, attackMod)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to roll attack")
	}

	result := &Result{
		AttackerID:     in.Attacker.ID,
		TargetID:       in.Target.ID,
		WeaponKey:      in.Weapon.Key,
		WeaponName:     in.Weapon.Name,
		Mode:           mode,
		NaturalRoll:    d20.Kept(),
		DiscardedRoll:  d20.Discarded(),
		AttackModifier: attackMod,
		AttackRoll:     d20.Total,
		AbilityUsed:    ability,
		TargetAC:       in.Target.ArmorClass + in.TargetACBonus,
		DamageDice:     in.Weapon.Damage(),
		DamageModifier: abilityMod + in.DamageBonus,
		DamageType:     in.Weapon.DamageType,
	}

	switch {
	case result.NaturalRoll == 1:
		result.CriticalMiss = true
	case result.NaturalRoll == 20:
		result.CriticalHit = true
		result.Hit = true
	default:
		result.Hit = result.AttackRoll >= result.TargetAC
	}

	if result.Hit {
		if err := r.rollDamage(result); err != nil {
			return nil, err
		}
	}

	if in.UseMastery && in.Weapon.HasMastery() {
		// raw weapon damage; resistances and temp HP are not applied here
		hpAfter := in.Target.HitPoints.Current
		if result.Hit {
			hpAfter -= result.Damage
		}
		result.Mastery = mastery.Resolve(mastery.Input{
			Kind:             in.Weapon.Mastery,
			Hit:              result.Hit,
			AbilityModifier:  abilityMod,
			ProficiencyBonus: in.Attacker.ProficiencyBonus,
			DamageDealt:      result.Damage,
			TargetHPAfter:    hpAfter,
		})
		if !result.Hit && result.Mastery.GrazeDamage > 0 {
			result.Damage = result.Mastery.GrazeDamage
		}
	}

	return result, nil
}

func (r *Resolver) rollDamage(result *Result) error {
	expr, err := dice.ParseExpression(result.DamageDice)
	if err != nil {
		return err
	}
	if result.CriticalHit {
		expr = expr.Double()
	}

	roll, err := dice.RollExpression(r.roller, expr)
	if err != nil {
		return dnderr.Wrap(err, "failed to roll damage")
	}

	result.DamageRolls = roll.Rolls
	result.Damage = max(0, roll.Total+result.DamageModifier)
	return nil
}
