package encounter

import (
	"context"
	"log"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/equipment"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/game/combat"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/game/combat/attack"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/game/combat/mastery"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
	"github.com/KirkDiggler/dnd-combat-engine/internal/effects"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/KirkDiggler/dnd-combat-engine/internal/repositories/encounters"
)

// ToppleSource marks the prone condition a topple mastery applied
const ToppleSource = "topple"

// AttackInput contains data for a weapon attack
type AttackInput struct {
	CombatID   string
	AttackerID string
	// TargetID is a fighter or a summoned creature
	TargetID  string
	WeaponKey string

	// ActionType defaults to the action. Reactions cover opportunity attacks.
	ActionType   combat.ActionType
	Advantage    bool
	Disadvantage bool
	UseMastery   bool
}

// attackTarget is what an attack lands on. Exactly one field is set.
type attackTarget struct {
	combatant *character.Combatant
	summon    *effects.SummonedCreature
}

func (t attackTarget) id() string {
	if t.combatant != nil {
		return t.combatant.ID
	}
	return t.summon.ID
}

// stand returns the view the attack resolver rolls against
func (t attackTarget) stand() *character.Combatant {
	if t.combatant != nil {
		return t.combatant
	}
	return &character.Combatant{
		ID:         t.summon.ID,
		Name:       t.summon.Name,
		Kind:       character.KindMonster,
		ArmorClass: t.summon.ArmorClass,
		HitPoints:  character.HitPoints{Current: t.summon.HPCurrent, Max: t.summon.HPMax},
	}
}

// Attack resolves a weapon attack
func (s *service) Attack(ctx context.Context, input *AttackInput) (*Outcome, error) {
	if input == nil {
		return &Outcome{Rejection: newRejection(dnderr.InvalidArgument("input is required"))}, nil
	}

	weapon, err := s.catalog.Weapon(input.WeaponKey)
	if err != nil {
		if dnderr.IsRejection(err) {
			return &Outcome{Rejection: newRejection(err)}, nil
		}
		return nil, dnderr.Wrap(err, "failed to look up weapon")
	}

	return s.mutate(ctx, input.CombatID, "attack", func(enc *encounters.Encounter, em *emitter, out *Outcome) error {
		attacker, err := combatantFor(enc, input.AttackerID)
		if err != nil {
			return err
		}
		if err := requireConscious(attacker); err != nil {
			return err
		}
		fighter, _ := enc.Combat.Fighter(attacker.ID)

		target, err := findTarget(enc, input.TargetID)
		if err != nil {
			return err
		}

		actionType := input.ActionType
		if actionType == "" {
			actionType = combat.ActionTypeAction
		}
		recordedTarget := input.TargetID
		if target.summon != nil {
			recordedTarget = ""
		}
		_, evs, err := enc.Combat.TakeAction(attacker.ID, actionType, combat.ActionAttack, recordedTarget)
		if err != nil {
			return err
		}
		em.add(evs...)

		advantage, disadvantage := rollMode(fighter, attacker, target, weapon)
		bonus := enc.Combat.Effects.ModifiersFor(attacker.ID)
		defense := enc.Combat.Effects.ModifiersFor(input.TargetID)

		result, err := s.attacks.Resolve(&attack.Input{
			Attacker:      attacker,
			Target:        target.stand(),
			Weapon:        weapon,
			Advantage:     advantage || input.Advantage,
			Disadvantage:  disadvantage || input.Disadvantage,
			UseMastery:    input.UseMastery,
			AttackBonus:   bonus.Attack,
			DamageBonus:   bonus.Damage,
			TargetACBonus: defense.AC,
		})
		if err != nil {
			return err
		}
		settleCleave(target, result)
		out.Attack = result
		em.attack(result)

		if result.Damage > 0 {
			if err := s.landDamage(enc, em, attacker.ID, target, result); err != nil {
				return err
			}
		}

		if result.Mastery.Triggered {
			return s.applyMastery(enc, em, fighter, target, result)
		}
		return nil
	})
}

// findTarget resolves a fighter first, then a summon. Dead targets cannot be
// attacked; unconscious ones can.
func findTarget(enc *encounters.Encounter, id string) (attackTarget, error) {
	if id == "" {
		return attackTarget{}, dnderr.InvalidArgument("target is required")
	}
	if c, ok := enc.Combatants[id]; ok {
		if !c.IsAlive() {
			return attackTarget{}, dnderr.IllegalStatef("%s is dead", c.Name).WithMeta(dnderr.MetaFighterID, id)
		}
		return attackTarget{combatant: c}, nil
	}
	if summon, ok := enc.Combat.Effects.Summon(id); ok {
		return attackTarget{summon: summon}, nil
	}
	return attackTarget{}, dnderr.NotFoundf("target %s not in combat", id).
		WithMeta(dnderr.MetaCombatID, enc.ID()).
		WithMeta(dnderr.MetaFighterID, id)
}

// rollMode collects advantage and disadvantage from conditions and mastery
// riders. Riders are spent by this roll.
func rollMode(fighter *combat.Fighter, attacker *character.Combatant, target attackTarget, weapon *equipment.Weapon) (advantage, disadvantage bool) {
	if fighter != nil {
		if fighter.VexTargetID != "" {
			advantage = fighter.VexTargetID == target.id()
			fighter.VexTargetID = ""
		}
		if fighter.Sapped {
			disadvantage = true
			fighter.Sapped = false
		}
	}

	for _, cond := range []shared.ConditionType{shared.ConditionPoisoned, shared.ConditionRestrained, shared.ConditionProne} {
		if attacker.HasCondition(cond) {
			disadvantage = true
		}
	}

	if t := target.combatant; t != nil {
		for _, cond := range []shared.ConditionType{shared.ConditionRestrained, shared.ConditionParalyzed, shared.ConditionStunned, shared.ConditionUnconscious} {
			if t.HasCondition(cond) {
				advantage = true
			}
		}
		if t.HasCondition(shared.ConditionProne) {
			if weapon.IsRanged() {
				disadvantage = true
			} else {
				advantage = true
			}
		}
	}
	return advantage, disadvantage
}

func (s *service) landDamage(enc *encounters.Encounter, em *emitter, attackerID string, target attackTarget, result *attack.Result) error {
	if summon := target.summon; summon != nil {
		summon.TakeDamage(result.Damage)
		em.summonDamage(attackerID, summon, result.Damage, result.WeaponName)
		for _, dead := range enc.Combat.Effects.RemoveDeadSummons() {
			log.Printf("Encounter: summon %s destroyed in combat %s", dead.Name, enc.ID())
			em.summonDismissed(dead)
		}
		return nil
	}

	outcome, err := s.tracker.ApplyDamage(target.combatant, result.Damage, result.DamageType, result.CriticalHit)
	if err != nil {
		return err
	}
	em.damage(attackerID, target.combatant.ID, result.WeaponName, outcome)
	if outcome.Ended != nil {
		s.clearConcentration(enc, em, *outcome.Ended)
	}
	return nil
}

// settleCleave recomputes cleave overflow against a combatant from the
// damage it will actually take after immunities, resistances and temporary
// HP.
func settleCleave(target attackTarget, result *attack.Result) {
	victim := target.combatant
	if victim == nil || !result.Hit || result.Mastery.Kind != equipment.MasteryCleave {
		return
	}

	adjusted := victim.AdjustDamage(result.Damage, result.DamageType)
	_, split := victim.HitPoints.Damage(adjusted)
	result.Mastery = mastery.Resolve(mastery.Input{
		Kind:          equipment.MasteryCleave,
		Hit:           true,
		DamageDealt:   result.Damage,
		TargetHPAfter: victim.HitPoints.Current - (split.Amount - split.Absorbed),
	})
}

// applyMastery carries a triggered mastery into combat state. Push, slow,
// cleave and nick are reported on the attack but need positions or a
// follow-up choice the engine does not track.
func (s *service) applyMastery(enc *encounters.Encounter, em *emitter, fighter *combat.Fighter, target attackTarget, result *attack.Result) error {
	effect := result.Mastery
	switch effect.Kind {
	case equipment.MasteryVex:
		if fighter != nil {
			fighter.VexTargetID = result.TargetID
		}
	case equipment.MasterySap:
		if victim, ok := enc.Combat.Fighter(result.TargetID); ok {
			victim.Sapped = true
		}
	case equipment.MasteryTopple:
		victim := target.combatant
		if victim == nil || !effect.TargetMustSave || !victim.IsAlive() {
			return nil
		}
		save, err := s.spells.SavingThrow(victim, shared.AttributeConstitution, effect.ToppleSaveDC)
		if err != nil {
			return err
		}
		em.savingThrow(*save, effect.Kind.Title())
		if !save.Success {
			victim.AddCondition(shared.Condition{Type: shared.ConditionProne, Source: ToppleSource})
			em.conditionApplied(victim.ID, string(shared.ConditionProne), effect.Kind.Title())
		}
	}
	return nil
}
