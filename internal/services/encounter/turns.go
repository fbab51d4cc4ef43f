package encounter

import (
	"context"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/game/combat"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/KirkDiggler/dnd-combat-engine/internal/events"
	"github.com/KirkDiggler/dnd-combat-engine/internal/repositories/encounters"
)

// TakeActionInput contains data for an action with no rules resolution,
// such as dodge or help
type TakeActionInput struct {
	CombatID   string
	FighterID  string
	Action     string
	ActionType combat.ActionType
	TargetID   string
}

func (s *service) Move(ctx context.Context, combatID, fighterID string, feet int) (*Outcome, error) {
	return s.mutate(ctx, combatID, "move", func(enc *encounters.Encounter, em *emitter, _ *Outcome) error {
		if err := s.requireConsciousFighter(enc, fighterID); err != nil {
			return err
		}
		_, evs, err := enc.Combat.Move(fighterID, feet)
		if err != nil {
			return err
		}
		em.add(evs...)
		return nil
	})
}

func (s *service) TakeAction(ctx context.Context, input *TakeActionInput) (*Outcome, error) {
	if input == nil {
		return &Outcome{Rejection: newRejection(dnderr.InvalidArgument("input is required"))}, nil
	}

	return s.mutate(ctx, input.CombatID, "take action", func(enc *encounters.Encounter, em *emitter, _ *Outcome) error {
		action, err := combat.ParseAction(input.Action)
		if err != nil {
			return err
		}
		// attacks and spells need resolution
		if action == combat.ActionAttack || action == combat.ActionCastSpell {
			return dnderr.InvalidArgumentf("%s has its own operation", action)
		}
		if err := s.requireConsciousFighter(enc, input.FighterID); err != nil {
			return err
		}

		actionType := input.ActionType
		if actionType == "" {
			actionType = combat.ActionTypeAction
		}
		_, evs, err := enc.Combat.TakeAction(input.FighterID, actionType, action, input.TargetID)
		if err != nil {
			return err
		}
		em.add(evs...)
		return nil
	})
}

func (s *service) Dash(ctx context.Context, combatID, fighterID string, actionType combat.ActionType) (*Outcome, error) {
	return s.mutate(ctx, combatID, "dash", func(enc *encounters.Encounter, em *emitter, _ *Outcome) error {
		if err := s.requireConsciousFighter(enc, fighterID); err != nil {
			return err
		}
		evs, err := enc.Combat.Dash(fighterID, actionType)
		if err != nil {
			return err
		}
		em.add(evs...)
		return nil
	})
}

func (s *service) Ready(ctx context.Context, combatID, fighterID, targetID string) (*Outcome, error) {
	return s.mutate(ctx, combatID, "ready", func(enc *encounters.Encounter, em *emitter, _ *Outcome) error {
		if err := s.requireConsciousFighter(enc, fighterID); err != nil {
			return err
		}
		evs, err := enc.Combat.Ready(fighterID, targetID)
		if err != nil {
			return err
		}
		em.add(evs...)
		return nil
	})
}

func (s *service) Delay(ctx context.Context, combatID, fighterID string) (*Outcome, error) {
	return s.mutate(ctx, combatID, "delay", func(enc *encounters.Encounter, em *emitter, _ *Outcome) error {
		evs, err := enc.Combat.Delay(fighterID)
		if err != nil {
			return err
		}
		em.add(evs...)
		return nil
	})
}

// RollDeathSave rolls a d20 for a downed character on their own turn
func (s *service) RollDeathSave(ctx context.Context, combatID, fighterID string) (*Outcome, error) {
	return s.mutate(ctx, combatID, "roll death save", func(enc *encounters.Encounter, em *emitter, out *Outcome) error {
		if err := enc.Combat.CheckTurn(fighterID); err != nil {
			return err
		}
		c, err := combatantFor(enc, fighterID)
		if err != nil {
			return err
		}
		switch {
		case c.Kind == character.KindMonster:
			return dnderr.IllegalStatef("%s does not make death saves", c.Name)
		case c.HitPoints.Current > 0:
			return dnderr.IllegalStatef("%s is not dying", c.Name)
		case c.DeathSaves.Dead:
			return dnderr.IllegalStatef("%s is dead", c.Name)
		case c.DeathSaves.Stable:
			return dnderr.IllegalStatef("%s is stable", c.Name)
		}

		roll, err := s.roller.Roll(1, 20, 0)
		if err != nil {
			return dnderr.Wrap(err, "failed to roll death save")
		}
		result := c.RollDeathSave(roll.Kept())
		out.DeathSave = &result

		em.add(events.New(events.KindDeathSave, em.actor(c.ID), events.DeathSave{
			Name:       c.Name,
			Roll:       result.Natural,
			Success:    result.Success,
			Successes:  c.DeathSaves.Successes,
			Failures:   c.DeathSaves.Failures,
			Stabilized: result.Stabilized,
			Died:       result.Died,
			Regained:   result.RegainedHP,
		}))
		return nil
	})
}

// requireConsciousFighter rejects budget spending by a fighter at 0 HP.
// Fighters without a loaded combatant are left to the combat's own checks.
func (s *service) requireConsciousFighter(enc *encounters.Encounter, fighterID string) error {
	c, ok := enc.Combatants[fighterID]
	if !ok {
		return nil
	}
	return requireConscious(c)
}
