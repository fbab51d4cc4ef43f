package encounter

import (
	"context"
	"log"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/game/combat"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/rulebook/dnd5e/spells"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/KirkDiggler/dnd-combat-engine/internal/repositories/encounters"
)

// CastSpellInput contains data for casting a spell
type CastSpellInput struct {
	CombatID  string
	CasterID  string
	SpellKey  string
	TargetIDs []string

	// SlotLevel 0 casts at the spell's own level
	SlotLevel int

	// ActionType defaults to the action
	ActionType combat.ActionType
}

// CastSpell spends the budget and a slot, resolves the spell and applies it
func (s *service) CastSpell(ctx context.Context, input *CastSpellInput) (*Outcome, error) {
	if input == nil {
		return &Outcome{Rejection: newRejection(dnderr.InvalidArgument("input is required"))}, nil
	}

	spell, err := s.catalog.Spell(input.SpellKey)
	if err != nil {
		if dnderr.IsRejection(err) {
			return &Outcome{Rejection: newRejection(err)}, nil
		}
		return nil, dnderr.Wrap(err, "failed to look up spell")
	}

	return s.mutate(ctx, input.CombatID, "cast spell", func(enc *encounters.Encounter, em *emitter, out *Outcome) error {
		caster, err := combatantFor(enc, input.CasterID)
		if err != nil {
			return err
		}
		if err := requireConscious(caster); err != nil {
			return err
		}

		targets := make([]*character.Combatant, 0, len(input.TargetIDs))
		for _, id := range input.TargetIDs {
			t, err := combatantFor(enc, id)
			if err != nil {
				return err
			}
			targets = append(targets, t)
		}

		actionType := input.ActionType
		if actionType == "" {
			actionType = combat.ActionTypeAction
		}
		primary := ""
		if len(input.TargetIDs) > 0 {
			primary = input.TargetIDs[0]
		}
		_, evs, err := enc.Combat.TakeAction(caster.ID, actionType, combat.ActionCastSpell, primary)
		if err != nil {
			return err
		}
		em.add(evs...)

		slotLevel := input.SlotLevel
		if slotLevel == 0 {
			slotLevel = spell.Level
		}
		if err := caster.ConsumeSpellSlot(spell.Key, spell.Level, slotLevel); err != nil {
			return err
		}

		result, err := s.spells.Resolve(&spells.Input{
			Caster:    caster,
			Spell:     spell,
			Targets:   targets,
			SlotLevel: slotLevel,
		})
		if err != nil {
			return err
		}

		report, err := s.applier.Apply(&spells.ApplyInput{
			Result:     result,
			Combatants: enc.Combatants,
			Effects:    &enc.Combat.Effects,
			Round:      enc.Combat.Round,
		})
		if err != nil {
			return err
		}

		out.Spell = result
		em.spell(result, report)
		return nil
	})
}

// DismissSummon removes a summon at its summoner's request
func (s *service) DismissSummon(ctx context.Context, combatID, summonerID, summonID string) (*Outcome, error) {
	return s.mutate(ctx, combatID, "dismiss summon", func(enc *encounters.Encounter, em *emitter, _ *Outcome) error {
		summon, ok := enc.Combat.Effects.Summon(summonID)
		if !ok {
			return dnderr.NotFoundf("summon %s not in combat", summonID).WithMeta(dnderr.MetaCombatID, enc.ID())
		}
		if summon.SummonerID != summonerID {
			return dnderr.PermissionDenied("only the summoner can dismiss "+summon.Name).
				WithMeta(dnderr.MetaFighterID, summonerID)
		}

		dismissed, _ := enc.Combat.Effects.Dismiss(summonID)
		log.Printf("Encounter: %s dismissed %s in combat %s", summonerID, dismissed.Name, enc.ID())
		em.summonDismissed(*dismissed)
		return nil
	})
}
