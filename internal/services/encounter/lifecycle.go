package encounter

import (
	"context"
	"log"
	"slices"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/game/combat"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/rulebook/dnd5e/concentration"
	"github.com/KirkDiggler/dnd-combat-engine/internal/effects"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/KirkDiggler/dnd-combat-engine/internal/repositories/encounters"
)

// ReasonCombatEnded is recorded on concentrations dropped at combat end
const ReasonCombatEnded = "Combat ended"

// CreateCombatInput contains data for creating a combat
type CreateCombatInput struct {
	GameID string
	// CombatID is generated when empty
	CombatID string
}

// AddFightersInput contains the combatants joining a combat
type AddFightersInput struct {
	CombatID string

	// CombatantIDs are loaded from the combatant repository
	CombatantIDs []string

	// Combatants are added as given, such as monsters built for this fight
	Combatants []*character.Combatant

	// Surprised lists fighter IDs that start the combat surprised
	Surprised []string
}

// CreateCombat opens a combat in the preparing state
func (s *service) CreateCombat(ctx context.Context, input *CreateCombatInput) (*Outcome, error) {
	if input == nil || input.GameID == "" {
		return &Outcome{Rejection: newRejection(dnderr.InvalidArgument("game ID is required"))}, nil
	}

	unlock := s.locks.lock(gameLockKey(input.GameID))
	defer unlock()

	active, err := s.repository.GetActiveByGame(ctx, input.GameID)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to check for active combat")
	}
	if active != nil {
		return &Outcome{Rejection: newRejection(
			dnderr.IllegalStatef("game %s already has an unfinished combat", input.GameID).
				WithMeta(dnderr.MetaCombatID, active.ID()),
		)}, nil
	}

	id := input.CombatID
	if id == "" {
		id = s.uuidGenerator.New()
	}

	enc := &encounters.Encounter{
		Combat:     combat.NewCombat(id, input.GameID),
		Combatants: map[string]*character.Combatant{},
	}
	if err := s.repository.Create(ctx, enc); err != nil {
		if dnderr.IsAlreadyExists(err) {
			return &Outcome{Rejection: newRejection(err)}, nil
		}
		return nil, dnderr.Wrap(err, "failed to create combat")
	}

	log.Printf("Encounter: created combat %s for game %s", id, input.GameID)
	return &Outcome{Encounter: enc}, nil
}

// AddFighters loads and registers combatants
func (s *service) AddFighters(ctx context.Context, input *AddFightersInput) (*Outcome, error) {
	if input == nil {
		return &Outcome{Rejection: newRejection(dnderr.InvalidArgument("input is required"))}, nil
	}

	return s.mutate(ctx, input.CombatID, "add fighters", func(enc *encounters.Encounter, em *emitter, _ *Outcome) error {
		joining := slices.Clone(input.Combatants)
		if len(input.CombatantIDs) > 0 {
			loaded, err := s.combatantRepo.GetMany(ctx, input.CombatantIDs)
			if err != nil {
				return err
			}
			joining = append(joining, loaded...)
		}
		if len(joining) == 0 {
			return dnderr.InvalidArgument("no combatants to add")
		}

		for _, c := range joining {
			if c == nil || c.ID == "" {
				return dnderr.InvalidArgument("combatant ID is required")
			}
			if c.HitPoints.Max <= 0 {
				return dnderr.InvalidArgumentf("combatant %s needs positive max hit points", c.ID)
			}
			surprised := slices.Contains(input.Surprised, c.ID)
			if err := enc.Combat.AddFighter(combat.NewFighter(c, surprised)); err != nil {
				return err
			}
			enc.Combatants[c.ID] = c.Clone()
		}

		log.Printf("Encounter: %d fighters joined combat %s", len(joining), enc.ID())
		em.touch()
		return nil
	})
}

// BeginInitiative moves the combat to rolling initiative
func (s *service) BeginInitiative(ctx context.Context, combatID string) (*Outcome, error) {
	return s.mutate(ctx, combatID, "begin initiative", func(enc *encounters.Encounter, em *emitter, _ *Outcome) error {
		if err := enc.Combat.BeginInitiative(); err != nil {
			return err
		}
		em.touch()
		return nil
	})
}

// RollInitiative rolls for a pending fighter. No pending request is an
// ordinary outcome with no initiative result and no change.
func (s *service) RollInitiative(ctx context.Context, combatID, fighterID string) (*Outcome, error) {
	return s.mutate(ctx, combatID, "roll initiative", func(enc *encounters.Encounter, em *emitter, out *Outcome) error {
		result, evs, err := enc.Combat.RollInitiative(s.roller, fighterID)
		if err != nil {
			return err
		}
		if result == nil {
			log.Printf("Encounter: no pending initiative roll for %s in combat %s", fighterID, combatID)
			return nil
		}
		out.Initiative = result
		em.add(evs...)
		return nil
	})
}

// AdvanceTurn closes the current turn and opens the next. When the round
// wraps, concentrations tick and lasting effects expire before the next
// turn opens.
func (s *service) AdvanceTurn(ctx context.Context, combatID string) (*Outcome, error) {
	return s.mutate(ctx, combatID, "advance turn", func(enc *encounters.Encounter, em *emitter, _ *Outcome) error {
		advance, err := enc.Combat.AdvanceTurn()
		if err != nil {
			return err
		}
		em.add(advance.Closing...)

		if advance.NewRound {
			released := effects.ReleaseConditions(advance.Expired.Effects, enc.Combatants)
			em.cleared(advance.Expired, released)

			for _, id := range enc.Combat.Order {
				c, ok := enc.Combatants[id]
				if !ok {
					continue
				}
				if ended := s.tracker.Tick(c); ended != nil {
					em.concentrationBroken(*ended)
					s.clearConcentration(enc, em, *ended)
				}
			}
		}

		em.add(advance.Opening...)
		return nil
	})
}

// EndCombat ends the combat, drops every concentration and writes the
// combatants back so HP, slots and conditions carry over.
func (s *service) EndCombat(ctx context.Context, combatID string) (*Outcome, error) {
	out, err := s.mutate(ctx, combatID, "end combat", func(enc *encounters.Encounter, em *emitter, _ *Outcome) error {
		evs := enc.Combat.End()
		if evs == nil {
			return nil
		}

		for _, id := range fighterIDs(enc.Combat) {
			c, ok := enc.Combatants[id]
			if !ok {
				continue
			}
			if ended := s.tracker.Break(c, ReasonCombatEnded); ended != nil {
				em.concentrationBroken(*ended)
				s.clearConcentration(enc, em, *ended)
			}
		}
		em.add(evs...)
		return nil
	})
	if err != nil || out.Rejected() || len(out.Events) == 0 {
		return out, err
	}

	if err := s.writeBack(ctx, out.Encounter); err != nil {
		return nil, err
	}
	return out, nil
}

// writeBack persists the combat's characters. Monsters made for the fight
// are not kept.
func (s *service) writeBack(ctx context.Context, enc *encounters.Encounter) error {
	var keep []*character.Combatant
	for _, id := range fighterIDs(enc.Combat) {
		c, ok := enc.Combatants[id]
		if ok && c.Kind != character.KindMonster {
			keep = append(keep, c)
		}
	}
	if len(keep) == 0 {
		return nil
	}
	if err := s.combatantRepo.SaveAll(ctx, keep); err != nil {
		return dnderr.Wrapf(err, "failed to write back combatants of combat %s", enc.ID())
	}
	log.Printf("Encounter: wrote back %d combatants from combat %s", len(keep), enc.ID())
	return nil
}

// clearConcentration drops everything the ended concentration held up
func (s *service) clearConcentration(enc *encounters.Encounter, em *emitter, ended concentration.Ended) {
	expired := enc.Combat.Effects.ClearConcentration(ended.CharacterID, ended.Previous.SpellKey)
	if expired.Empty() {
		return
	}
	released := effects.ReleaseConditions(expired.Effects, enc.Combatants)
	em.cleared(expired, released)
}

// fighterIDs lists fighters in registration order
func fighterIDs(c *combat.Combat) []string {
	ids := make([]string, len(c.Fighters))
	for i, f := range c.Fighters {
		ids[i] = f.ID
	}
	return ids
}
