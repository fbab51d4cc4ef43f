// Package encounter is the action-handling boundary of the combat engine.
// Every state-changing call runs under a per-combat lock against a working
// copy of the stored encounter; the copy is persisted, then its events are
// stamped and broadcast. A rejected action leaves the stored state untouched.
package encounter

//go:generate mockgen -destination=mock/mock_service.go -package=mockencounter -source=service.go

import (
	"context"
	"log"

	"github.com/KirkDiggler/dnd-combat-engine/internal/dice"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/equipment"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/game/combat"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/game/combat/attack"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/magic"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/rulebook/dnd5e/concentration"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/rulebook/dnd5e/spells"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/KirkDiggler/dnd-combat-engine/internal/events"
	"github.com/KirkDiggler/dnd-combat-engine/internal/repositories/combatants"
	"github.com/KirkDiggler/dnd-combat-engine/internal/repositories/encounters"
	"github.com/KirkDiggler/dnd-combat-engine/internal/uuid"
)

// Service defines the encounter service interface
type Service interface {
	// CreateCombat opens a combat for a game. A game has at most one
	// unfinished combat.
	CreateCombat(ctx context.Context, input *CreateCombatInput) (*Outcome, error)

	// AddFighters registers combatants while the combat is being set up
	AddFighters(ctx context.Context, input *AddFightersInput) (*Outcome, error)

	// BeginInitiative asks every fighter for an initiative roll
	BeginInitiative(ctx context.Context, combatID string) (*Outcome, error)

	// RollInitiative rolls for a pending fighter. The last roll starts the
	// combat. A fighter with no pending roll gets an empty outcome.
	RollInitiative(ctx context.Context, combatID, fighterID string) (*Outcome, error)

	// Attack resolves a weapon attack and applies its damage
	Attack(ctx context.Context, input *AttackInput) (*Outcome, error)

	// CastSpell spends a slot, resolves the spell and applies the result
	CastSpell(ctx context.Context, input *CastSpellInput) (*Outcome, error)

	// Move spends movement
	Move(ctx context.Context, combatID, fighterID string, feet int) (*Outcome, error)

	// TakeAction spends a budget on an action with no rules resolution
	TakeAction(ctx context.Context, input *TakeActionInput) (*Outcome, error)

	// Dash spends the action or bonus action for extra movement
	Dash(ctx context.Context, combatID, fighterID string, actionType combat.ActionType) (*Outcome, error)

	// Ready spends the action to hold a response
	Ready(ctx context.Context, combatID, fighterID, targetID string) (*Outcome, error)

	// Delay records a held turn
	Delay(ctx context.Context, combatID, fighterID string) (*Outcome, error)

	// RollDeathSave rolls for the current fighter at 0 HP
	RollDeathSave(ctx context.Context, combatID, fighterID string) (*Outcome, error)

	// DismissSummon removes a creature its summoner no longer wants
	DismissSummon(ctx context.Context, combatID, summonerID, summonID string) (*Outcome, error)

	// AdvanceTurn ends the current turn and starts the next, processing
	// the round when it wraps
	AdvanceTurn(ctx context.Context, combatID string) (*Outcome, error)

	// EndCombat finishes the combat and writes combatants back. Ending an
	// ended combat does nothing.
	EndCombat(ctx context.Context, combatID string) (*Outcome, error)

	// GetCombat retrieves a committed encounter
	GetCombat(ctx context.Context, combatID string) (*encounters.Encounter, error)

	// GetActiveCombat retrieves the unfinished combat of a game, nil when
	// there is none
	GetActiveCombat(ctx context.Context, gameID string) (*encounters.Encounter, error)

	// TurnOrder lists fighters with initiative, current and surprised flags
	TurnOrder(ctx context.Context, combatID string) ([]combat.TurnOrderEntry, error)
}

// Catalog is the reference data the service resolves against
type Catalog interface {
	Weapon(key string) (*equipment.Weapon, error)
	Spell(key string) (*magic.Spell, error)
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository          encounters.Repository
	CombatantRepository combatants.Repository
	Catalog             Catalog
	Roller              dice.Roller
	Broadcaster         events.Broadcaster
	Stamper             *events.Stamper
	UUIDGenerator       uuid.Generator
}

type service struct {
	repository    encounters.Repository
	combatantRepo combatants.Repository
	catalog       Catalog
	roller        dice.Roller
	broadcaster   events.Broadcaster
	stamper       *events.Stamper
	uuidGenerator uuid.Generator

	attacks *attack.Resolver
	spells  *spells.Resolver
	applier *spells.Applier
	tracker *concentration.Tracker

	locks *combatLocks
}

// NewService creates a new encounter service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.CombatantRepository == nil {
		panic("combatant repository is required")
	}
	if cfg.Catalog == nil {
		panic("catalog is required")
	}
	if cfg.Roller == nil {
		panic("dice roller is required")
	}

	svc := &service{
		repository:    cfg.Repository,
		combatantRepo: cfg.CombatantRepository,
		catalog:       cfg.Catalog,
		roller:        cfg.Roller,
		broadcaster:   cfg.Broadcaster,
		stamper:       cfg.Stamper,
		locks:         newCombatLocks(),
	}

	if cfg.UUIDGenerator != nil {
		svc.uuidGenerator = cfg.UUIDGenerator
	} else {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.stamper == nil {
		svc.stamper = events.NewStamper(&events.StamperConfig{UUIDGenerator: svc.uuidGenerator})
	}

	svc.tracker = concentration.NewTracker(&concentration.TrackerConfig{Roller: cfg.Roller})
	svc.attacks = attack.NewResolver(&attack.ResolverConfig{Roller: cfg.Roller})
	svc.spells = spells.NewResolver(&spells.Config{Roller: cfg.Roller})
	svc.applier = spells.NewApplier(&spells.ApplierConfig{Tracker: svc.tracker, UUIDGenerator: svc.uuidGenerator})

	return svc
}

// Rejection is a recoverable error turned into a result. The combat is
// unchanged when an action is rejected.
type Rejection struct {
	Code   dnderr.Code    `json:"code"`
	Reason string         `json:"reason"`
	Meta   map[string]any `json:"meta,omitempty"`
}

func newRejection(err error) *Rejection {
	return &Rejection{Code: dnderr.GetCode(err), Reason: err.Error(), Meta: dnderr.GetMeta(err)}
}

// Outcome is the result of one call. Exactly one of Rejection and
// Encounter is set, except for a call that changed nothing.
type Outcome struct {
	Rejection *Rejection `json:"rejection,omitempty"`

	// Encounter is the committed state after the call
	Encounter *encounters.Encounter `json:"encounter,omitempty"`
	Events    []events.Event        `json:"events,omitempty"`

	Initiative *combat.InitiativeResult    `json:"initiative,omitempty"`
	Attack     *attack.Result              `json:"attack,omitempty"`
	Spell      *spells.CastResult          `json:"spell,omitempty"`
	DeathSave  *character.DeathSaveOutcome `json:"death_save,omitempty"`
}

// Rejected reports whether the call was turned down
func (o *Outcome) Rejected() bool {
	return o != nil && o.Rejection != nil
}

type mutation func(enc *encounters.Encounter, em *emitter, out *Outcome) error

// mutate serializes a change to one combat. fn works on a private copy;
// nothing is persisted or broadcast unless it succeeds and records a change.
func (s *service) mutate(ctx context.Context, combatID, op string, fn mutation) (*Outcome, error) {
	if combatID == "" {
		return &Outcome{Rejection: newRejection(dnderr.InvalidArgument("combat ID is required"))}, nil
	}

	unlock := s.locks.lock(combatID)
	defer unlock()

	working, err := s.repository.Get(ctx, combatID)
	if err != nil {
		if dnderr.IsNotFound(err) {
			return &Outcome{Rejection: newRejection(err)}, nil
		}
		return nil, dnderr.Wrapf(err, "failed to load combat %s", combatID)
	}

	em := newEmitter(working)
	out := &Outcome{}
	if err := fn(working, em, out); err != nil {
		if dnderr.IsRejection(err) {
			log.Printf("Encounter: rejected %s on combat %s: %v", op, combatID, err)
			return &Outcome{Rejection: newRejection(err)}, nil
		}
		return nil, dnderr.Wrapf(err, "failed to %s", op)
	}

	if !em.dirty {
		out.Encounter = working
		return out, nil
	}

	if err := s.repository.Update(ctx, working); err != nil {
		return nil, dnderr.Wrapf(err, "failed to save combat %s", combatID)
	}

	out.Encounter = working
	out.Events = s.stamper.Stamp(working.Combat.GameID, working.Combat.ID, em.events)
	s.publish(ctx, working.Combat.GameID, out.Events)
	return out, nil
}

// publish runs after the state is committed, so a failed broadcast is only
// logged.
func (s *service) publish(ctx context.Context, gameID string, evs []events.Event) {
	if s.broadcaster == nil || len(evs) == 0 {
		return
	}
	if err := s.broadcaster.Broadcast(ctx, gameID, evs); err != nil {
		log.Printf("Encounter: failed to broadcast %d events for game %s: %v", len(evs), gameID, err)
	}
}

// GetCombat retrieves a committed encounter
func (s *service) GetCombat(ctx context.Context, combatID string) (*encounters.Encounter, error) {
	if combatID == "" {
		return nil, dnderr.InvalidArgument("combat ID is required")
	}
	enc, err := s.repository.Get(ctx, combatID)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to get combat")
	}
	return enc, nil
}

// GetActiveCombat retrieves the unfinished combat for a game
func (s *service) GetActiveCombat(ctx context.Context, gameID string) (*encounters.Encounter, error) {
	if gameID == "" {
		return nil, dnderr.InvalidArgument("game ID is required")
	}
	enc, err := s.repository.GetActiveByGame(ctx, gameID)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to get active combat")
	}
	return enc, nil
}

// TurnOrder lists the fighters for display
func (s *service) TurnOrder(ctx context.Context, combatID string) ([]combat.TurnOrderEntry, error) {
	enc, err := s.GetCombat(ctx, combatID)
	if err != nil {
		return nil, err
	}
	return enc.Combat.TurnOrder(), nil
}

// combatantFor returns the combat's copy of a fighter's combatant
func combatantFor(enc *encounters.Encounter, id string) (*character.Combatant, error) {
	c, ok := enc.Combatants[id]
	if !ok {
		return nil, dnderr.NotFoundf("combatant %s not in combat", id).
			WithMeta(dnderr.MetaCombatID, enc.ID()).
			WithMeta(dnderr.MetaFighterID, id)
	}
	return c, nil
}

// requireConscious rejects actions from a combatant at 0 HP
func requireConscious(c *character.Combatant) error {
	if c.HitPoints.Current > 0 {
		return nil
	}
	return dnderr.IllegalStatef("%s cannot act at 0 hit points", c.Name).WithMeta(dnderr.MetaFighterID, c.ID)
}
