package spells

import (
	"log"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/magic"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/rulebook/dnd5e/concentration"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
	"github.com/KirkDiggler/dnd-combat-engine/internal/effects"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/KirkDiggler/dnd-combat-engine/internal/uuid"
)

// ApplierConfig holds applier dependencies
type ApplierConfig struct {
	Tracker       *concentration.Tracker
	UUIDGenerator uuid.Generator
}

// Applier turns a CastResult into changes on combatants and the combat's
// effect ledger.
type Applier struct {
	tracker *concentration.Tracker
	uuidGen uuid.Generator
}

// NewApplier creates a new result applier
func NewApplier(cfg *ApplierConfig) *Applier {
	if cfg == nil {
		panic("config is required")
	}
	if cfg.Tracker == nil {
		panic("concentration tracker is required")
	}
	if cfg.UUIDGenerator == nil {
		cfg.UUIDGenerator = uuid.NewGoogleUUIDGenerator()
	}
	return &Applier{tracker: cfg.Tracker, uuidGen: cfg.UUIDGenerator}
}

// ApplyInput is what a result is applied to. Combatants must hold the caster
// and every target by ID.
type ApplyInput struct {
	Result     *CastResult
	Combatants map[string]*character.Combatant
	Effects    *effects.Manager
	Round      int
}

// DamageApplied is spell damage after it hit a target, with any
// concentration save the damage forced.
type DamageApplied struct {
	Damage  DamageResult                `json:"damage"`
	Outcome concentration.DamageOutcome `json:"outcome"`
}

// HealingApplied is healing after the target's max HP clamp.
type HealingApplied struct {
	Healing HealingResult `json:"healing"`
	Gained  int           `json:"gained"`
	HPAfter int           `json:"hp_after"`
}

// ApplyReport lists every change in the order it was made.
type ApplyReport struct {
	Damage     []DamageApplied             `json:"damage,omitempty"`
	Healing    []HealingApplied            `json:"healing,omitempty"`
	Conditions []ConditionResult           `json:"conditions,omitempty"`
	Effects    []effects.ActiveSpellEffect `json:"effects,omitempty"`
	Summons    []effects.SummonedCreature  `json:"summons,omitempty"`

	// Concentration is the caster's new concentration, and Replaced the one
	// it ended
	Concentration *character.Concentration `json:"concentration,omitempty"`
	Replaced      *concentration.Ended     `json:"replaced,omitempty"`

	// Cleared holds effects removed because some concentration ended, and
	// Released the condition effects among them whose condition was lifted
	Cleared  effects.Expired             `json:"cleared"`
	Released []effects.ActiveSpellEffect `json:"released,omitempty"`
}

// Apply applies damage, then healing, then starts concentration, then adds
// conditions, buffs and summons. Starting concentration before the new
// effects are added keeps a recast of the same spell from clearing them.
func (a *Applier) Apply(in *ApplyInput) (*ApplyReport, error) {
	if in == nil || in.Result == nil || in.Effects == nil {
		return nil, dnderr.InvalidArgument("cast result and effects are required")
	}
	result := in.Result

	caster, ok := in.Combatants[result.CasterID]
	if !ok {
		return nil, dnderr.NotFoundf("caster %s not found", result.CasterID)
	}
	target := func(id string) (*character.Combatant, error) {
		c, ok := in.Combatants[id]
		if !ok {
			return nil, dnderr.NotFoundf("target %s not found", id)
		}
		return c, nil
	}

	report := &ApplyReport{}

	for _, damage := range result.Damage {
		t, err := target(damage.TargetID)
		if err != nil {
			return nil, err
		}
		outcome, err := a.tracker.ApplyDamage(t, damage.Total, damage.DamageType, false)
		if err != nil {
			return nil, err
		}
		if outcome.Ended != nil {
			a.clear(report, in, *outcome.Ended)
		}
		report.Damage = append(report.Damage, DamageApplied{Damage: damage, Outcome: *outcome})
	}

	for i := range result.Healing {
		healing := &result.Healing[i]
		t, err := target(healing.TargetID)
		if err != nil {
			return nil, err
		}
		gained := t.Heal(healing.Total)
		healing.Overheal = max(0, healing.Total-gained)
		report.Healing = append(report.Healing, HealingApplied{Healing: *healing, Gained: gained, HPAfter: t.HitPoints.Current})
	}

	if result.ConcentrationStarted {
		started, replaced := a.tracker.Start(caster, character.Concentration{
			SpellKey:        result.SpellKey,
			SpellName:       result.SpellName,
			StartedRound:    in.Round,
			RoundsRemaining: result.ConcentrationRounds,
		})
		report.Concentration = started
		report.Replaced = replaced
		if replaced != nil {
			a.clear(report, in, *replaced)
		}
	}

	for _, condition := range result.Conditions {
		if !condition.Applied {
			continue
		}
		t, err := target(condition.TargetID)
		if err != nil {
			return nil, err
		}
		effect := effects.ActiveSpellEffect{
			ID:              a.uuidGen.New(),
			TargetID:        t.ID,
			CasterID:        caster.ID,
			SpellKey:        result.SpellKey,
			SpellName:       result.SpellName,
			Kind:            effects.KindCondition,
			Condition:       condition.Condition,
			RoundsRemaining: condition.DurationRounds,
			IsConcentration: condition.IsConcentration,
		}
		if err := in.Effects.AddEffect(effect); err != nil {
			return nil, dnderr.Wrap(err, "failed to track condition")
		}
		t.AddCondition(shared.Condition{Type: condition.Condition, Source: result.SpellKey})
		report.Conditions = append(report.Conditions, condition)
		report.Effects = append(report.Effects, effect)
	}

	for _, buff := range result.Buffs {
		t, err := target(buff.TargetID)
		if err != nil {
			return nil, err
		}
		kind := effects.KindBuff
		if buff.Kind == magic.EffectDebuff {
			kind = effects.KindDebuff
		}
		effect := effects.ActiveSpellEffect{
			ID:              a.uuidGen.New(),
			TargetID:        t.ID,
			CasterID:        caster.ID,
			SpellKey:        result.SpellKey,
			SpellName:       result.SpellName,
			Kind:            kind,
			Description:     buff.Description,
			ACModifier:      buff.ACModifier,
			AttackModifier:  buff.AttackModifier,
			DamageModifier:  buff.DamageModifier,
			RoundsRemaining: buff.DurationRounds,
			IsConcentration: buff.IsConcentration,
		}
		if err := in.Effects.AddEffect(effect); err != nil {
			return nil, dnderr.Wrap(err, "failed to track spell effect")
		}
		report.Effects = append(report.Effects, effect)
	}

	for _, summon := range result.Summons {
		creature := effects.SummonedCreature{
			ID:              a.uuidGen.New(),
			SummonerID:      caster.ID,
			SpellKey:        result.SpellKey,
			Name:            summon.Name,
			HPCurrent:       summon.HitPoints,
			HPMax:           summon.HitPoints,
			ArmorClass:      summon.ArmorClass,
			RoundsRemaining: summon.DurationRounds,
			IsConcentration: summon.IsConcentration,
		}
		if err := in.Effects.AddSummon(creature); err != nil {
			return nil, dnderr.Wrap(err, "failed to track summon")
		}
		report.Summons = append(report.Summons, creature)
	}

	log.Printf("Spells: applied %s from %s (%d damage, %d healing, %d effects, %d summons)",
		result.SpellName, caster.Name, len(report.Damage), len(report.Healing), len(report.Effects), len(report.Summons))
	return report, nil
}

// clear drops everything bound to an ended concentration, lifting the
// conditions it held.
func (a *Applier) clear(report *ApplyReport, in *ApplyInput, ended concentration.Ended) {
	expired := in.Effects.ClearConcentration(ended.CharacterID, ended.Previous.SpellKey)
	report.Released = append(report.Released, effects.ReleaseConditions(expired.Effects, in.Combatants)...)
	report.Cleared.Effects = append(report.Cleared.Effects, expired.Effects...)
	report.Cleared.Summons = append(report.Cleared.Summons, expired.Summons...)
}
