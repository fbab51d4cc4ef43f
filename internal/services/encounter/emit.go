package encounter

import (
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/game/combat/attack"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/rulebook/dnd5e/concentration"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/rulebook/dnd5e/spells"
	"github.com/KirkDiggler/dnd-combat-engine/internal/effects"
	"github.com/KirkDiggler/dnd-combat-engine/internal/events"
	"github.com/KirkDiggler/dnd-combat-engine/internal/repositories/encounters"
)

// emitter collects the events of one call in causal order and marks the
// encounter as changed.
type emitter struct {
	enc    *encounters.Encounter
	events []events.Event
	dirty  bool
}

func newEmitter(enc *encounters.Encounter) *emitter {
	return &emitter{enc: enc}
}

// touch marks a change that produced no event
func (e *emitter) touch() {
	e.dirty = true
}

func (e *emitter) add(evs ...events.Event) {
	e.dirty = true
	e.events = append(e.events, evs...)
}

// name resolves a combatant or summon ID for display
func (e *emitter) name(id string) string {
	if c, ok := e.enc.Combatants[id]; ok {
		return c.Name
	}
	if s, ok := e.enc.Combat.Effects.Summon(id); ok {
		return s.Name
	}
	return id
}

func (e *emitter) actor(id string) events.Actor {
	return events.Actor{ID: id, Name: e.name(id)}
}

func (e *emitter) attack(result *attack.Result) {
	payload := events.AttackResolved{
		AttackerName:  e.name(result.AttackerID),
		TargetName:    e.name(result.TargetID),
		WeaponName:    result.WeaponName,
		Mode:          result.Mode.String(),
		NaturalRoll:   result.NaturalRoll,
		DiscardedRoll: result.DiscardedRoll,
		AttackRoll:    result.AttackRoll,
		TargetAC:      result.TargetAC,
		Hit:           result.Hit,
		CriticalHit:   result.CriticalHit,
		CriticalMiss:  result.CriticalMiss,
		Damage:        result.Damage,
		DamageType:    string(result.DamageType),
	}
	if result.Mastery.Triggered {
		payload.Mastery = result.Mastery.Description
	}
	e.add(events.New(events.KindAttackResolved, e.actor(result.AttackerID), payload))
}

// damage records damage landing on a combatant, followed by whatever it did
// to the target's concentration.
func (e *emitter) damage(sourceID, targetID, source string, outcome *concentration.DamageOutcome) {
	report := outcome.Report
	e.add(events.New(events.KindDamageDealt, e.actor(sourceID), events.DamageDealt{
		TargetID:   targetID,
		TargetName: e.name(targetID),
		Amount:     report.Amount,
		DamageType: string(report.DamageType),
		Source:     source,
		HPAfter:    report.HPAfter,
		Dropped:    report.DroppedToZero,
		Died:       report.Died,
	}))

	if save := outcome.Save; save != nil {
		e.add(events.New(events.KindConcentrationSaveRequired, e.actor(targetID), events.ConcentrationSaveRequired{
			Name: e.name(targetID), SpellName: save.SpellName, DC: save.DC,
		}))
		e.add(events.New(events.KindConcentrationSaveResult, e.actor(targetID), events.ConcentrationSaveResult{
			Name: e.name(targetID), SpellName: save.SpellName,
			Roll: save.Roll, Modifier: save.Modifier, Total: save.Total, DC: save.DC, Success: save.Success,
		}))
	}
	if outcome.Ended != nil {
		e.concentrationBroken(*outcome.Ended)
	}
}

func (e *emitter) summonDamage(sourceID string, summon *effects.SummonedCreature, amount int, source string) {
	e.add(events.New(events.KindDamageDealt, e.actor(sourceID), events.DamageDealt{
		TargetID:   summon.ID,
		TargetName: summon.Name,
		Amount:     amount,
		Source:     source,
		HPAfter:    summon.HPCurrent,
		Died:       !summon.IsAlive(),
	}))
}

func (e *emitter) concentrationBroken(ended concentration.Ended) {
	e.add(events.New(events.KindConcentrationBroken, e.actor(ended.CharacterID), events.ConcentrationBroken{
		Name: e.name(ended.CharacterID), SpellName: ended.Previous.SpellName, Reason: ended.Reason,
	}))
}

func (e *emitter) savingThrow(save spells.SaveResult, source string) {
	e.add(events.New(events.KindSavingThrow, e.actor(save.TargetID), events.SavingThrow{
		TargetName: e.name(save.TargetID),
		SaveType:   string(save.SaveType),
		DC:         save.DC,
		Roll:       save.Roll,
		Total:      save.Total,
		Success:    save.Success,
		Source:     source,
	}))
}

func (e *emitter) conditionApplied(targetID, condition, source string) {
	e.add(events.New(events.KindConditionApplied, e.actor(targetID), events.ConditionChanged{
		TargetID: targetID, TargetName: e.name(targetID), Condition: condition, Source: source,
	}))
}

// cleared reports lasting effects that ended. released lists the condition
// effects whose condition was actually lifted from the target.
func (e *emitter) cleared(expired effects.Expired, released []effects.ActiveSpellEffect) {
	for _, effect := range expired.Effects {
		e.add(events.New(events.KindEffectExpired, e.actor(effect.CasterID), events.EffectExpired{
			TargetName: e.name(effect.TargetID), SpellName: effect.SpellName,
		}))
	}
	for _, effect := range released {
		e.add(events.New(events.KindConditionRemoved, e.actor(effect.TargetID), events.ConditionChanged{
			TargetID: effect.TargetID, TargetName: e.name(effect.TargetID),
			Condition: string(effect.Condition), Source: effect.SpellName,
		}))
	}
	for _, summon := range expired.Summons {
		e.summonDismissed(summon)
	}
}

func (e *emitter) summonDismissed(summon effects.SummonedCreature) {
	e.add(events.New(events.KindSummonDismissed, e.actor(summon.SummonerID), events.SummonChanged{
		SummonerName: e.name(summon.SummonerID), Name: summon.Name, SpellName: summon.SpellKey,
	}))
}

// spell reports a cast in causal order: the cast, the saves, then each
// change the applier made.
func (e *emitter) spell(result *spells.CastResult, report *spells.ApplyReport) {
	targetNames := make([]string, len(result.TargetIDs))
	for i, id := range result.TargetIDs {
		targetNames[i] = e.name(id)
	}
	e.add(events.New(events.KindSpellCast, e.actor(result.CasterID), events.SpellCast{
		CasterName: e.name(result.CasterID), SpellName: result.SpellName,
		SlotLevel: result.SlotLevel, TargetNames: targetNames,
	}))

	for _, save := range result.Saves {
		e.savingThrow(save, result.SpellName)
	}

	for i := range report.Damage {
		applied := &report.Damage[i]
		e.damage(result.CasterID, applied.Damage.TargetID, result.SpellName, &applied.Outcome)
	}

	for _, healing := range report.Healing {
		e.add(events.New(events.KindHealingReceived, e.actor(result.CasterID), events.HealingReceived{
			TargetID:   healing.Healing.TargetID,
			TargetName: e.name(healing.Healing.TargetID),
			Amount:     healing.Gained,
			Overheal:   healing.Healing.Overheal,
			Source:     result.SpellName,
			HPAfter:    healing.HPAfter,
		}))
	}

	if report.Replaced != nil {
		e.concentrationBroken(*report.Replaced)
	}
	if report.Concentration != nil {
		e.add(events.New(events.KindConcentrationStarted, e.actor(result.CasterID), events.ConcentrationStarted{
			Name: e.name(result.CasterID), SpellName: report.Concentration.SpellName,
		}))
	}

	for _, condition := range report.Conditions {
		e.conditionApplied(condition.TargetID, string(condition.Condition), result.SpellName)
	}

	for _, summon := range report.Summons {
		e.add(events.New(events.KindSummonCreated, e.actor(result.CasterID), events.SummonChanged{
			SummonerName: e.name(result.CasterID), Name: summon.Name, SpellName: result.SpellName,
		}))
	}

	e.cleared(report.Cleared, report.Released)
}
