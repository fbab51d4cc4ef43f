package events

import (
	"fmt"
	"strings"
)

// FormatFunc renders one kind of event as a chat line
type FormatFunc func(Event) string

// Formatter renders events using a lookup table built at construction.
type Formatter struct {
	table map[Kind]FormatFunc
}

// NewFormatter creates a formatter with the default table. Entries in
// overrides replace or extend it.
func NewFormatter(overrides map[Kind]FormatFunc) *Formatter {
	table := DefaultFormatTable()
	for kind, fn := range overrides {
		table[kind] = fn
	}
	return &Formatter{table: table}
}

// Format renders an event, falling back to the kind name.
func (f *Formatter) Format(e Event) string {
	if fn, ok := f.table[e.Kind]; ok {
		if msg := fn(e); msg != "" {
			return msg
		}
	}
	if e.Actor.Name != "" {
		return fmt.Sprintf("%s: %s", e.Actor.Name, e.Kind)
	}
	return string(e.Kind)
}

// Has reports whether a kind has a formatter
func (f *Formatter) Has(kind Kind) bool {
	_, ok := f.table[kind]
	return ok
}

// DefaultFormatTable returns a fresh copy of the built-in formatters.
func DefaultFormatTable() map[Kind]FormatFunc {
	return map[Kind]FormatFunc{
		KindCombatStarted: func(Event) string {
			return "Combat has begun! Roll for initiative order has been determined."
		},
		KindCombatEnded: func(Event) string {
			return "Combat has ended."
		},
		KindInitiativeRolled: payloadFormat(func(p InitiativeRolled) string {
			return fmt.Sprintf("%s's initiative roll: %d", p.Name, p.Total)
		}),
		KindInitiativeOrder: payloadFormat(func(p InitiativeOrder) string {
			return "Initiative order: " + strings.Join(p.Names, ", ")
		}),
		KindRoundEnded: payloadFormat(func(p RoundEnded) string {
			return fmt.Sprintf("Round %d has ended.", p.Round)
		}),
		KindTurnStarted: payloadFormat(func(p TurnStarted) string {
			return fmt.Sprintf("Round %d: %s's turn!", p.Round, p.Name)
		}),
		KindTurnEnded: payloadFormat(func(p TurnEnded) string {
			return fmt.Sprintf("%s's turn has ended.", p.Name)
		}),
		KindActionTaken: payloadFormat(func(p ActionTaken) string {
			if p.TargetName != "" {
				return fmt.Sprintf("%s used %s (%s) targeting %s.", p.Name, p.Action, p.ActionType, p.TargetName)
			}
			return fmt.Sprintf("%s used %s (%s).", p.Name, p.Action, p.ActionType)
		}),
		KindMoved: payloadFormat(func(p Moved) string {
			return fmt.Sprintf("%s moved %d feet (%d remaining).", p.Name, p.Feet, p.Remaining)
		}),
		KindAttackResolved: payloadFormat(formatAttack),
		KindSpellCast: payloadFormat(func(p SpellCast) string {
			if len(p.TargetNames) > 0 {
				return fmt.Sprintf("%s cast %s on %s.", p.CasterName, p.SpellName, strings.Join(p.TargetNames, ", "))
			}
			return fmt.Sprintf("%s cast %s.", p.CasterName, p.SpellName)
		}),
		KindDamageDealt: payloadFormat(func(p DamageDealt) string {
			msg := fmt.Sprintf("%s took %d %s damage from %s.", p.TargetName, p.Amount, p.DamageType, p.Source)
			if p.DamageType == "" {
				msg = fmt.Sprintf("%s took %d damage from %s.", p.TargetName, p.Amount, p.Source)
			}
			switch {
			case p.Died:
				msg += fmt.Sprintf(" %s has died!", p.TargetName)
			case p.Dropped:
				msg += fmt.Sprintf(" %s falls unconscious!", p.TargetName)
			}
			return msg
		}),
		KindHealingReceived: payloadFormat(func(p HealingReceived) string {
			return fmt.Sprintf("%s was healed for %d HP by %s.", p.TargetName, p.Amount, p.Source)
		}),
		KindConditionApplied: payloadFormat(func(p ConditionChanged) string {
			return fmt.Sprintf("%s is now %s from %s.", p.TargetName, p.Condition, p.Source)
		}),
		KindConditionRemoved: payloadFormat(func(p ConditionChanged) string {
			return fmt.Sprintf("%s is no longer %s.", p.TargetName, p.Condition)
		}),
		KindSavingThrow: payloadFormat(func(p SavingThrow) string {
			outcome := "failed"
			if p.Success {
				outcome = "succeeded"
			}
			return fmt.Sprintf("%s %s a %s save (DC %d) against %s with a %d.", p.TargetName, outcome, p.SaveType, p.DC, p.Source, p.Total)
		}),
		KindDeathSave: payloadFormat(formatDeathSave),
		KindConcentrationStarted: payloadFormat(func(p ConcentrationStarted) string {
			return fmt.Sprintf("%s is now concentrating on %s.", p.Name, p.SpellName)
		}),
		KindConcentrationBroken: payloadFormat(func(p ConcentrationBroken) string {
			return fmt.Sprintf("%s lost concentration on %s: %s", p.Name, p.SpellName, p.Reason)
		}),
		KindConcentrationSaveRequired: payloadFormat(func(p ConcentrationSaveRequired) string {
			return fmt.Sprintf("%s must make a DC %d Constitution save to maintain concentration on %s!", p.Name, p.DC, p.SpellName)
		}),
		KindConcentrationSaveResult: payloadFormat(func(p ConcentrationSaveResult) string {
			outcome := "lost"
			if p.Success {
				outcome = "maintained"
			}
			return fmt.Sprintf("%s rolled %d + %d = %d vs DC %d and %s concentration on %s!", p.Name, p.Roll, p.Modifier, p.Total, p.DC, outcome, p.SpellName)
		}),
		KindEffectExpired: payloadFormat(func(p EffectExpired) string {
			return fmt.Sprintf("%s on %s has ended.", p.SpellName, p.TargetName)
		}),
		KindSummonCreated: payloadFormat(func(p SummonChanged) string {
			return fmt.Sprintf("%s summoned %s.", p.SummonerName, p.Name)
		}),
		KindSummonDismissed: payloadFormat(func(p SummonChanged) string {
			return fmt.Sprintf("%s's %s vanishes.", p.SummonerName, p.Name)
		}),
	}
}

// payloadFormat adapts a typed formatter, accepting the payload by value or
// pointer. A mismatched payload renders as "".
func payloadFormat[T any](fn func(T) string) FormatFunc {
	return func(e Event) string {
		switch p := e.Payload.(type) {
		case T:
			return fn(p)
		case *T:
			if p != nil {
				return fn(*p)
			}
		}
		return ""
	}
}

func formatAttack(p AttackResolved) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s attacks %s with %s: rolled %d", p.AttackerName, p.TargetName, p.WeaponName, p.AttackRoll)
	if p.DiscardedRoll > 0 {
		fmt.Fprintf(&b, " (%s, dropped %d)", p.Mode, p.DiscardedRoll)
	}
	fmt.Fprintf(&b, " vs AC %d", p.TargetAC)

	switch {
	case p.CriticalHit:
		fmt.Fprintf(&b, ". Critical hit for %d damage!", p.Damage)
	case p.CriticalMiss:
		b.WriteString(". Critical miss!")
	case p.Hit:
		fmt.Fprintf(&b, ". Hit for %d damage.", p.Damage)
	default:
		b.WriteString(". Miss.")
	}

	if p.Mastery != "" {
		b.WriteString(" " + p.Mastery)
	}
	return b.String()
}

func formatDeathSave(p DeathSave) string {
	switch {
	case p.Regained:
		return fmt.Sprintf("%s rolled a natural 20 on a death save and regains 1 HP!", p.Name)
	case p.Died:
		return fmt.Sprintf("%s rolled a %d on a death save and has died.", p.Name, p.Roll)
	case p.Stabilized:
		return fmt.Sprintf("%s rolled a %d on a death save and is now stable.", p.Name, p.Roll)
	case p.Success:
		return fmt.Sprintf("%s rolled a %d on a death save: success (%d/3).", p.Name, p.Roll, p.Successes)
	default:
		return fmt.Sprintf("%s rolled a %d on a death save: failure (%d/3).", p.Name, p.Roll, p.Failures)
	}
}
