package events_test

import (
	"testing"

	"github.com/KirkDiggler/dnd-combat-engine/internal/events"
	"github.com/stretchr/testify/assert"
)

func TestFormatter_DefaultTable(t *testing.T) {
	formatter := events.NewFormatter(nil)

	tests := []struct {
		name    string
		kind    events.Kind
		payload any
		want    string
	}{
		{name: "turn started", kind: events.KindTurnStarted, payload: events.TurnStarted{Round: 2, Name: "Aria"}, want: "Round 2: Aria's turn!"},
		{name: "turn ended", kind: events.KindTurnEnded, payload: events.TurnEnded{Name: "Aria"}, want: "Aria's turn has ended."},
		{name: "round ended", kind: events.KindRoundEnded, payload: events.RoundEnded{Round: 1}, want: "Round 1 has ended."},
		{name: "combat ended", kind: events.KindCombatEnded, want: "Combat has ended."},
		{name: "combat started", kind: events.KindCombatStarted, want: "Combat has begun! Roll for initiative order has been determined."},
		{name: "initiative roll", kind: events.KindInitiativeRolled, payload: events.InitiativeRolled{Name: "Aria", Total: 17}, want: "Aria's initiative roll: 17"},
		{name: "initiative order", kind: events.KindInitiativeOrder, payload: events.InitiativeOrder{Names: []string{"Aria", "Goblin"}}, want: "Initiative order: Aria, Goblin"},
		{
			name:    "action with target",
			kind:    events.KindActionTaken,
			payload: events.ActionTaken{Name: "Aria", Action: "attack", ActionType: "action", TargetName: "Goblin"},
			want:    "Aria used attack (action) targeting Goblin.",
		},
		{name: "spell without targets", kind: events.KindSpellCast, payload: events.SpellCast{CasterName: "Mira", SpellName: "Shield"}, want: "Mira cast Shield."},
		{
			name:    "spell with targets",
			kind:    events.KindSpellCast,
			payload: &events.SpellCast{CasterName: "Mira", SpellName: "Fireball", TargetNames: []string{"Goblin", "Orc"}},
			want:    "Mira cast Fireball on Goblin, Orc.",
		},
		{
			name:    "damage",
			kind:    events.KindDamageDealt,
			payload: events.DamageDealt{TargetName: "Goblin", Amount: 12, DamageType: "fire", Source: "Fireball"},
			want:    "Goblin took 12 fire damage from Fireball.",
		},
		{name: "healing", kind: events.KindHealingReceived, payload: events.HealingReceived{TargetName: "Aria", Amount: 9, Source: "Cure Wounds"}, want: "Aria was healed for 9 HP by Cure Wounds."},
		{
			name:    "condition",
			kind:    events.KindConditionApplied,
			payload: events.ConditionChanged{TargetName: "Orc", Condition: "paralyzed", Source: "Hold Person"},
			want:    "Orc is now paralyzed from Hold Person.",
		},
		{
			name:    "saving throw",
			kind:    events.KindSavingThrow,
			payload: events.SavingThrow{TargetName: "Orc", SaveType: "WIS", DC: 13, Total: 15, Success: true, Source: "Hold Person"},
			want:    "Orc succeeded a WIS save (DC 13) against Hold Person with a 15.",
		},
		{
			name:    "concentration save required",
			kind:    events.KindConcentrationSaveRequired,
			payload: events.ConcentrationSaveRequired{Name: "Tomas", DC: 10, SpellName: "Bless"},
			want:    "Tomas must make a DC 10 Constitution save to maintain concentration on Bless!",
		},
		{
			name:    "concentration save result",
			kind:    events.KindConcentrationSaveResult,
			payload: events.ConcentrationSaveResult{Name: "Tomas", Roll: 7, Modifier: 2, Total: 9, DC: 10, SpellName: "Bless"},
			want:    "Tomas rolled 7 + 2 = 9 vs DC 10 and lost concentration on Bless!",
		},
		{
			name:    "concentration broken",
			kind:    events.KindConcentrationBroken,
			payload: events.ConcentrationBroken{Name: "Tomas", SpellName: "Bless", Reason: "duration expired"},
			want:    "Tomas lost concentration on Bless: duration expired",
		},
		{name: "concentration started", kind: events.KindConcentrationStarted, payload: events.ConcentrationStarted{Name: "Tomas", SpellName: "Bless"}, want: "Tomas is now concentrating on Bless."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatter.Format(events.New(tt.kind, events.Actor{}, tt.payload))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatter_AttackLine(t *testing.T) {
	formatter := events.NewFormatter(nil)

	got := formatter.Format(events.New(events.KindAttackResolved, events.Actor{Name: "Aria"}, events.AttackResolved{
		AttackerName: "Aria", TargetName: "Goblin", WeaponName: "Longsword",
		Mode: "advantage", NaturalRoll: 17, DiscardedRoll: 4, AttackRoll: 22, TargetAC: 15, Hit: true, Damage: 9,
	}))

	assert.Equal(t, "Aria attacks Goblin with Longsword: rolled 22 (advantage, dropped 4) vs AC 15. Hit for 9 damage.", got)
}

func TestFormatter_OverridesAndFallback(t *testing.T) {
	formatter := events.NewFormatter(map[events.Kind]events.FormatFunc{
		events.KindCombatEnded: func(events.Event) string { return "The dust settles." },
	})

	assert.Equal(t, "The dust settles.", formatter.Format(events.New(events.KindCombatEnded, events.Actor{}, nil)))
	assert.Equal(t, "Aria: custom_kind", formatter.Format(events.New("custom_kind", events.Actor{Name: "Aria"}, nil)))
	// wrong payload type falls back instead of panicking
	assert.Equal(t, "turn_started", formatter.Format(events.New(events.KindTurnStarted, events.Actor{}, 42)))
}

func TestDefaultFormatTable_IsACopy(t *testing.T) {
	table := events.DefaultFormatTable()
	delete(table, events.KindTurnStarted)

	assert.True(t, events.NewFormatter(nil).Has(events.KindTurnStarted))
}
