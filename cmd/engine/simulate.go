package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
	"github.com/KirkDiggler/dnd-combat-engine/internal/events"
	"github.com/KirkDiggler/dnd-combat-engine/internal/repositories/encounters"
	"github.com/KirkDiggler/dnd-combat-engine/internal/services/encounter"
)

var (
	simulateGameID string
	maxRounds      int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scripted skirmish and print the combat log",
	Long:  `Runs a fighter and a cleric against two goblins through the encounter service with real dice, printing every event as it is broadcast.`,
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&simulateGameID, "game", "simulation", "game ID to run the encounter under")
	simulateCmd.Flags().IntVar(&maxRounds, "rounds", 10, "stop after this many rounds")
}

// weapons each side attacks with
var loadout = map[string]string{
	"aria": "longsword",
	"mira": "mace",
	"gob1": "scimitar",
	"gob2": "scimitar",
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	eng, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer eng.Close()
	eng.bus.Subscribe(events.AllKinds, &events.ListenerFunc{
		ListenerID: "console",
		Order:      events.PriorityLog,
		Fn: func(e events.Event) error {
			cmd.Println(e.Message)
			return nil
		},
	})
	svc := eng.service

	created, err := svc.CreateCombat(ctx, &encounter.CreateCombatInput{GameID: simulateGameID})
	if err := check(created, err); err != nil {
		return err
	}
	combatID := created.Encounter.ID()

	out, err := svc.AddFighters(ctx, &encounter.AddFightersInput{CombatID: combatID, Combatants: roster()})
	if err := check(out, err); err != nil {
		return err
	}
	out, err = svc.BeginInitiative(ctx, combatID)
	if err := check(out, err); err != nil {
		return err
	}
	for _, id := range []string{"aria", "mira", "gob1", "gob2"} {
		out, err = svc.RollInitiative(ctx, combatID, id)
		if err := check(out, err); err != nil {
			return err
		}
	}

	enc := out.Encounter
	for enc.Combat.Round <= maxRounds && !sideDown(enc, character.KindMonster) && !sideDown(enc, character.KindCharacter) {
		if err := takeTurn(ctx, svc, enc); err != nil {
			return err
		}
		out, err = svc.AdvanceTurn(ctx, combatID)
		if err := check(out, err); err != nil {
			return err
		}
		enc = out.Encounter
	}

	out, err = svc.EndCombat(ctx, combatID)
	if err := check(out, err); err != nil {
		return err
	}
	for _, c := range out.Encounter.Combatants {
		cmd.Printf("%s: %d/%d HP\n", c.Name, c.HitPoints.Current, c.HitPoints.Max)
	}
	return nil
}

// takeTurn plays the current fighter: downed characters roll death saves,
// the cleric opens with bless, everyone else swings at the first standing
// enemy.
func takeTurn(ctx context.Context, svc encounter.Service, enc *encounters.Encounter) error {
	current, ok := enc.Combat.CurrentFighter()
	if !ok {
		return nil
	}
	me := enc.Combatants[current.ID]
	combatID := enc.ID()

	if me.HitPoints.Current == 0 {
		if me.Kind == character.KindCharacter && me.IsAlive() && !me.DeathSaves.Stable {
			out, err := svc.RollDeathSave(ctx, combatID, me.ID)
			return check(out, err)
		}
		return nil
	}

	if me.ID == "mira" && me.Concentration == nil && enc.Combat.Round == 1 {
		out, err := svc.CastSpell(ctx, &encounter.CastSpellInput{
			CombatID: combatID, CasterID: me.ID, SpellKey: "bless", TargetIDs: []string{"aria", "mira"},
		})
		return check(out, err)
	}

	enemy := character.KindMonster
	if me.Kind == character.KindMonster {
		enemy = character.KindCharacter
	}
	for _, f := range enc.Combat.Fighters {
		target := enc.Combatants[f.ID]
		if target.Kind != enemy || target.HitPoints.Current == 0 {
			continue
		}
		out, err := svc.Attack(ctx, &encounter.AttackInput{
			CombatID:   combatID,
			AttackerID: me.ID,
			TargetID:   target.ID,
			WeaponKey:  loadout[me.ID],
			UseMastery: me.Kind == character.KindCharacter,
		})
		return check(out, err)
	}
	return nil
}

func sideDown(enc *encounters.Encounter, kind character.Kind) bool {
	for _, c := range enc.Combatants {
		if c.Kind == kind && c.HitPoints.Current > 0 {
			return false
		}
	}
	return true
}

// check turns a rejection into an error, since the script should never
// make an illegal move
func check(out *encounter.Outcome, err error) error {
	if err != nil {
		return err
	}
	if out.Rejected() {
		log.Printf("Simulate: rejected: %s", out.Rejection.Reason)
		return fmt.Errorf("%s: %s", out.Rejection.Code, out.Rejection.Reason)
	}
	return nil
}

func roster() []*character.Combatant {
	goblin := func(id, name string) *character.Combatant {
		return &character.Combatant{
			ID: id, Name: name, Kind: character.KindMonster, Level: 1,
			ProficiencyBonus: 2, ArmorClass: 15, Speed: 30,
			HitPoints: character.HitPoints{Current: 7, Max: 7},
			Abilities: map[shared.Attribute]int{
				shared.AttributeStrength: 8, shared.AttributeDexterity: 14, shared.AttributeWisdom: 8,
			},
			WeaponProficiencies: []string{"simple", "martial"},
		}
	}

	return []*character.Combatant{
		{
			ID: "aria", Name: "Aria", Kind: character.KindCharacter, Level: 3,
			ProficiencyBonus: 2, ArmorClass: 16, Speed: 30,
			HitPoints: character.HitPoints{Current: 28, Max: 28},
			Abilities: map[shared.Attribute]int{
				shared.AttributeStrength: 16, shared.AttributeDexterity: 14, shared.AttributeConstitution: 14,
			},
			WeaponProficiencies: []string{"simple", "martial"},
			SaveProficiencies:   []shared.Attribute{shared.AttributeStrength, shared.AttributeConstitution},
		},
		{
			ID: "mira", Name: "Mira", Kind: character.KindCharacter, Level: 3,
			ProficiencyBonus: 2, ArmorClass: 18, Speed: 30,
			HitPoints: character.HitPoints{Current: 24, Max: 24},
			Abilities: map[shared.Attribute]int{
				shared.AttributeStrength: 12, shared.AttributeConstitution: 14, shared.AttributeWisdom: 16,
			},
			WeaponProficiencies: []string{"simple"},
			SaveProficiencies:   []shared.Attribute{shared.AttributeWisdom, shared.AttributeCharisma},
			Spellcasting: &character.Spellcasting{
				Ability:    character.SpellcastingWisdom,
				CasterType: character.CasterPrepared,
				Spells:     []string{"bless", "cure-wounds", "sacred-flame"},
				Slots:      character.NewSpellSlots(map[int]int{1: 4, 2: 2}),
			},
		},
		goblin("gob1", "Goblin Scout"),
		goblin("gob2", "Goblin Boss"),
	}
}
