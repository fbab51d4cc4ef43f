package testutils

import (
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
)

// CreateTestFighter creates a level 3 fighter proficient with martial weapons
func CreateTestFighter(id, name string) *character.Combatant {
	return &character.Combatant{
		ID:               id,
		Name:             name,
		Kind:             character.KindCharacter,
		Level:            3,
		ProficiencyBonus: 2,
		ArmorClass:       16,
		Speed:            30,
		HitPoints:        character.HitPoints{Current: 28, Max: 28},
		Abilities: map[shared.Attribute]int{
			shared.AttributeStrength:     16,
			shared.AttributeDexterity:    14,
			shared.AttributeConstitution: 14,
			shared.AttributeWisdom:       10,
		},
		WeaponProficiencies: []string{"simple", "martial"},
		SaveProficiencies:   []shared.Attribute{shared.AttributeStrength, shared.AttributeConstitution},
	}
}

// CreateTestCleric creates a level 3 cleric with healing and control spells
// prepared
func CreateTestCleric(id, name string) *character.Combatant {
	return &character.Combatant{
		ID:               id,
		Name:             name,
		Kind:             character.KindCharacter,
		Level:            3,
		ProficiencyBonus: 2,
		ArmorClass:       18,
		Speed:            30,
		HitPoints:        character.HitPoints{Current: 24, Max: 24},
		Abilities: map[shared.Attribute]int{
			shared.AttributeStrength:     12,
			shared.AttributeDexterity:    10,
			shared.AttributeConstitution: 14,
			shared.AttributeWisdom:       16,
		},
		WeaponProficiencies: []string{"simple"},
		SaveProficiencies:   []shared.Attribute{shared.AttributeWisdom, shared.AttributeCharisma},
		Spellcasting: &character.Spellcasting{
			Ability:    character.SpellcastingWisdom,
			CasterType: character.CasterPrepared,
			Spells:     []string{"sacred-flame", "cure-wounds", "bless", "shield-of-faith", "hold-person"},
			Slots:      character.NewSpellSlots(map[int]int{1: 4, 2: 2}),
		},
	}
}

// CreateTestWizard creates a level 5 wizard who knows fireball
func CreateTestWizard(id, name string) *character.Combatant {
	return &character.Combatant{
		ID:               id,
		Name:             name,
		Kind:             character.KindCharacter,
		Level:            5,
		ProficiencyBonus: 3,
		ArmorClass:       12,
		Speed:            30,
		HitPoints:        character.HitPoints{Current: 27, Max: 27},
		Abilities: map[shared.Attribute]int{
			shared.AttributeDexterity:    14,
			shared.AttributeConstitution: 14,
			shared.AttributeIntelligence: 16,
		},
		WeaponProficiencies: []string{"dagger", "quarterstaff"},
		SaveProficiencies:   []shared.Attribute{shared.AttributeIntelligence, shared.AttributeWisdom},
		Spellcasting: &character.Spellcasting{
			Ability:    character.SpellcastingIntelligence,
			CasterType: character.CasterPrepared,
			Spells:     []string{"fire-bolt", "magic-missile", "fireball", "flaming-sphere"},
			Slots:      character.NewSpellSlots(map[int]int{1: 4, 2: 3, 3: 2}),
		},
	}
}

// CreateTestGoblin creates a goblin monster
func CreateTestGoblin(id, name string) *character.Combatant {
	return &character.Combatant{
		ID:               id,
		Name:             name,
		Kind:             character.KindMonster,
		Level:            1,
		ProficiencyBonus: 2,
		ArmorClass:       15,
		Speed:            30,
		HitPoints:        character.HitPoints{Current: 7, Max: 7},
		Abilities: map[shared.Attribute]int{
			shared.AttributeStrength:  8,
			shared.AttributeDexterity: 14,
			shared.AttributeWisdom:    8,
		},
		WeaponProficiencies: []string{"simple", "martial"},
	}
}
