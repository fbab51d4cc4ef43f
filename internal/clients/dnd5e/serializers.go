package dnd5e

import (
	"log"
	"strings"

	"github.com/KirkDiggler/dnd-combat-engine/internal/dice"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/equipment"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
	apiEntities "github.com/fadedpez/dnd5e-api/entities"
)

var knownProperties = map[string]equipment.Property{
	"ammunition": equipment.PropertyAmmunition,
	"finesse":    equipment.PropertyFinesse,
	"heavy":      equipment.PropertyHeavy,
	"light":      equipment.PropertyLight,
	"loading":    equipment.PropertyLoading,
	"reach":      equipment.PropertyReach,
	"thrown":     equipment.PropertyThrown,
	"two-handed": equipment.PropertyTwoHanded,
	"versatile":  equipment.PropertyVersatile,
}

// apiWeaponToWeapon converts an API weapon. The API predates weapon
// mastery, so Mastery is left unset.
func apiWeaponToWeapon(input *apiEntities.Weapon) *equipment.Weapon {
	weapon := &equipment.Weapon{
		Key:      input.Key,
		Name:     input.Name,
		Category: equipment.Category(strings.ToLower(input.WeaponCategory)),
		Range:    equipment.RangeMelee,
	}
	if strings.EqualFold(input.WeaponRange, "ranged") {
		weapon.Range = equipment.RangeRanged
	}

	for _, prop := range input.Properties {
		if prop == nil {
			continue
		}
		if known, ok := knownProperties[prop.Key]; ok {
			weapon.Properties = append(weapon.Properties, known)
		}
	}

	if input.Damage != nil {
		weapon.DamageDice = normalizeDice(input.Damage.DamageDice)
		weapon.DamageType = apiDamageTypeToDamageType(input.Damage.DamageType)
	}
	return weapon
}

// normalizeDice returns the expression in canonical form, or "" when it
// does not parse
func normalizeDice(input string) string {
	if input == "" {
		return ""
	}
	expr, err := dice.ParseExpression(input)
	if err != nil {
		log.Printf("Catalog: unknown dice format %s", input)
		return ""
	}
	return expr.String()
}

func apiDamageTypeToDamageType(input *apiEntities.ReferenceItem) shared.DamageType {
	if input == nil {
		return shared.DamageTypeNone
	}

	switch damageType := shared.DamageType(strings.ToLower(input.Key)); damageType {
	case shared.DamageTypeAcid, shared.DamageTypeBludgeoning, shared.DamageTypeCold,
		shared.DamageTypeFire, shared.DamageTypeForce, shared.DamageTypeLightning,
		shared.DamageTypeNecrotic, shared.DamageTypePiercing, shared.DamageTypePoison,
		shared.DamageTypePsychic, shared.DamageTypeRadiant, shared.DamageTypeSlashing,
		shared.DamageTypeThunder:
		return damageType
	default:
		return shared.DamageTypeNone
	}
}
