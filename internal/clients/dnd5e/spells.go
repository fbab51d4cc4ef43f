package dnd5e

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/dnd-combat-engine/internal/dice"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/magic"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	apiDnd5e "github.com/fadedpez/dnd5e-api/clients/dnd5e"
	"github.com/fadedpez/dnd5e-api/entities"
)

// GetSpell retrieves a spell by key
func (c *client) GetSpell(key string) (*magic.Spell, error) {
	if key == "" {
		return nil, dnderr.InvalidArgument("spell key is required")
	}

	apiSpell, err := c.client.GetSpell(key)
	if err != nil {
		return nil, dnderr.Unavailable(err, "failed to get spell "+key)
	}
	if apiSpell == nil {
		return nil, dnderr.NotFoundf("spell %s not found", key)
	}

	return convertSpell(apiSpell), nil
}

// ListSpellKeys lists spells a class can cast at a spell level
func (c *client) ListSpellKeys(classKey string, level int) ([]string, error) {
	refs, err := c.client.ListSpells(&apiDnd5e.ListSpellsInput{
		Class: classKey,
		Level: &level,
	})
	if err != nil {
		return nil, dnderr.Unavailable(err, fmt.Sprintf("failed to list level %d spells for class %s", level, classKey))
	}

	keys := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref != nil && ref.Key != "" {
			keys = append(keys, ref.Key)
		}
	}
	return keys, nil
}

// convertSpell builds a spell with one template per mechanical effect the
// API describes. Spells without damage get a utility template.
func convertSpell(apiSpell *entities.Spell) *magic.Spell {
	spell := &magic.Spell{
		Key:           apiSpell.Key,
		Name:          apiSpell.Name,
		Level:         apiSpell.SpellLevel,
		Concentration: apiSpell.Concentration,
	}
	if apiSpell.SpellSchool != nil {
		spell.School = strings.ToLower(apiSpell.SpellSchool.Name)
	}
	if spell.Concentration {
		spell.ConcentrationRounds = durationRounds(apiSpell.Duration)
	}

	template := magic.EffectTemplate{
		Kind:         magic.EffectUtility,
		Target:       targetShape(apiSpell),
		DurationKind: magic.DurationInstantaneous,
	}
	if spell.Concentration {
		template.DurationKind = magic.DurationConcentration
	}
	if apiSpell.AreaOfEffect != nil {
		template.AreaShape = apiSpell.AreaOfEffect.Type
		template.AreaRadius = apiSpell.AreaOfEffect.Size
	}
	if apiSpell.DC != nil {
		template.SaveType, template.SaveConsequence = convertSpellDC(apiSpell.DC)
	}

	if damage := apiSpell.SpellDamage; damage != nil && damage.SpellDamageAtSlotLevel != nil {
		atLevel := damageAtLevel(damage)
		if base := atLevel[spell.Level]; base != "" {
			template.Kind = magic.EffectDamage
			template.BaseDice = normalizeDice(base)
			template.DicePerLevel = perLevelDice(base, atLevel[spell.Level+1])
			template.DamageType = apiDamageTypeToDamageType(damage.SpellDamageType)
		}
	}

	spell.Templates = []magic.EffectTemplate{template}
	return spell
}

func damageAtLevel(apiDamage *entities.SpellDamage) map[int]string {
	slots := apiDamage.SpellDamageAtSlotLevel
	return map[int]string{
		1: slots.FirstLevel,
		2: slots.SecondLevel,
		3: slots.ThirdLevel,
		4: slots.FourthLevel,
		5: slots.FifthLevel,
		6: slots.SixthLevel,
		7: slots.SeventhLevel,
		8: slots.EighthLevel,
		9: slots.NinthLevel,
	}
}

// perLevelDice infers the upcast dice from the damage at two consecutive
// slot levels, "8d6" and "9d6" giving "1d6".
func perLevelDice(base, next string) string {
	if base == "" || next == "" {
		return ""
	}
	from, err := dice.ParseExpression(base)
	if err != nil {
		return ""
	}
	to, err := dice.ParseExpression(next)
	if err != nil || to.Sides != from.Sides || to.Count <= from.Count {
		return ""
	}
	return fmt.Sprintf("%dd%d", to.Count-from.Count, from.Sides)
}

// convertSpellDC maps the API save to an ability and a consequence
func convertSpellDC(apiDC *entities.DC) (shared.Attribute, magic.SaveConsequence) {
	var attr shared.Attribute
	if apiDC.DCType != nil {
		attr, _ = shared.ParseAttribute(apiDC.DCType.Name)
	}

	switch strings.ToLower(apiDC.DCSuccess) {
	case "half":
		return attr, magic.SaveHalf
	case "none":
		return attr, magic.SaveNegate
	default:
		return attr, magic.SaveNone
	}
}

func targetShape(spell *entities.Spell) magic.TargetShape {
	switch {
	case spell.AreaOfEffect != nil:
		return magic.TargetArea
	case strings.EqualFold(spell.Range, "self"):
		return magic.TargetSelf
	default:
		return magic.TargetSingle
	}
}

var durationPattern = regexp.MustCompile(`(\d+)\s*(round|minute|hour)`)

// durationRounds converts "Concentration, up to 1 minute" style text to
// rounds of six seconds. Unparseable text gives 0.
func durationRounds(duration string) int {
	m := durationPattern.FindStringSubmatch(strings.ToLower(duration))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	switch m[2] {
	case "round":
		return n
	case "minute":
		return n * 10
	default:
		return n * 600
	}
}
