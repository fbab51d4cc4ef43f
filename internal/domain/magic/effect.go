package magic

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
)

// EffectKind is the closed set of things a spell effect template can do.
type EffectKind int

const (
	EffectDamage EffectKind = iota
	EffectHealing
	EffectCondition
	EffectBuff
	EffectDebuff
	EffectSummon
	EffectUtility

	// EffectKindCount must stay last. Resolvers pin it at compile time.
	EffectKindCount
)

var effectKindNames = [EffectKindCount]string{
	EffectDamage:    "damage",
	EffectHealing:   "healing",
	EffectCondition: "condition",
	EffectBuff:      "buff",
	EffectDebuff:    "debuff",
	EffectSummon:    "summon",
	EffectUtility:   "utility",
}

func (k EffectKind) String() string {
	if k < 0 || k >= EffectKindCount {
		return fmt.Sprintf("EffectKind(%d)", int(k))
	}
	return effectKindNames[k]
}

func (k EffectKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *EffectKind) UnmarshalText(text []byte) error {
	needle := strings.ToLower(strings.TrimSpace(string(text)))
	for kind, name := range effectKindNames {
		if name == needle {
			*k = EffectKind(kind)
			return nil
		}
	}
	return fmt.Errorf("unknown spell effect kind %q", text)
}

// SaveConsequence is what a successful save does to the effect.
type SaveConsequence string

const (
	SaveNone   SaveConsequence = ""
	SaveHalf   SaveConsequence = "half_damage"
	SaveNegate SaveConsequence = "negates"
)

// DurationKind is how an effect's duration is measured.
type DurationKind string

const (
	DurationInstantaneous  DurationKind = "instantaneous"
	DurationRounds         DurationKind = "rounds"
	DurationMinutes        DurationKind = "minutes"
	DurationHours          DurationKind = "hours"
	DurationConcentration  DurationKind = "concentration"
	DurationUntilDispelled DurationKind = "until_dispelled"
)

// TargetShape describes who a template affects.
type TargetShape string

const (
	TargetSelf     TargetShape = "self"
	TargetSingle   TargetShape = "single"
	TargetMultiple TargetShape = "multiple"
	TargetArea     TargetShape = "area"
)

// SummonStats describes a creature created by a summon template.
type SummonStats struct {
	Name       string `json:"name" yaml:"name"`
	HitPoints  int    `json:"hit_points" yaml:"hit_points"`
	ArmorClass int    `json:"armor_class" yaml:"armor_class"`
}

// EffectTemplate is reference data for one mechanical effect of a spell.
type EffectTemplate struct {
	Kind         EffectKind        `json:"kind" yaml:"kind"`
	Target       TargetShape       `json:"target" yaml:"target"`
	DamageType   shared.DamageType `json:"damage_type,omitempty" yaml:"damage_type,omitempty"`
	BaseDice     string            `json:"base_dice,omitempty" yaml:"base_dice,omitempty"`
	DicePerLevel string            `json:"dice_per_level,omitempty" yaml:"dice_per_level,omitempty"`
	// AddModifier adds the caster's spellcasting modifier to damage rolls
	AddModifier bool `json:"add_modifier,omitempty" yaml:"add_modifier,omitempty"`

	SaveType        shared.Attribute `json:"save_type,omitempty" yaml:"save_type,omitempty"`
	SaveConsequence SaveConsequence  `json:"save_consequence,omitempty" yaml:"save_consequence,omitempty"`

	Condition shared.ConditionType `json:"condition,omitempty" yaml:"condition,omitempty"`

	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
	ACModifier     int    `json:"ac_modifier,omitempty" yaml:"ac_modifier,omitempty"`
	AttackModifier int    `json:"attack_modifier,omitempty" yaml:"attack_modifier,omitempty"`
	DamageModifier int    `json:"damage_modifier,omitempty" yaml:"damage_modifier,omitempty"`

	AreaRadius int    `json:"area_radius,omitempty" yaml:"area_radius,omitempty"`
	AreaShape  string `json:"area_shape,omitempty" yaml:"area_shape,omitempty"`

	Summon *SummonStats `json:"summon,omitempty" yaml:"summon,omitempty"`

	DurationKind  DurationKind `json:"duration_kind,omitempty" yaml:"duration_kind,omitempty"`
	DurationValue int          `json:"duration_value,omitempty" yaml:"duration_value,omitempty"`
}

// HasSave reports whether targets roll a saving throw.
func (t *EffectTemplate) HasSave() bool {
	return t.SaveType != shared.AttributeNone
}

// DurationRounds returns the round count for round-measured effects and
// 0 otherwise.
func (t *EffectTemplate) DurationRounds() int {
	if t.DurationKind == DurationRounds {
		return t.DurationValue
	}
	return 0
}

// IsConcentration reports whether the effect ends with concentration.
func (t *EffectTemplate) IsConcentration() bool {
	return t.DurationKind == DurationConcentration
}
