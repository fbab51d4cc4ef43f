// Package spells resolves a spell cast against its targets and applies the
// result. Resolution rolls dice but never touches the combatants; Apply is
// the separate step that mutates them.
package spells

import (
	"github.com/KirkDiggler/dnd-combat-engine/internal/dice"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/magic"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
)

// Adding an effect kind must be handled in resolveTemplate.
var _ = [1]struct{}{}[magic.EffectKindCount-7]

// Input describes one cast.
type Input struct {
	Caster    *character.Combatant
	Spell     *magic.Spell
	Targets   []*character.Combatant
	SlotLevel int
}

// SaveResult is one target's saving throw against the spell.
type SaveResult struct {
	TargetID string           `json:"target_id"`
	SaveType shared.Attribute `json:"save_type"`
	DC       int              `json:"dc"`
	Roll     int              `json:"roll"`
	Modifier int              `json:"modifier"`
	Total    int              `json:"total"`
	Success  bool             `json:"success"`
}

// DamageResult is rolled damage for one target.
type DamageResult struct {
	TargetID   string            `json:"target_id"`
	Dice       string            `json:"dice"`
	Rolls      []int             `json:"rolls,omitempty"`
	Modifier   int               `json:"modifier,omitempty"`
	Total      int               `json:"total"`
	DamageType shared.DamageType `json:"damage_type,omitempty"`
	Halved     bool              `json:"halved,omitempty"`
}

// HealingResult is rolled healing for one target. Overheal is filled in
// when the result is applied.
type HealingResult struct {
	TargetID string `json:"target_id"`
	Dice     string `json:"dice"`
	Rolls    []int  `json:"rolls,omitempty"`
	Modifier int    `json:"modifier"`
	Total    int    `json:"total"`
	Overheal int    `json:"overheal"`
}

// ConditionResult is a condition outcome for one target.
type ConditionResult struct {
	TargetID        string               `json:"target_id"`
	Condition       shared.ConditionType `json:"condition"`
	Applied         bool                 `json:"applied"`
	DurationRounds  int                  `json:"duration_rounds,omitempty"`
	IsConcentration bool                 `json:"is_concentration,omitempty"`
}

// BuffResult carries modifiers for the caller to turn into an active effect.
type BuffResult struct {
	TargetID        string           `json:"target_id"`
	Kind            magic.EffectKind `json:"kind"`
	Description     string           `json:"description,omitempty"`
	ACModifier      int              `json:"ac_modifier,omitempty"`
	AttackModifier  int              `json:"attack_modifier,omitempty"`
	DamageModifier  int              `json:"damage_modifier,omitempty"`
	DurationRounds  int              `json:"duration_rounds,omitempty"`
	IsConcentration bool             `json:"is_concentration,omitempty"`
}

// SummonResult is a creature to be conjured next to the caster.
type SummonResult struct {
	Name            string `json:"name"`
	HitPoints       int    `json:"hit_points"`
	ArmorClass      int    `json:"armor_class"`
	DurationRounds  int    `json:"duration_rounds,omitempty"`
	IsConcentration bool   `json:"is_concentration,omitempty"`
}

// CastResult aggregates every outcome of one cast.
type CastResult struct {
	CasterID   string   `json:"caster_id"`
	SpellKey   string   `json:"spell_key"`
	SpellName  string   `json:"spell_name"`
	SpellLevel int      `json:"spell_level"`
	SlotLevel  int      `json:"slot_level"`
	SaveDC     int      `json:"save_dc"`
	TargetIDs  []string `json:"target_ids,omitempty"`

	Saves      []SaveResult      `json:"saves,omitempty"`
	Damage     []DamageResult    `json:"damage,omitempty"`
	Healing    []HealingResult   `json:"healing,omitempty"`
	Conditions []ConditionResult `json:"conditions,omitempty"`
	Buffs      []BuffResult      `json:"buffs,omitempty"`
	Summons    []SummonResult    `json:"summons,omitempty"`

	ConcentrationStarted bool `json:"concentration_started"`
	ConcentrationRounds  int  `json:"concentration_rounds,omitempty"`
}

// Config holds resolver dependencies
type Config struct {
	Roller dice.Roller
}

// Resolver resolves spell casts
type Resolver struct {
	roller dice.Roller
}

// NewResolver creates a new spell resolver
func NewResolver(cfg *Config) *Resolver {
	if cfg == nil || cfg.Roller == nil {
		panic("dice roller is required")
	}
	return &Resolver{roller: cfg.Roller}
}

// CalculateDice returns the template's dice at a slot level, adding
// DicePerLevel once for every level above the spell's own. It returns ""
// when the template rolls no dice.
func CalculateDice(template *magic.EffectTemplate, spellLevel, slotLevel int) (string, error) {
	if template.BaseDice == "" {
		return "", nil
	}

	base, err := dice.ParseExpression(template.BaseDice)
	if err != nil {
		return "", err
	}

	if template.DicePerLevel != "" && slotLevel > spellLevel {
		perLevel, err := dice.ParseExpression(template.DicePerLevel)
		if err != nil {
			return "", err
		}
		base = base.AddDice(perLevel.Count * (slotLevel - spellLevel))
	}

	return base.String(), nil
}

// SavingThrow rolls d20 plus the target's save modifier against dc. Ties
// succeed.
func (r *Resolver) SavingThrow(target *character.Combatant, saveType shared.Attribute, dc int) (*SaveResult, error) {
	modifier := target.SaveModifier(saveType)
	roll, err := dice.D20(r.roller, dice.ModeNormal, modifier)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to roll saving throw")
	}

	return &SaveResult{
		TargetID: target.ID,
		SaveType: saveType,
		DC:       dc,
		Roll:     roll.Kept(),
		Modifier: modifier,
		Total:    roll.Total,
		Success:  roll.Total >= dc,
	}, nil
}

// Resolve rolls every template against every target. A successful save
// against a negating template skips that template for the target, though
// the save itself is still recorded.
func (r *Resolver) Resolve(in *Input) (*CastResult, error) {
	if in == nil || in.Caster == nil || in.Spell == nil {
		return nil, dnderr.InvalidArgument("caster and spell are required")
	}

	spell := in.Spell
	slotLevel := in.SlotLevel
	if slotLevel < spell.Level {
		slotLevel = spell.Level
	}

	result := &CastResult{
		CasterID:   in.Caster.ID,
		SpellKey:   spell.Key,
		SpellName:  spell.Name,
		SpellLevel: spell.Level,
		SlotLevel:  slotLevel,
		SaveDC:     in.Caster.SpellSaveDC(),
	}
	for _, target := range in.Targets {
		result.TargetIDs = append(result.TargetIDs, target.ID)
	}

	for i := range spell.Templates {
		template := &spell.Templates[i]

		if template.Kind == magic.EffectSummon {
			if summon := resolveSummon(template); summon != nil {
				result.Summons = append(result.Summons, *summon)
			}
			continue
		}

		targets := in.Targets
		if template.Target == magic.TargetSelf {
			targets = []*character.Combatant{in.Caster}
		}

		for _, target := range targets {
			if err := r.resolveTemplate(result, in.Caster, spell, template, target); err != nil {
				return nil, dnderr.Wrapf(err, "failed to resolve %s", spell.Name)
			}
		}
	}

	result.ConcentrationStarted = spell.Concentration
	if spell.Concentration {
		result.ConcentrationRounds = spell.ConcentrationRounds
	}
	return result, nil
}

func (r *Resolver) resolveTemplate(result *CastResult, caster *character.Combatant, spell *magic.Spell, template *magic.EffectTemplate, target *character.Combatant) error {
	var save *SaveResult
	if template.HasSave() {
		var err error
		save, err = r.SavingThrow(target, template.SaveType, result.SaveDC)
		if err != nil {
			return err
		}
		result.Saves = append(result.Saves, *save)

		if save.Success && template.SaveConsequence == magic.SaveNegate {
			return nil
		}
	}

	switch template.Kind {
	case magic.EffectDamage:
		damage, err := r.resolveDamage(caster, spell, template, result.SlotLevel, save)
		if err != nil {
			return err
		}
		damage.TargetID = target.ID
		result.Damage = append(result.Damage, *damage)

	case magic.EffectHealing:
		healing, err := r.resolveHealing(caster, spell, template, result.SlotLevel)
		if err != nil {
			return err
		}
		healing.TargetID = target.ID
		result.Healing = append(result.Healing, *healing)

	case magic.EffectCondition:
		if condition := resolveCondition(template, save); condition != nil {
			condition.TargetID = target.ID
			result.Conditions = append(result.Conditions, *condition)
		}

	case magic.EffectBuff, magic.EffectDebuff:
		buff := resolveBuff(template)
		buff.TargetID = target.ID
		result.Buffs = append(result.Buffs, buff)

	case magic.EffectSummon, magic.EffectUtility:
		// summons resolve once per cast, utility has no mechanical effect
	}
	return nil
}

func (r *Resolver) resolveDamage(caster *character.Combatant, spell *magic.Spell, template *magic.EffectTemplate, slotLevel int, save *SaveResult) (*DamageResult, error) {
	damage := &DamageResult{DamageType: template.DamageType}

	diceStr, err := CalculateDice(template, spell.Level, slotLevel)
	if err != nil || diceStr == "" {
		return damage, err
	}

	if template.AddModifier {
		damage.Modifier = caster.SpellcastingModifier()
	}

	roll, err := dice.RollString(r.roller, diceStr)
	if err != nil {
		return nil, err
	}
	damage.Dice = diceStr
	damage.Rolls = roll.Rolls
	damage.Total = max(0, roll.Total+damage.Modifier)

	if save != nil && save.Success && template.SaveConsequence == magic.SaveHalf {
		damage.Total /= 2
		damage.Halved = true
	}
	return damage, nil
}

func (r *Resolver) resolveHealing(caster *character.Combatant, spell *magic.Spell, template *magic.EffectTemplate, slotLevel int) (*HealingResult, error) {
	healing := &HealingResult{}

	diceStr, err := CalculateDice(template, spell.Level, slotLevel)
	if err != nil || diceStr == "" {
		return healing, err
	}

	roll, err := dice.RollString(r.roller, diceStr)
	if err != nil {
		return nil, err
	}
	healing.Dice = diceStr
	healing.Rolls = roll.Rolls
	healing.Modifier = caster.SpellcastingModifier()
	healing.Total = max(0, roll.Total+healing.Modifier)
	return healing, nil
}

func resolveCondition(template *magic.EffectTemplate, save *SaveResult) *ConditionResult {
	if template.Condition == "" {
		return nil
	}
	return &ConditionResult{
		Condition:       template.Condition,
		Applied:         save == nil || !save.Success || template.SaveConsequence != magic.SaveNegate,
		DurationRounds:  template.DurationRounds(),
		IsConcentration: template.IsConcentration(),
	}
}

func resolveBuff(template *magic.EffectTemplate) BuffResult {
	return BuffResult{
		Kind:            template.Kind,
		Description:     template.Description,
		ACModifier:      template.ACModifier,
		AttackModifier:  template.AttackModifier,
		DamageModifier:  template.DamageModifier,
		DurationRounds:  template.DurationRounds(),
		IsConcentration: template.IsConcentration(),
	}
}

func resolveSummon(template *magic.EffectTemplate) *SummonResult {
	if template.Summon == nil {
		return nil
	}
	return &SummonResult{
		Name:            template.Summon.Name,
		HitPoints:       template.Summon.HitPoints,
		ArmorClass:      template.Summon.ArmorClass,
		DurationRounds:  template.DurationRounds(),
		IsConcentration: template.IsConcentration(),
	}
}
