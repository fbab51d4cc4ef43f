package magic_test

import (
	"testing"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/magic"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestEffectTemplate_YAML(t *testing.T) {
	doc := `
kind: damage
target: area
damage_type: fire
base_dice: 8d6
dice_per_level: 1d6
save_type: Dex
save_consequence: half_damage
`
	var tmpl magic.EffectTemplate
	err := yaml.Unmarshal([]byte(doc), &tmpl)

	assert.NoError(t, err)
	assert.Equal(t, magic.EffectDamage, tmpl.Kind)
	assert.True(t, tmpl.HasSave())
	assert.Equal(t, magic.SaveHalf, tmpl.SaveConsequence)
}

func TestEffectKind_UnknownRejected(t *testing.T) {
	var kind magic.EffectKind
	assert.Error(t, kind.UnmarshalText([]byte("polymorph")))
}

func TestEffectTemplate_Duration(t *testing.T) {
	tmpl := magic.EffectTemplate{DurationKind: magic.DurationRounds, DurationValue: 10}
	assert.Equal(t, 10, tmpl.DurationRounds())
	assert.False(t, tmpl.IsConcentration())

	tmpl.DurationKind = magic.DurationConcentration
	assert.Equal(t, 0, tmpl.DurationRounds())
	assert.True(t, tmpl.IsConcentration())
}
