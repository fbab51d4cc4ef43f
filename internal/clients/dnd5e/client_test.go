package dnd5e

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/equipment"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/magic"
	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	apiDnd5e "github.com/fadedpez/dnd5e-api/clients/dnd5e"
	apiEntities "github.com/fadedpez/dnd5e-api/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	equipment map[string]apiDnd5e.EquipmentInterface
	spells    map[string]*apiEntities.Spell
	listed    []*apiEntities.ReferenceItem
	err       error
}

func (f *fakeAPI) GetEquipment(key string) (apiDnd5e.EquipmentInterface, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.equipment[key], nil
}

func (f *fakeAPI) GetSpell(key string) (*apiEntities.Spell, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.spells[key], nil
}

func (f *fakeAPI) ListSpells(_ *apiDnd5e.ListSpellsInput) ([]*apiEntities.ReferenceItem, error) {
	return f.listed, f.err
}

func TestGetWeapon(t *testing.T) {
	api := &fakeAPI{equipment: map[string]apiDnd5e.EquipmentInterface{
		"rapier": &apiEntities.Weapon{
			Key:            "rapier",
			Name:           "Rapier",
			WeaponCategory: "Martial",
			WeaponRange:    "Melee",
			Properties: []*apiEntities.ReferenceItem{
				{Key: "finesse", Name: "Finesse"},
				{Key: "monk", Name: "Monk"},
			},
			Damage: &apiEntities.Damage{
				DamageDice: "1d8",
				DamageType: &apiEntities.ReferenceItem{Key: "piercing", Name: "Piercing"},
			},
		},
		"longbow": &apiEntities.Weapon{
			Key: "longbow", Name: "Longbow", WeaponCategory: "Martial", WeaponRange: "Ranged",
		},
		"chain-mail": &apiEntities.Armor{Key: "chain-mail", Name: "Chain Mail"},
	}}
	c := &client{client: api}

	rapier, err := c.GetWeapon("rapier")
	require.NoError(t, err)
	assert.Equal(t, &equipment.Weapon{
		Key:        "rapier",
		Name:       "Rapier",
		Category:   equipment.CategoryMartial,
		Range:      equipment.RangeMelee,
		DamageDice: "1d8",
		DamageType: shared.DamageTypePiercing,
		Properties: []equipment.Property{equipment.PropertyFinesse},
	}, rapier)

	longbow, err := c.GetWeapon("longbow")
	require.NoError(t, err)
	assert.True(t, longbow.IsRanged())
	assert.Equal(t, equipment.DefaultDamageDice, longbow.Damage())

	_, err = c.GetWeapon("chain-mail")
	assert.True(t, dnderr.IsNotFound(err))

	_, err = c.GetWeapon("")
	assert.True(t, dnderr.IsInvalidArgument(err))
}

func TestGetSpell(t *testing.T) {
	api := &fakeAPI{spells: map[string]*apiEntities.Spell{
		"hold-person": {
			Key:           "hold-person",
			Name:          "Hold Person",
			SpellLevel:    2,
			Concentration: true,
			Duration:      "Up to 1 minute",
			Range:         "60 feet",
			SpellSchool:   &apiEntities.ReferenceItem{Key: "enchantment", Name: "Enchantment"},
			DC: &apiEntities.DC{
				DCType:    &apiEntities.ReferenceItem{Key: "wis", Name: "WIS"},
				DCSuccess: "none",
			},
		},
	}}
	c := &client{client: api}

	spell, err := c.GetSpell("hold-person")
	require.NoError(t, err)
	assert.Equal(t, "enchantment", spell.School)
	assert.Equal(t, 10, spell.ConcentrationRounds)
	require.Len(t, spell.Templates, 1)
	tmpl := spell.Templates[0]
	assert.Equal(t, magic.EffectUtility, tmpl.Kind)
	assert.Equal(t, magic.TargetSingle, tmpl.Target)
	assert.Equal(t, shared.AttributeWisdom, tmpl.SaveType)
	assert.Equal(t, magic.SaveNegate, tmpl.SaveConsequence)
	assert.True(t, tmpl.IsConcentration())

	_, err = c.GetSpell("wish")
	assert.True(t, dnderr.IsNotFound(err))
}

func TestUpstreamFailure(t *testing.T) {
	c := &client{client: &fakeAPI{err: errors.New("connection refused")}}

	_, err := c.GetSpell("fireball")
	assert.Equal(t, dnderr.CodeUnavailable, dnderr.GetCode(err))

	_, err = c.ListSpellKeys("wizard", 3)
	assert.Equal(t, dnderr.CodeUnavailable, dnderr.GetCode(err))
}

func TestListSpellKeys(t *testing.T) {
	c := &client{client: &fakeAPI{listed: []*apiEntities.ReferenceItem{
		{Key: "fireball"}, nil, {Key: ""}, {Key: "fly"},
	}}}

	keys, err := c.ListSpellKeys("wizard", 3)

	require.NoError(t, err)
	assert.Equal(t, []string{"fireball", "fly"}, keys)
}

func TestPerLevelDice(t *testing.T) {
	assert.Equal(t, "1d6", perLevelDice("8d6", "9d6"))
	assert.Equal(t, "1d4", perLevelDice("3d4 + 3", "4d4 + 4"))
	assert.Equal(t, "", perLevelDice("8d6", ""))
	assert.Equal(t, "", perLevelDice("8d6", "8d6"))
	assert.Equal(t, "", perLevelDice("1d8", "2d6"))
}

func TestDurationRounds(t *testing.T) {
	assert.Equal(t, 10, durationRounds("Up to 1 minute"))
	assert.Equal(t, 100, durationRounds("Concentration, up to 10 minutes"))
	assert.Equal(t, 600, durationRounds("Up to 1 hour"))
	assert.Equal(t, 1, durationRounds("1 round"))
	assert.Equal(t, 0, durationRounds("Instantaneous"))
}

func TestBaseURLTransport(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	base, err := url.Parse(server.URL)
	require.NoError(t, err)
	httpClient := &http.Client{Transport: &baseURLTransport{base: base}}

	resp, err := httpClient.Get("https://www.dnd5eapi.co/api/spells/fireball")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "/api/spells/fireball", gotPath)
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(nil)
	assert.True(t, dnderr.IsInvalidArgument(err))

	_, err = New(&Config{BaseURL: "::not a url"})
	assert.True(t, dnderr.IsInvalidArgument(err))
}
