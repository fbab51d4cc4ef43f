package shared

import (
	"fmt"
	"strings"
)

type Attribute string

var Attributes = []Attribute{AttributeStrength, AttributeDexterity, AttributeConstitution, AttributeIntelligence, AttributeWisdom, AttributeCharisma}

const (
	AttributeNone         Attribute = ""
	AttributeStrength     Attribute = "Str"
	AttributeDexterity    Attribute = "Dex"
	AttributeConstitution Attribute = "Con"
	AttributeIntelligence Attribute = "Int"
	AttributeWisdom       Attribute = "Wis"
	AttributeCharisma     Attribute = "Cha"
)

// ParseAttribute accepts "Str", "STR", "strength" and similar spellings.
func ParseAttribute(s string) (Attribute, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "str", "strength":
		return AttributeStrength, true
	case "dex", "dexterity":
		return AttributeDexterity, true
	case "con", "constitution":
		return AttributeConstitution, true
	case "int", "intelligence":
		return AttributeIntelligence, true
	case "wis", "wisdom":
		return AttributeWisdom, true
	case "cha", "charisma":
		return AttributeCharisma, true
	default:
		return AttributeNone, false
	}
}

// UnmarshalText accepts any spelling ParseAttribute does.
func (a *Attribute) UnmarshalText(text []byte) error {
	if len(text) == 0 || strings.EqualFold(string(text), "none") {
		*a = AttributeNone
		return nil
	}
	parsed, ok := ParseAttribute(string(text))
	if !ok {
		return fmt.Errorf("unknown attribute %q", text)
	}
	*a = parsed
	return nil
}

func (a Attribute) Short() string {
	return strings.ToUpper(string(a))
}

// AbilityModifier is floor((score - 10) / 2).
func AbilityModifier(score int) int {
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// ProficiencyBonus returns the bonus for a character level (+2 at 1-4 up to +6 at 17-20).
func ProficiencyBonus(level int) int {
	if level < 1 {
		return 2
	}
	return 2 + (level-1)/4
}
