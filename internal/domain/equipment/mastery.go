package equipment

import (
	"fmt"
	"strings"
)

// MasteryKind is the closed set of weapon mastery properties.
type MasteryKind int

const (
	MasteryNone MasteryKind = iota
	MasteryCleave
	MasteryGraze
	MasteryNick
	MasteryPush
	MasterySap
	MasterySlow
	MasteryTopple
	MasteryVex

	// MasteryKindCount must stay last. Resolvers pin it at compile time.
	MasteryKindCount
)

var masteryNames = [MasteryKindCount]string{
	MasteryNone:   "",
	MasteryCleave: "cleave",
	MasteryGraze:  "graze",
	MasteryNick:   "nick",
	MasteryPush:   "push",
	MasterySap:    "sap",
	MasterySlow:   "slow",
	MasteryTopple: "topple",
	MasteryVex:    "vex",
}

func (m MasteryKind) String() string {
	if m < 0 || m >= MasteryKindCount {
		return fmt.Sprintf("MasteryKind(%d)", int(m))
	}
	return masteryNames[m]
}

// Title is the display name, "Cleave" for MasteryCleave.
func (m MasteryKind) Title() string {
	name := m.String()
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// ParseMasteryKind parses a mastery name, case-insensitive. Empty is MasteryNone.
func ParseMasteryKind(s string) (MasteryKind, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for kind, name := range masteryNames {
		if name == needle {
			return MasteryKind(kind), nil
		}
	}
	return MasteryNone, fmt.Errorf("unknown weapon mastery %q", s)
}

func (m MasteryKind) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *MasteryKind) UnmarshalText(text []byte) error {
	kind, err := ParseMasteryKind(string(text))
	if err != nil {
		return err
	}
	*m = kind
	return nil
}
