package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller provides an interface for rolling dice
// This allows us to inject different implementations for testing
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)

	// RollWithAdvantage rolls with advantage (roll twice, take higher)
	RollWithAdvantage(sides, bonus int) (*RollResult, error)

	// RollWithDisadvantage rolls with disadvantage (roll twice, take lower)
	RollWithDisadvantage(sides, bonus int) (*RollResult, error)
}

// Mode selects how a d20 test is rolled.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAdvantage
	ModeDisadvantage
)

// ModeFor folds advantage and disadvantage flags into a Mode. Both flags
// cancel out to a normal roll.
func ModeFor(advantage, disadvantage bool) Mode {
	switch {
	case advantage && !disadvantage:
		return ModeAdvantage
	case disadvantage && !advantage:
		return ModeDisadvantage
	default:
		return ModeNormal
	}
}

func (m Mode) String() string {
	switch m {
	case ModeAdvantage:
		return "advantage"
	case ModeDisadvantage:
		return "disadvantage"
	default:
		return "normal"
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "advantage":
		*m = ModeAdvantage
	case "disadvantage":
		*m = ModeDisadvantage
	default:
		*m = ModeNormal
	}
	return nil
}

// D20 rolls a d20 test in the given mode.
func D20(r Roller, mode Mode, bonus int) (*RollResult, error) {
	switch mode {
	case ModeAdvantage:
		return r.RollWithAdvantage(20, bonus)
	case ModeDisadvantage:
		return r.RollWithDisadvantage(20, bonus)
	default:
		return r.Roll(1, 20, bonus)
	}
}

// RollExpression rolls a parsed expression, adding its modifier as the bonus.
func RollExpression(r Roller, expr Expression) (*RollResult, error) {
	if err := expr.Validate(); err != nil {
		return nil, err
	}
	return r.Roll(expr.Count, expr.Sides, expr.Modifier)
}

// RollString parses and rolls a dice string.
func RollString(r Roller, s string) (*RollResult, error) {
	expr, err := ParseExpression(s)
	if err != nil {
		return nil, err
	}
	return RollExpression(r, expr)
}
