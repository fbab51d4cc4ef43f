package dice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
)

var expressionPattern = regexp.MustCompile(`^(\d*)d(\d+)\s*(?:([+-])\s*(\d+))?$`)

// Expression is a parsed "NdM[+K]" dice string.
type Expression struct {
	Count    int
	Sides    int
	Modifier int
}

// ParseExpression parses expressions like "8d6", "d20", "1d8+3" or "2d4 - 1".
// A missing count means one die.
func ParseExpression(s string) (Expression, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	m := expressionPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return Expression{}, dnderr.InvalidExpression(s, "expected NdM with an optional +K or -K")
	}

	count := 1
	if m[1] != "" {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Expression{}, dnderr.InvalidExpression(s, "count is not a number")
		}
		count = n
	}

	sides, err := strconv.Atoi(m[2])
	if err != nil {
		return Expression{}, dnderr.InvalidExpression(s, "sides is not a number")
	}

	modifier := 0
	if m[3] != "" {
		modifier, err = strconv.Atoi(m[4])
		if err != nil {
			return Expression{}, dnderr.InvalidExpression(s, "modifier is not a number")
		}
		if m[3] == "-" {
			modifier = -modifier
		}
	}

	expr := Expression{Count: count, Sides: sides, Modifier: modifier}
	if err := expr.Validate(); err != nil {
		return Expression{}, err
	}
	return expr, nil
}

// MustParseExpression is ParseExpression for static data. It panics on error.
func MustParseExpression(s string) Expression {
	expr, err := ParseExpression(s)
	if err != nil {
		panic(err)
	}
	return expr
}

// Validate rejects non-positive counts and sides.
func (e Expression) Validate() error {
	if e.Count <= 0 {
		return dnderr.InvalidExpression(e.String(), "dice count must be positive")
	}
	if e.Sides <= 0 {
		return dnderr.InvalidExpression(e.String(), "dice sides must be positive")
	}
	return nil
}

// AddDice returns a copy of the expression with n more dice of the same size.
func (e Expression) AddDice(n int) Expression {
	if n <= 0 {
		return e
	}
	e.Count += n
	return e
}

// Double returns the expression with its dice count doubled and the modifier
// unchanged, the critical hit rule.
func (e Expression) Double() Expression {
	e.Count *= 2
	return e
}

func (e Expression) String() string {
	switch {
	case e.Modifier > 0:
		return fmt.Sprintf("%dd%d+%d", e.Count, e.Sides, e.Modifier)
	case e.Modifier < 0:
		return fmt.Sprintf("%dd%d-%d", e.Count, e.Sides, -e.Modifier)
	default:
		return fmt.Sprintf("%dd%d", e.Count, e.Sides)
	}
}
