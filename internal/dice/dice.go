package dice

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
)

// Verbose enables per-roll logging. Off by default, the simulate command
// turns it on.
var Verbose = false

// RollResult contains detailed information about a dice roll
type RollResult struct {
	Total    int   // Sum of kept dice plus bonus
	Rolls    []int // Individual die results (both d20s for advantage/disadvantage)
	Bonus    int   // Bonus applied
	Count    int   // Number of dice rolled
	Sides    int   // Number of sides on each die
	RawTotal int   // Sum of kept dice without bonus
	IsCrit   bool  // Natural 20 kept on a single d20
	IsFumble bool  // Natural 1 kept on a single d20
}

// Kept returns the kept face for a d20 test. For advantage and disadvantage
// results this is the higher or lower of the two rolls.
func (r *RollResult) Kept() int {
	return r.RawTotal
}

// Discarded returns the dropped face of an advantage or disadvantage roll,
// or 0 when only one die was rolled.
func (r *RollResult) Discarded() int {
	if r.Count != 1 || len(r.Rolls) != 2 {
		return 0
	}
	if r.Rolls[0] == r.RawTotal {
		return r.Rolls[1]
	}
	return r.Rolls[0]
}

// Pair returns (kept, roll1, roll2) for a two-die d20 test. For a single roll
// roll2 is 0.
func (r *RollResult) Pair() (kept, roll1, roll2 int) {
	if len(r.Rolls) == 0 {
		return r.RawTotal, 0, 0
	}
	if r.Count == 1 && len(r.Rolls) == 2 {
		return r.RawTotal, r.Rolls[0], r.Rolls[1]
	}
	return r.RawTotal, r.Rolls[0], 0
}

func (r *RollResult) String() string {
	compact := strings.ReplaceAll(fmt.Sprintf("%v", r.Rolls), " ", "")
	return fmt.Sprintf("**%d** : %s", r.Total, compact)
}

func roll(count, size, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, dnderr.InvalidArgumentf("invalid dice count %d", count)
	}

	if size < 1 {
		return nil, dnderr.InvalidArgumentf("invalid dice size %d", size)
	}

	total := 0
	out := make([]int, count)
	for i := 0; i < count; i++ {
		face := rand.Intn(size) + 1 //nolint:gosec // game dice, not crypto
		total += face
		out[i] = face
	}

	if Verbose {
		log.Println("Rolling", count, "d", size, ":", out, "total:", total)
	}
	return &RollResult{
		Total:    total + bonus,
		Rolls:    out,
		Bonus:    bonus,
		Count:    count,
		Sides:    size,
		RawTotal: total,
	}, nil
}
