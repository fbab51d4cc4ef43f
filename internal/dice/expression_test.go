package dice_test

import (
	"testing"

	"github.com/KirkDiggler/dnd-combat-engine/internal/dice"
	mockdice "github.com/KirkDiggler/dnd-combat-engine/internal/dice/mock"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseExpression(t *testing.T) {
	tests := []struct {
		input   string
		want    dice.Expression
		wantErr bool
	}{
		{input: "8d6", want: dice.Expression{Count: 8, Sides: 6}},
		{input: "d20", want: dice.Expression{Count: 1, Sides: 20}},
		{input: "1d8+3", want: dice.Expression{Count: 1, Sides: 8, Modifier: 3}},
		{input: "2d4 - 1", want: dice.Expression{Count: 2, Sides: 4, Modifier: -1}},
		{input: " 1D10 ", want: dice.Expression{Count: 1, Sides: 10}},
		{input: "0d6", wantErr: true},
		{input: "3d0", wantErr: true},
		{input: "fireball", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := dice.ParseExpression(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dnderr.IsInvalidArgument(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpression_AddDice(t *testing.T) {
	base := dice.MustParseExpression("8d6")

	upcast := base.AddDice(2)

	assert.Equal(t, "10d6", upcast.String())
	assert.Equal(t, "8d6", base.String(), "original is not mutated")
	assert.Equal(t, "8d6", base.AddDice(0).String())
}

func TestExpression_DoubleKeepsModifier(t *testing.T) {
	assert.Equal(t, "2d8+3", dice.MustParseExpression("1d8+3").Double().String())
}

func TestRollString(t *testing.T) {
	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{3, 4})

	result, err := dice.RollString(roller, "2d6+1")

	require.NoError(t, err)
	assert.Equal(t, 8, result.Total)
	assert.Equal(t, []int{3, 4}, result.Rolls)
}

func TestRandomRoller_FacesWithinRange(t *testing.T) {
	roller := dice.NewRandomRoller()

	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 12).Draw(rt, "count")
		sides := rapid.SampledFrom([]int{4, 6, 8, 10, 12, 20}).Draw(rt, "sides")
		bonus := rapid.IntRange(-5, 5).Draw(rt, "bonus")

		result, err := roller.Roll(count, sides, bonus)
		if err != nil {
			rt.Fatalf("roll %dd%d: %v", count, sides, err)
		}

		sum := 0
		for _, face := range result.Rolls {
			if face < 1 || face > sides {
				rt.Fatalf("face %d outside [1, %d]", face, sides)
			}
			sum += face
		}
		if result.Total != sum+bonus {
			rt.Fatalf("total %d != %d + %d", result.Total, sum, bonus)
		}
	})
}
