package errors_test

import (
	"fmt"
	"testing"

	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrap_PreservesCodeAndMeta(t *testing.T) {
	base := dnderr.NotYourTurn("fighter-1")

	wrapped := dnderr.Wrap(base, "attack rejected")

	assert.Equal(t, dnderr.CodeFailedPrecondition, wrapped.Code)
	assert.Equal(t, "fighter-1", wrapped.Meta[dnderr.MetaFighterID])
	assert.True(t, dnderr.IsIllegalState(wrapped))
	assert.Contains(t, wrapped.Error(), "attack rejected")
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, dnderr.Wrap(nil, "nothing"))
	assert.Nil(t, dnderr.Wrapf(nil, "nothing %d", 1))
}

func TestIsRejection(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "invalid input", err: dnderr.InvalidExpression("0d6", "count must be positive"), want: true},
		{name: "illegal state", err: dnderr.ActionAlreadyUsed("action"), want: true},
		{name: "not found", err: dnderr.NotFoundf("weapon %s not found", "spork"), want: true},
		{name: "rules violation", err: dnderr.RulesViolation("spell_slot_3", "no level 3 slots left"), want: true},
		{name: "infrastructure", err: dnderr.Unavailable(fmt.Errorf("dial tcp"), "redis down"), want: false},
		{name: "plain error", err: fmt.Errorf("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dnderr.IsRejection(tt.err))
		})
	}
}

func TestRulesViolation_NamesPrerequisite(t *testing.T) {
	err := dnderr.RulesViolationf("prepared:fireball", "%s has not prepared %s", "Aria", "Fireball")

	assert.Equal(t, "prepared:fireball", dnderr.GetMeta(err)[dnderr.MetaPrerequisite])
	assert.Equal(t, "Aria has not prepared Fireball", err.Error())
}
