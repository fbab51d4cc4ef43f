package uuid_test

import (
	"testing"

	"github.com/KirkDiggler/dnd-combat-engine/internal/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSequenceGenerator(t *testing.T) {
	gen := uuid.NewSequenceGenerator("evt")

	assert.Equal(t, "evt-1", gen.New())
	assert.Equal(t, "evt-2", gen.New())
}

func TestGoogleUUIDGenerator_Unique(t *testing.T) {
	gen := uuid.NewGoogleUUIDGenerator()

	assert.NotEqual(t, gen.New(), gen.New())
	assert.Len(t, gen.New(), 36)
}
