package logging

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-combat-engine/internal/config"
)

func TestSetupWritesToFile(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	path := filepath.Join(t.TempDir(), "engine.log")
	closer := Setup(config.LogConfig{File: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1})

	log.Printf("Encounter: created combat %s", "combat-1")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Encounter: created combat combat-1")
}

func TestSetupWithoutFile(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	closer := Setup(config.LogConfig{})
	assert.NoError(t, closer.Close())
}
