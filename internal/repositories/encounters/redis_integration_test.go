//go:build integration

package encounters_test

import (
	"context"
	"sync"
	"testing"

	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/KirkDiggler/dnd-combat-engine/internal/repositories/encounters"
	"github.com/KirkDiggler/dnd-combat-engine/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two writers holding the same version race; exactly one wins.
func TestRedisRepository_ConcurrentUpdates(t *testing.T) {
	client := testutils.StartRedisContainer(t)
	repo := encounters.NewRedis(client)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newEncounter("combat-race", "game-race")))

	const writers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		won     int
		aborted int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(hp int) {
			defer wg.Done()
			enc, err := repo.Get(ctx, "combat-race")
			if !assert.NoError(t, err) {
				return
			}
			enc.Combatants["gob"].HitPoints.Current = hp
			err = repo.Update(ctx, enc)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				won++
			case dnderr.IsAborted(err):
				aborted++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.GreaterOrEqual(t, won, 1)
	assert.Equal(t, writers, won+aborted)

	stored, err := repo.Get(ctx, "combat-race")
	require.NoError(t, err)
	assert.Equal(t, int64(1+won), stored.Combat.Version)
}
