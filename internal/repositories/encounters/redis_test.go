package encounters_test

import (
	"context"
	"errors"
	"testing"
	"time"

	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/KirkDiggler/dnd-combat-engine/internal/repositories/encounters"
	"github.com/KirkDiggler/dnd-combat-engine/internal/testutils"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRepository_TTL(t *testing.T) {
	client, mr := testutils.CreateTestRedisClient(t)
	repo := encounters.NewRedisRepository(&encounters.RedisRepoConfig{Client: client, TTL: time.Hour})
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newEncounter("combat-1", "game-1")))
	assert.Equal(t, time.Hour, mr.TTL("combat:combat-1"))

	mr.FastForward(2 * time.Hour)

	_, err := repo.Get(ctx, "combat-1")
	assert.True(t, dnderr.IsNotFound(err))

	// the expired ID is pruned from the game index
	all, err := repo.GetByGame(ctx, "game-1")
	require.NoError(t, err)
	assert.Empty(t, all)
	members, err := mr.SMembers("game:game-1:combats")
	if err == nil {
		assert.Empty(t, members)
	}
}

func TestRedisRepository_Unavailable(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := encounters.NewRedis(client)
	ctx := context.Background()

	mock.ExpectGet("combat:combat-1").SetErr(errors.New("connection refused"))

	_, err := repo.Get(ctx, "combat-1")
	require.Error(t, err)
	assert.Equal(t, dnderr.CodeUnavailable, dnderr.GetCode(err))
	assert.False(t, dnderr.IsRejection(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisRepository_GetByGameEmptyIndex(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := encounters.NewRedis(client)

	mock.ExpectSMembers("game:game-9:combats").SetVal([]string{})

	all, err := repo.GetByGame(context.Background(), "game-9")
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewRedisRepository_RequiresClient(t *testing.T) {
	assert.Panics(t, func() {
		encounters.NewRedisRepository(&encounters.RedisRepoConfig{})
	})
}
