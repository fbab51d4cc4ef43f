package combatants

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const (
	combatantKeyPrefix = "combatant:"

	// parallel GETs issued by GetMany
	fetchConcurrency = 8
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
	// TTL of zero keeps records forever
	TTL time.Duration
}

type redisRepo struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis-backed combatant repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}
	return &redisRepo{
		client: cfg.Client,
		ttl:    cfg.TTL,
	}
}

func (r *redisRepo) key(id string) string {
	return combatantKeyPrefix + id
}

// Get retrieves a combatant by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*character.Combatant, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, dnderr.NotFoundf("combatant not found: %s", id).WithMeta(dnderr.MetaFighterID, id)
		}
		return nil, dnderr.Unavailable(err, "failed to get combatant").WithMeta(dnderr.MetaFighterID, id)
	}

	var c character.Combatant
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, dnderr.Wrapf(err, "failed to deserialize combatant %s", id)
	}
	return &c, nil
}

// GetMany loads the combatants concurrently, keeping the requested order
func (r *redisRepo) GetMany(ctx context.Context, ids []string) ([]*character.Combatant, error) {
	out := make([]*character.Combatant, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			c, err := r.Get(gctx, id)
			if err != nil {
				return err
			}
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Save creates or replaces a combatant
func (r *redisRepo) Save(ctx context.Context, combatant *character.Combatant) error {
	return r.SaveAll(ctx, []*character.Combatant{combatant})
}

// SaveAll writes every combatant in one MULTI/EXEC
func (r *redisRepo) SaveAll(ctx context.Context, combatants []*character.Combatant) error {
	payloads := make(map[string][]byte, len(combatants))
	for _, c := range combatants {
		if err := validate(c); err != nil {
			return err
		}
		data, err := json.Marshal(c)
		if err != nil {
			return dnderr.Wrapf(err, "failed to serialize combatant %s", c.ID)
		}
		payloads[c.ID] = data
	}
	if len(payloads) == 0 {
		return nil
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for id, data := range payloads {
			pipe.Set(ctx, r.key(id), data, r.ttl)
		}
		return nil
	})
	if err != nil {
		return dnderr.Unavailable(err, "failed to save combatants")
	}
	return nil
}

// Delete removes a combatant
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, r.key(id)).Result()
	if err != nil {
		return dnderr.Unavailable(err, "failed to delete combatant").WithMeta(dnderr.MetaFighterID, id)
	}
	if n == 0 {
		return dnderr.NotFoundf("combatant not found: %s", id)
	}
	return nil
}
