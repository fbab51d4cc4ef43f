package encounters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/KirkDiggler/dnd-combat-engine/internal/domain/character"
	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/redis/go-redis/v9"
)

const (
	encounterKeyPrefix = "combat:"
	gameEncountersKey  = "game:%s:combats"

	// DefaultTTL keeps an idle encounter around for a day
	DefaultTTL = 24 * time.Hour

	maxUpdateRetries = 3
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
	TTL    time.Duration
}

type redisRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisRepository creates a new Redis-backed encounter repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		ttl:    ttl,
	}
}

// NewRedis creates a Redis-backed repository with the default TTL
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

func encounterKey(id string) string {
	return encounterKeyPrefix + id
}

// Create stores a new encounter. The game index is watched so two
// unfinished combats cannot be created for one game.
func (r *redisRepository) Create(ctx context.Context, encounter *Encounter) error {
	if err := validate(encounter); err != nil {
		return err
	}

	encounter.Combat.Version = 1
	data, err := json.Marshal(encounter)
	if err != nil {
		return dnderr.Wrap(err, "failed to serialize encounter")
	}

	key := encounterKey(encounter.ID())
	gameID := encounter.Combat.GameID
	indexKey := fmt.Sprintf(gameEncountersKey, gameID)

	txf := func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return dnderr.AlreadyExistsf("encounter with ID %s already exists", encounter.ID())
		}

		if isUnfinished(encounter) {
			activeID, err := unfinishedIn(ctx, tx, indexKey)
			if err != nil {
				return err
			}
			if activeID != "" {
				return unfinishedExists(gameID, activeID)
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			pipe.SAdd(ctx, indexKey, encounter.ID())
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key, indexKey)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, redis.TxFailedErr):
			log.Printf("Encounters: watch on %s failed during create, retrying (attempt %d)", indexKey, attempt+1)
			continue
		default:
			var dndErr *dnderr.Error
			if errors.As(err, &dndErr) {
				return err
			}
			return dnderr.Unavailable(err, "failed to create encounter").WithMeta(dnderr.MetaCombatID, encounter.ID())
		}
	}

	return dnderr.Aborted(fmt.Sprintf("game %s kept changing while creating encounter %s", gameID, encounter.ID())).
		WithMeta(dnderr.MetaCombatID, encounter.ID())
}

// unfinishedIn returns the ID of an unfinished encounter in the index, or ""
func unfinishedIn(ctx context.Context, c redis.Cmdable, indexKey string) (string, error) {
	ids, err := c.SMembers(ctx, indexKey).Result()
	if err != nil || len(ids) == 0 {
		return "", err
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = encounterKey(id)
	}
	values, err := c.MGet(ctx, keys...).Result()
	if err != nil {
		return "", err
	}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		stored, err := decode([]byte(raw))
		if err != nil {
			continue
		}
		if isUnfinished(stored) {
			return ids[i], nil
		}
	}
	return "", nil
}

// Get retrieves an encounter by ID
func (r *redisRepository) Get(ctx context.Context, id string) (*Encounter, error) {
	data, err := r.client.Get(ctx, encounterKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, dnderr.NotFoundf("encounter not found: %s", id).WithMeta(dnderr.MetaCombatID, id)
		}
		return nil, dnderr.Unavailable(err, "failed to get encounter").WithMeta(dnderr.MetaCombatID, id)
	}
	return decode(data)
}

// Update writes the encounter under WATCH so a concurrent writer aborts
// this one instead of being overwritten.
func (r *redisRepository) Update(ctx context.Context, encounter *Encounter) error {
	if err := validate(encounter); err != nil {
		return err
	}

	key := encounterKey(encounter.ID())
	expected := encounter.Combat.Version

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return dnderr.NotFoundf("encounter not found: %s", encounter.ID()).WithMeta(dnderr.MetaCombatID, encounter.ID())
			}
			return err
		}
		stored, err := decode(data)
		if err != nil {
			return err
		}
		if stored.Combat.Version != expected {
			return staleVersion(encounter.ID(), expected, stored.Combat.Version)
		}

		next := encounter.Clone()
		next.Combat.Version = expected + 1
		payload, err := json.Marshal(next)
		if err != nil {
			return dnderr.Wrap(err, "failed to serialize encounter")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			pipe.Expire(ctx, fmt.Sprintf(gameEncountersKey, encounter.Combat.GameID), r.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		switch {
		case err == nil:
			encounter.Combat.Version = expected + 1
			return nil
		case errors.Is(err, redis.TxFailedErr):
			// The key changed between WATCH and EXEC. Reread; the version
			// check decides whether this was a real conflict.
			log.Printf("Encounters: watch on %s failed, retrying (attempt %d)", key, attempt+1)
			continue
		default:
			var dndErr *dnderr.Error
			if errors.As(err, &dndErr) {
				return err
			}
			return dnderr.Unavailable(err, "failed to update encounter").WithMeta(dnderr.MetaCombatID, encounter.ID())
		}
	}

	return dnderr.Aborted(fmt.Sprintf("encounter %s kept changing during update", encounter.ID())).
		WithMeta(dnderr.MetaCombatID, encounter.ID())
}

// Delete removes an encounter
func (r *redisRepository) Delete(ctx context.Context, id string) error {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, encounterKey(id))
	pipe.SRem(ctx, fmt.Sprintf(gameEncountersKey, existing.Combat.GameID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Unavailable(err, "failed to delete encounter").WithMeta(dnderr.MetaCombatID, id)
	}
	return nil
}

// GetByGame retrieves all encounters for a game. Index entries whose
// encounter has expired are pruned.
func (r *redisRepository) GetByGame(ctx context.Context, gameID string) ([]*Encounter, error) {
	indexKey := fmt.Sprintf(gameEncountersKey, gameID)
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, dnderr.Unavailable(err, "failed to list encounters")
	}
	if len(ids) == 0 {
		return []*Encounter{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = encounterKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, dnderr.Unavailable(err, "failed to load encounters")
	}

	out := make([]*Encounter, 0, len(values))
	var expired []any
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			expired = append(expired, ids[i])
			continue
		}
		encounter, err := decode([]byte(raw))
		if err != nil {
			log.Printf("Encounters: skipping undecodable encounter %s: %v", ids[i], err)
			continue
		}
		out = append(out, encounter)
	}

	if len(expired) > 0 {
		if err := r.client.SRem(ctx, indexKey, expired...).Err(); err != nil {
			log.Printf("Encounters: failed to prune index %s: %v", indexKey, err)
		}
	}
	return out, nil
}

// GetActiveByGame retrieves the unfinished encounter for a game
func (r *redisRepository) GetActiveByGame(ctx context.Context, gameID string) (*Encounter, error) {
	all, err := r.GetByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	for _, encounter := range all {
		if isUnfinished(encounter) {
			return encounter, nil
		}
	}
	return nil, nil
}

func decode(data []byte) (*Encounter, error) {
	var encounter Encounter
	if err := json.Unmarshal(data, &encounter); err != nil {
		return nil, dnderr.Wrap(err, "failed to deserialize encounter")
	}
	if encounter.Combatants == nil {
		encounter.Combatants = map[string]*character.Combatant{}
	}
	return &encounter, nil
}
