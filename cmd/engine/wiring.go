package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dnd-combat-engine/internal/broadcast/discord"
	"github.com/KirkDiggler/dnd-combat-engine/internal/broadcast/pubsub"
	"github.com/KirkDiggler/dnd-combat-engine/internal/catalog"
	"github.com/KirkDiggler/dnd-combat-engine/internal/config"
	"github.com/KirkDiggler/dnd-combat-engine/internal/dice"
	"github.com/KirkDiggler/dnd-combat-engine/internal/events"
	"github.com/KirkDiggler/dnd-combat-engine/internal/repositories/combatants"
	"github.com/KirkDiggler/dnd-combat-engine/internal/repositories/encounters"
	"github.com/KirkDiggler/dnd-combat-engine/internal/services"
	"github.com/KirkDiggler/dnd-combat-engine/internal/services/encounter"
)

// engine holds everything a command needs to run encounters
type engine struct {
	redis       *redis.Client
	discord     *discordgo.Session
	service     encounter.Service
	broadcaster *events.FanOut
	bus         *events.Bus
}

func (e *engine) Close() {
	if e.discord != nil {
		_ = e.discord.Close()
	}
	if e.redis != nil {
		_ = e.redis.Close()
	}
}

// connectRedis returns nil when Redis is not configured
func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("Connected to Redis at %s", opts.Addr)
	return client, nil
}

// buildEngine wires repositories, sinks and the encounter service from
// config. Every batch also goes through the in-process bus.
func buildEngine(ctx context.Context, cfg *config.Config) (*engine, error) {
	e := &engine{bus: events.NewBus()}

	client, err := connectRedis(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	e.redis = client

	var (
		encounterRepo encounters.Repository
		combatantRepo combatants.Repository
	)
	if client != nil {
		encounterRepo = encounters.NewRedisRepository(&encounters.RedisRepoConfig{Client: client, TTL: cfg.Encounter.TTL})
		combatantRepo = combatants.NewRedisRepository(&combatants.RedisRepoConfig{Client: client})
	} else {
		log.Println("Using in-memory repositories")
	}

	cat, err := catalog.LoadWithOverride(cfg.Catalog.Path)
	if err != nil {
		e.Close()
		return nil, err
	}

	e.broadcaster = events.NewFanOut(events.Sink{Name: "bus", Broadcaster: &events.BusBroadcaster{Bus: e.bus}})
	if client != nil {
		e.broadcaster.Add(events.Sink{
			Name:        "redis",
			Broadcaster: pubsub.NewPublisher(&pubsub.Config{Client: client, ChannelPrefix: cfg.Redis.ChannelPrefix}),
		})
	}
	if cfg.Discord.Enabled() {
		dg, err := discordgo.New("Bot " + cfg.Discord.Token)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("failed to create Discord session: %w", err)
		}
		e.discord = dg
		e.broadcaster.Add(events.Sink{
			Name: "discord",
			Broadcaster: discord.NewSink(&discord.Config{
				Session:  dg,
				Channels: discord.StaticChannel(cfg.Discord.ChannelID),
			}),
		})
	}

	provider, err := services.NewProvider(&services.ProviderConfig{
		EncounterRepository: encounterRepo,
		CombatantRepository: combatantRepo,
		Catalog:             cat,
		Roller:              dice.NewRandomRoller(),
		Broadcaster:         e.broadcaster,
	})
	if err != nil {
		e.Close()
		return nil, err
	}
	e.service = provider.EncounterService
	return e, nil
}
