// Package pubsub publishes stamped combat events on per-game Redis channels
// and relays them back out for the gateway.
package pubsub

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/KirkDiggler/dnd-combat-engine/internal/events"
	"github.com/redis/go-redis/v9"
)

// DefaultChannelPrefix is prepended to the game ID to form a channel name
const DefaultChannelPrefix = "game:"

// Config holds the Redis client and channel naming
type Config struct {
	Client        redis.UniversalClient
	ChannelPrefix string
}

func (c *Config) prefix() string {
	if c.ChannelPrefix == "" {
		return DefaultChannelPrefix
	}
	return c.ChannelPrefix
}

// Publisher is an events.Broadcaster writing to Redis pub/sub
type Publisher struct {
	client redis.UniversalClient
	prefix string
}

// NewPublisher creates a publisher
func NewPublisher(cfg *Config) *Publisher {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}
	return &Publisher{client: cfg.Client, prefix: cfg.prefix()}
}

// Channel returns the channel events for a game are published on
func (p *Publisher) Channel(gameID string) string {
	return p.prefix + gameID
}

// Broadcast publishes each event as JSON. The batch goes out in one
// pipeline so subscribers see it in order.
func (p *Publisher) Broadcast(ctx context.Context, gameID string, evs []events.Event) error {
	if len(evs) == 0 {
		return nil
	}

	channel := p.Channel(gameID)
	pipe := p.client.Pipeline()
	for _, e := range evs {
		data, err := json.Marshal(e)
		if err != nil {
			return dnderr.Wrapf(err, "failed to encode event %s", e.Kind)
		}
		pipe.Publish(ctx, channel, data)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Unavailable(err, "failed to publish events").WithMeta("channel", channel)
	}
	return nil
}

// Handler receives relayed events
type Handler func(gameID string, ev events.Event)

// Subscription listens on every game channel
type Subscription struct {
	sub    *redis.PubSub
	prefix string
}

// Subscribe opens a pattern subscription over all game channels. It returns
// once Redis has confirmed the subscription.
func Subscribe(ctx context.Context, cfg *Config) (*Subscription, error) {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}

	prefix := cfg.prefix()
	sub := cfg.Client.PSubscribe(ctx, prefix+"*")
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, dnderr.Unavailable(err, "failed to subscribe to game channels")
	}

	log.Printf("EventBus: subscribed to %s*", prefix)
	return &Subscription{sub: sub, prefix: prefix}, nil
}

// Run delivers events to the handler until ctx is done or the subscription
// closes. Messages that do not decode are logged and skipped.
func (s *Subscription) Run(ctx context.Context, handler Handler) error {
	ch := s.sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var ev events.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("EventBus: dropping undecodable message on %s: %v", msg.Channel, err)
				continue
			}
			handler(strings.TrimPrefix(msg.Channel, s.prefix), ev)
		}
	}
}

// Close ends the subscription
func (s *Subscription) Close() error {
	return s.sub.Close()
}
