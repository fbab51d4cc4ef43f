// Package discord posts combat log lines to a Discord channel.
package discord

//go:generate mockgen -destination=mock/mock_session.go -package=mockdiscord -source=discord.go

import (
	"context"
	"log"
	"strings"

	dnderr "github.com/KirkDiggler/dnd-combat-engine/internal/errors"
	"github.com/KirkDiggler/dnd-combat-engine/internal/events"
	"github.com/bwmarrin/discordgo"
)

// maxDescription is Discord's embed description limit
const maxDescription = 4096

const (
	ColorCombat = 0xe67e22
	ColorEnded  = 0x95a5a6
)

// Session is the part of *discordgo.Session the sink uses
type Session interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// ChannelResolver maps a game to the channel its log is posted in. An empty
// result skips the game.
type ChannelResolver func(gameID string) string

// StaticChannel posts every game to one channel
func StaticChannel(channelID string) ChannelResolver {
	return func(string) string { return channelID }
}

// Config holds sink dependencies
type Config struct {
	Session  Session
	Channels ChannelResolver
}

// Sink is an events.Broadcaster posting each batch as one embed
type Sink struct {
	session  Session
	channels ChannelResolver
}

// NewSink creates a Discord sink
func NewSink(cfg *Config) *Sink {
	if cfg == nil || cfg.Session == nil {
		panic("discord session is required")
	}
	if cfg.Channels == nil {
		panic("channel resolver is required")
	}
	return &Sink{session: cfg.Session, channels: cfg.Channels}
}

// Broadcast posts the formatted lines of the batch. Events without a
// message are skipped.
func (s *Sink) Broadcast(ctx context.Context, gameID string, evs []events.Event) error {
	channelID := s.channels(gameID)
	if channelID == "" {
		return nil
	}

	lines := make([]string, 0, len(evs))
	color := ColorCombat
	for _, e := range evs {
		if e.Kind == events.KindCombatEnded {
			color = ColorEnded
		}
		if e.Message != "" {
			lines = append(lines, e.Message)
		}
	}

	for _, description := range chunk(lines, maxDescription) {
		if err := ctx.Err(); err != nil {
			return err
		}
		embed := &discordgo.MessageEmbed{
			Type:        discordgo.EmbedTypeRich,
			Title:       "Combat Log",
			Description: description,
			Color:       color,
		}
		if _, err := s.session.ChannelMessageSendEmbed(channelID, embed); err != nil {
			log.Printf("Discord: failed to post to channel %s: %v", channelID, err)
			return dnderr.Unavailable(err, "failed to post combat log").WithMeta("channel", channelID)
		}
	}
	return nil
}

// chunk joins lines with newlines into pieces no longer than limit. A single
// line over the limit is truncated.
func chunk(lines []string, limit int) []string {
	var (
		out     []string
		current strings.Builder
	)
	for _, line := range lines {
		if len(line) > limit {
			line = line[:limit]
		}
		if current.Len() > 0 && current.Len()+1+len(line) > limit {
			out = append(out, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}
