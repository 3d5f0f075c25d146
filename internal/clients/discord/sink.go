// Package discord relays public chat messages to a Discord channel.
package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/errors"
	"github.com/KirkDiggler/vagabond-api/internal/i18n"
	"github.com/KirkDiggler/vagabond-api/internal/rolls"
	"github.com/KirkDiggler/vagabond-api/internal/services/chat"
)

const (
	colorDefault  = 0x4d96ff
	colorCritical = 0xf1c40f
)

// Sender is the part of *discordgo.Session the sink needs
type Sender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Config holds the sink dependencies
type Config struct {
	Session   Sender
	ChannelID string
	Localizer i18n.Localizer
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Session == nil {
		vb.RequiredField("Session")
	}
	if c.ChannelID == "" {
		vb.RequiredField("ChannelID")
	}

	return vb.Build()
}

// Sink posts chat messages as Discord embeds
type Sink struct {
	session   Sender
	channelID string
	loc       i18n.Localizer
}

// NewSink creates a Discord sink
func NewSink(cfg *Config) (*Sink, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	loc := cfg.Localizer
	if loc == nil {
		loc = i18n.DefaultLocalizer()
	}

	return &Sink{
		session:   cfg.Session,
		channelID: cfg.ChannelID,
		loc:       loc,
	}, nil
}

var _ chat.Sink = (*Sink)(nil)

// Send relays public messages and skips whispers
func (s *Sink) Send(ctx context.Context, msg *entities.ChatMessage) error {
	if msg == nil || len(msg.Whisper) > 0 {
		return nil
	}

	_, err := s.session.ChannelMessageSendEmbed(s.channelID, s.BuildEmbed(msg), discordgo.WithContext(ctx))
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to send discord message")
	}
	return nil
}

// BuildEmbed renders a chat message
func (s *Sink) BuildEmbed(msg *entities.ChatMessage) *discordgo.MessageEmbed {
	title := msg.Flavor
	if title == "" {
		title = msg.Speaker.Alias
	}

	embed := &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Title:       title,
		Description: msg.Content,
		Color:       colorDefault,
		Fields:      make([]*discordgo.MessageEmbedField, 0, len(msg.Rolls)),
	}
	if !msg.CreatedAt.IsZero() {
		embed.Timestamp = msg.CreatedAt.Format(time.RFC3339)
	}
	if msg.Speaker.Alias != "" && msg.Flavor != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: msg.Speaker.Alias}
	}

	tiers := rolls.ResultTiers()
	for _, r := range msg.Rolls {
		name := s.loc.Localize(rolls.Type(r.Type).Info().Label)
		if r.BaseRoll {
			name = s.loc.Localize("VAGABOND.Roll.Power.Base")
		}
		if r.Target != "" {
			name += " " + s.loc.Format("VAGABOND.Roll.Power.Target", map[string]string{"name": r.Target})
		}

		var value strings.Builder
		if r.Tier >= 1 && r.Tier <= len(tiers) {
			fmt.Fprintf(&value, "**%s** ", s.loc.Localize(tiers[r.Tier-1].Label))
		}
		fmt.Fprintf(&value, "%d", r.Total)
		if len(r.Dice) > 0 {
			faces := make([]string, len(r.Dice))
			for i, d := range r.Dice {
				faces[i] = fmt.Sprint(d)
			}
			fmt.Fprintf(&value, " [%s]", strings.Join(faces, ", "))
		}
		if r.Critical || r.Nat20 {
			value.WriteString(" " + s.loc.Localize("VAGABOND.Roll.Power.Critical"))
			embed.Color = colorCritical
		}

		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  value.String(),
			Inline: true,
		})
	}

	return embed
}

// NewSession opens a bot session for the token
func NewSession(token string) (*discordgo.Session, error) {
	if token == "" {
		return nil, errors.InvalidArgument("discord token is required")
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create discord session")
	}
	return session, nil
}
