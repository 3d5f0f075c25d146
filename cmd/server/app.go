package main

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/KirkDiggler/vagabond-api/internal/clients/discord"
	"github.com/KirkDiggler/vagabond-api/internal/config"
	"github.com/KirkDiggler/vagabond-api/internal/dialogs"
	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/errors"
	"github.com/KirkDiggler/vagabond-api/internal/events"
	"github.com/KirkDiggler/vagabond-api/internal/i18n"
	"github.com/KirkDiggler/vagabond-api/internal/orchestrators/powerroll"
	"github.com/KirkDiggler/vagabond-api/internal/orchestrators/resources"
	"github.com/KirkDiggler/vagabond-api/internal/pkg/clock"
	"github.com/KirkDiggler/vagabond-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/vagabond-api/internal/redis"
	"github.com/KirkDiggler/vagabond-api/internal/repositories/actors"
	chatlog "github.com/KirkDiggler/vagabond-api/internal/repositories/chat_log"
	"github.com/KirkDiggler/vagabond-api/internal/repositories/settings"
	"github.com/KirkDiggler/vagabond-api/internal/repositories/users"
	"github.com/KirkDiggler/vagabond-api/internal/rules"
	"github.com/KirkDiggler/vagabond-api/internal/services/chat"
	"github.com/KirkDiggler/vagabond-api/internal/socket"
)

// app holds the wired dependencies shared by every command
type app struct {
	cfg       *config.Config
	client    redisclient.Client
	localizer i18n.Localizer
	bus       events.Bus

	users     users.Repository
	actors    actors.Repository
	chat      chat.Service
	socket    *socket.Handler
	powerRoll powerroll.Service
	resources resources.Service
}

// newApp connects to Redis and builds the services. The dialog is used for
// prompts that do not bring their own.
func newApp(ctx context.Context, cfg *config.Config, dialog dialogs.Dialog) (*app, error) {
	client, err := redisclient.NewClient(cfg.Redis.URL, &redisclient.Options{
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid redis configuration")
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis is unreachable")
	}

	a := &app{
		cfg:       cfg,
		client:    client,
		localizer: cfg.Localizer(),
		bus:       events.NewBus(),
	}
	if err := a.wire(dialog); err != nil {
		_ = client.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) wire(dialog dialogs.Dialog) error {
	var err error
	ruleset := rules.Default()

	if a.users, err = users.NewRedisRepository(&users.Config{Client: a.client}); err != nil {
		return err
	}
	if a.actors, err = actors.NewRedisRepository(&actors.Config{Client: a.client}); err != nil {
		return err
	}
	settingsRepo, err := settings.NewRedisRepository(&settings.Config{Client: a.client})
	if err != nil {
		return err
	}
	chatLog, err := chatlog.NewRedisRepository(&chatlog.Config{
		Client:      a.client,
		Clock:       clock.New(),
		IDGenerator: idgen.NewUUID("msg"),
	})
	if err != nil {
		return err
	}

	var sinks []chat.Sink
	if a.cfg.Discord.Enabled() {
		session, err := discord.NewSession(a.cfg.Discord.Token)
		if err != nil {
			return err
		}
		sink, err := discord.NewSink(&discord.Config{
			Session:   session,
			ChannelID: a.cfg.Discord.ChannelID,
			Localizer: a.localizer,
		})
		if err != nil {
			return err
		}
		sinks = append(sinks, sink)
		slog.Info("Discord relay enabled", "channel_id", a.cfg.Discord.ChannelID)
	}

	if a.chat, err = chat.NewService(&chat.Config{ChatLog: chatLog, Users: a.users, Sinks: sinks}); err != nil {
		return err
	}

	channel, err := socket.NewRedisChannel(&socket.RedisConfig{Client: a.client})
	if err != nil {
		return err
	}
	participantID := a.cfg.ParticipantID
	if participantID == "" {
		participantID = uuid.NewString()
	}
	if a.socket, err = socket.NewHandler(&socket.HandlerConfig{Channel: channel, ParticipantID: participantID}); err != nil {
		return err
	}

	resolver, err := actors.NewResolver(a.actors)
	if err != nil {
		return err
	}

	if a.powerRoll, err = powerroll.NewOrchestrator(&powerroll.Config{
		Dialog:          dialog,
		Chat:            a.chat,
		Rules:           ruleset,
		Localizer:       a.localizer,
		EventBus:        a.bus,
		SpeakerResolver: resolver,
		TargetResolver:  resolver,
	}); err != nil {
		return err
	}

	if a.resources, err = resources.NewOrchestrator(&resources.Config{
		Settings:      settingsRepo,
		Users:         a.users,
		Chat:          a.chat,
		Rules:         ruleset,
		Emitter:       a.socket,
		Authoritative: a.cfg.Director,
		Registrar:     a.socket,
		Localizer:     a.localizer,
		EventBus:      a.bus,
	}); err != nil {
		return err
	}

	return nil
}

// currentUser loads the configured user; unknown ids act as plain players,
// except the director who is always a GM
func (a *app) currentUser(ctx context.Context) (*entities.User, error) {
	user, err := a.users.Get(ctx, a.cfg.UserID)
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, err
		}
		user = &entities.User{ID: a.cfg.UserID, Name: a.cfg.UserID}
	}
	if a.cfg.Director {
		user.IsGM = true
		user.IsActiveGM = true
	}
	return user, nil
}

func (a *app) resolveActor(ctx context.Context, id string) (*entities.Actor, error) {
	out, err := a.actors.Get(ctx, actors.GetInput{ID: id})
	if err != nil {
		return nil, err
	}
	return out.Actor, nil
}

func (a *app) close() {
	if err := a.client.Close(); err != nil {
		slog.Warn("Failed to close redis client", "error", err)
	}
}
