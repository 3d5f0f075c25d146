// Package resources owns the party's hero tokens and the director's malice.
// Spends are requested over the socket by any participant and applied only
// by the active director, the single writer for both counters.
package resources

//go:generate mockgen -destination=mock/mock_service.go -package=resourcesmock github.com/KirkDiggler/vagabond-api/internal/orchestrators/resources Service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/errors"
	"github.com/KirkDiggler/vagabond-api/internal/events"
	"github.com/KirkDiggler/vagabond-api/internal/i18n"
	"github.com/KirkDiggler/vagabond-api/internal/repositories/settings"
	"github.com/KirkDiggler/vagabond-api/internal/repositories/users"
	"github.com/KirkDiggler/vagabond-api/internal/rules"
	"github.com/KirkDiggler/vagabond-api/internal/services/chat"
	"github.com/KirkDiggler/vagabond-api/internal/socket"
)

const (
	labelBadSpend     = "VAGABOND.Setting.HeroTokens.WarnDirectorBadSpend"
	labelTokensGMOnly = "VAGABOND.Setting.HeroTokens.GMOnly"
	labelMaliceGMOnly = "VAGABOND.Setting.Malice.GMOnly"
)

// Service defines the resource operations
type Service interface {
	GetResources(ctx context.Context) (*GetResourcesOutput, error)

	// RequestHeroTokenSpend is the entry point for any participant
	RequestHeroTokenSpend(ctx context.Context, input *RequestHeroTokenSpendInput) (*RequestHeroTokenSpendOutput, error)

	// HandleSpendHeroToken applies a spend; only the authoritative participant may call it
	HandleSpendHeroToken(ctx context.Context, input *HandleSpendHeroTokenInput) (*HandleSpendHeroTokenOutput, error)

	// UpdateMalice and SetHeroTokens are director-only direct calls
	UpdateMalice(ctx context.Context, input *UpdateMaliceInput) (*UpdateMaliceOutput, error)
	SetHeroTokens(ctx context.Context, input *SetHeroTokensInput) (*SetHeroTokensOutput, error)

	// WatchSettings republishes setting changes on the hook bus until ctx ends
	WatchSettings(ctx context.Context) error
}

// Emitter broadcasts socket envelopes
type Emitter interface {
	Emit(ctx context.Context, envType string, payload any) error
}

// Registrar accepts socket handlers
type Registrar interface {
	Register(envType string, fn socket.HandlerFunc)
}

// Config holds the dependencies for the resources orchestrator
type Config struct {
	Settings settings.Repository
	Users    users.Repository
	Chat     chat.Service
	Rules    *rules.Rules
	Emitter  Emitter

	// Authoritative marks the active director session. Only it registers the
	// spend handler and writes counters.
	Authoritative bool

	// Optional
	Registrar Registrar
	Notifier  Notifier
	Localizer i18n.Localizer
	EventBus  events.Bus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Settings == nil {
		vb.RequiredField("Settings")
	}
	if c.Users == nil {
		vb.RequiredField("Users")
	}
	if c.Chat == nil {
		vb.RequiredField("Chat")
	}
	if c.Rules == nil {
		vb.RequiredField("Rules")
	}
	if c.Emitter == nil {
		vb.RequiredField("Emitter")
	}

	return vb.Build()
}

type orchestrator struct {
	settings      settings.Repository
	users         users.Repository
	chat          chat.Service
	rules         *rules.Rules
	emitter       Emitter
	authoritative bool
	notifier      Notifier
	loc           i18n.Localizer
	bus           events.Bus

	// serializes read-modify-write of the counters
	mu sync.Mutex
}

// NewOrchestrator creates a new resources orchestrator. When authoritative it
// registers the spend handler with the registrar.
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		settings:      cfg.Settings,
		users:         cfg.Users,
		chat:          cfg.Chat,
		rules:         cfg.Rules,
		emitter:       cfg.Emitter,
		authoritative: cfg.Authoritative,
		notifier:      cfg.Notifier,
		loc:           cfg.Localizer,
		bus:           cfg.EventBus,
	}
	if o.notifier == nil {
		o.notifier = LogNotifier{}
	}
	if o.loc == nil {
		o.loc = i18n.DefaultLocalizer()
	}

	if o.authoritative && cfg.Registrar != nil {
		cfg.Registrar.Register(socket.TypeSpendHeroToken, o.handleSpendEnvelope)
	}

	return o, nil
}

func (o *orchestrator) handleSpendEnvelope(ctx context.Context, raw json.RawMessage) error {
	var payload socket.SpendHeroTokenPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed spend payload")
	}

	_, err := o.HandleSpendHeroToken(ctx, &HandleSpendHeroTokenInput{
		UserID:    payload.UserID,
		SpendType: payload.SpendType,
		Flavor:    payload.Flavor,
	})
	return err
}

// GetResources reads both counters
func (o *orchestrator) GetResources(ctx context.Context) (*GetResourcesOutput, error) {
	tokens, err := o.settings.Get(ctx, settings.GetInput{Name: settings.HeroTokens})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read hero tokens")
	}
	malice, err := o.settings.Get(ctx, settings.GetInput{Name: settings.Malice})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read malice")
	}

	return &GetResourcesOutput{
		Resources: Resources{
			HeroTokens: tokens.Counter.Value,
			Malice:     malice.Counter.Value,
		},
	}, nil
}

// RequestHeroTokenSpend routes a spend to the authoritative participant
func (o *orchestrator) RequestHeroTokenSpend(ctx context.Context, input *RequestHeroTokenSpendInput) (*RequestHeroTokenSpendOutput, error) {
	if input == nil || input.User == nil || input.User.ID == "" {
		return nil, errors.InvalidArgument("user is required")
	}
	if input.SpendType == "" {
		return nil, errors.InvalidArgument("spend type is required")
	}

	// the socket never echoes to the sender, so the director handles its own requests
	if o.authoritative {
		result, err := o.HandleSpendHeroToken(ctx, &HandleSpendHeroTokenInput{
			UserID:    input.User.ID,
			SpendType: input.SpendType,
			Flavor:    input.Flavor,
		})
		if err != nil {
			return nil, err
		}
		return &RequestHeroTokenSpendOutput{Result: result}, nil
	}

	if err := o.emitter.Emit(ctx, socket.TypeSpendHeroToken, socket.SpendHeroTokenPayload{
		UserID:    input.User.ID,
		SpendType: input.SpendType,
		Flavor:    input.Flavor,
	}); err != nil {
		return nil, errors.Wrap(err, "failed to request hero token spend")
	}

	slog.Info("Hero token spend requested",
		"user_id", input.User.ID,
		"spend_type", input.SpendType,
	)

	return &RequestHeroTokenSpendOutput{Broadcast: true}, nil
}

// HandleSpendHeroToken applies a spend. A short balance warns the director
// and leaves everything unchanged; the requester is not told.
func (o *orchestrator) HandleSpendHeroToken(ctx context.Context, input *HandleSpendHeroTokenInput) (*HandleSpendHeroTokenOutput, error) {
	if !o.authoritative {
		return nil, errors.FailedPrecondition("only the active director applies hero token spends")
	}
	if input == nil || input.UserID == "" {
		return nil, errors.InvalidArgument("user ID is required")
	}

	sender, err := o.users.Get(ctx, input.UserID)
	if err != nil && !errors.IsNotFound(err) {
		return nil, errors.Wrapf(err, "failed to look up user %s", input.UserID)
	}
	senderName := input.UserID
	if sender != nil && sender.Name != "" {
		senderName = sender.Name
	}

	spend, ok := o.rules.TokenSpend(input.SpendType)
	if !ok {
		return nil, errors.InvalidArgumentf("invalid spend type %q sent by %s", input.SpendType, senderName)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	current, err := o.settings.Get(ctx, settings.GetInput{Name: settings.HeroTokens})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read hero tokens")
	}
	balance := current.Counter.Value

	if balance < spend.Tokens {
		warning := o.loc.Format(labelBadSpend, map[string]string{"name": senderName})
		o.notifier.Error(ctx, warning)
		return &HandleSpendHeroTokenOutput{
			Balance: balance,
			Warning: warning,
		}, nil
	}

	updated, err := o.settings.Set(ctx, settings.SetInput{
		Name:    settings.HeroTokens,
		Counter: settings.Counter{Value: balance - spend.Tokens},
		UserID:  input.UserID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to spend hero tokens")
	}

	flavor := input.Flavor
	if flavor == "" && sender != nil {
		flavor = sender.CharacterName
	}

	posted, err := o.chat.Post(ctx, &chat.PostInput{
		Message: &entities.ChatMessage{
			Author:  input.UserID,
			Speaker: entities.Speaker{Alias: senderName},
			Content: o.loc.Localize(spend.MessageContent),
			Flavor:  flavor,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to announce hero token spend")
	}

	var source core.Entity
	if sender != nil {
		source = events.WrapUser(sender)
	}
	o.emit(ctx, events.EventHeroTokenSpent, source, events.SettingEntity(settings.HeroTokens), map[string]any{
		events.ContextSpendType: spend.Key,
		events.ContextTokens:    spend.Tokens,
		events.ContextValue:     updated.Counter.Value,
	})

	slog.Info("Hero tokens spent",
		"user_id", input.UserID,
		"spend_type", spend.Key,
		"tokens", spend.Tokens,
		"balance", updated.Counter.Value,
	)

	return &HandleSpendHeroTokenOutput{
		Spent:   true,
		Balance: updated.Counter.Value,
		Message: posted.Message,
	}, nil
}

// requireDirector guards direct counter writes. The caller must be a GM and
// this session must be the single authoritative writer.
func (o *orchestrator) requireDirector(user *entities.User, label string) error {
	if user == nil || !user.IsGM {
		return errors.PermissionDenied(o.loc.Localize(label))
	}
	if !o.authoritative {
		return errors.FailedPrecondition("only the active director session writes world counters")
	}
	return nil
}

// UpdateMalice adds delta to the malice counter
func (o *orchestrator) UpdateMalice(ctx context.Context, input *UpdateMaliceInput) (*UpdateMaliceOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := o.requireDirector(input.User, labelMaliceGMOnly); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	current, err := o.settings.Get(ctx, settings.GetInput{Name: settings.Malice})
	if err != nil {
		return nil, errors.Wrap(err, "failed to read malice")
	}

	updated, err := o.settings.Set(ctx, settings.SetInput{
		Name:    settings.Malice,
		Counter: settings.Counter{Value: current.Counter.Value + input.Delta},
		UserID:  input.User.ID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update malice")
	}

	return &UpdateMaliceOutput{
		Previous: current.Counter.Value,
		Malice:   updated.Counter.Value,
	}, nil
}

// SetHeroTokens replaces the hero token balance
func (o *orchestrator) SetHeroTokens(ctx context.Context, input *SetHeroTokensInput) (*SetHeroTokensOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := o.requireDirector(input.User, labelTokensGMOnly); err != nil {
		return nil, err
	}
	if input.Value < 0 {
		return nil, errors.InvalidArgument("hero tokens cannot be negative")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	updated, err := o.settings.Set(ctx, settings.SetInput{
		Name:    settings.HeroTokens,
		Counter: settings.Counter{Value: input.Value},
		UserID:  input.User.ID,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to set hero tokens")
	}

	return &SetHeroTokensOutput{
		Previous:   updated.Previous.Value,
		HeroTokens: updated.Counter.Value,
	}, nil
}

// WatchSettings feeds setting changes into the hook bus
func (o *orchestrator) WatchSettings(ctx context.Context) error {
	changes, stop, err := o.settings.Watch(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to watch settings")
	}
	defer stop()

	slog.Info("Settings watcher started")

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			o.emit(ctx, events.EventSettingChanged, nil, events.SettingEntity(change.Name), map[string]any{
				events.ContextSetting: change.Name,
				events.ContextValue:   change.Counter.Value,
			})
		}
	}
}

func (o *orchestrator) emit(ctx context.Context, eventType string, source, target core.Entity, data map[string]any) {
	if o.bus == nil {
		return
	}
	if _, err := events.Emit(ctx, o.bus, eventType, source, target, data); err != nil {
		slog.Warn("Failed to publish hook",
			"event", eventType,
			"error", err,
		)
	}
}
