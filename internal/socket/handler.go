package socket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/vagabond-api/internal/errors"
)

// Envelope types
const (
	TypeSpendHeroToken = "spendHeroToken"
)

// SpendHeroTokenPayload asks the authoritative participant to spend hero
// tokens on behalf of UserID.
type SpendHeroTokenPayload struct {
	UserID    string `json:"userId"`
	SpendType string `json:"spendType"`
	Flavor    string `json:"flavor,omitempty"`
}

// HandlerFunc processes one envelope payload
type HandlerFunc func(ctx context.Context, payload json.RawMessage) error

// HandlerConfig holds the handler dependencies
type HandlerConfig struct {
	Channel Channel

	// ParticipantID tags emits so this participant skips its own echoes
	ParticipantID string
}

// Validate ensures all required dependencies are provided
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Channel == nil {
		vb.RequiredField("Channel")
	}
	if c.ParticipantID == "" {
		vb.RequiredField("ParticipantID")
	}

	return vb.Build()
}

// Handler dispatches envelopes by type
type Handler struct {
	channel       Channel
	participantID string

	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// NewHandler creates a handler with no registered types
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{
		channel:       cfg.Channel,
		participantID: cfg.ParticipantID,
		handlers:      map[string]HandlerFunc{},
	}, nil
}

// Register sets the function for an envelope type, replacing any previous one
func (h *Handler) Register(envType string, fn HandlerFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[envType] = fn
}

// Emit broadcasts payload to every other participant
func (h *Handler) Emit(ctx context.Context, envType string, payload any) error {
	if envType == "" {
		return errors.InvalidArgument("envelope type is required")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s payload", envType)
	}

	if err := h.channel.Publish(ctx, Envelope{
		Type:    envType,
		Payload: data,
		Sender:  h.participantID,
	}); err != nil {
		return errors.Wrapf(err, "failed to emit %s", envType)
	}

	slog.Debug("Socket envelope emitted",
		"type", envType,
		"participant_id", h.participantID,
	)
	return nil
}

// Listen dispatches envelopes until ctx ends. Handler failures and unknown
// types are logged and the envelope is dropped.
func (h *Handler) Listen(ctx context.Context) error {
	envelopes, stop, err := h.channel.Subscribe(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to subscribe to socket")
	}
	defer stop()

	slog.Info("Socket listener started", "participant_id", h.participantID)

	for {
		select {
		case <-ctx.Done():
			return nil
		case env, ok := <-envelopes:
			if !ok {
				return nil
			}
			h.Dispatch(ctx, env)
		}
	}
}

// Dispatch handles one envelope
func (h *Handler) Dispatch(ctx context.Context, env Envelope) {
	if env.Sender != "" && env.Sender == h.participantID {
		return
	}

	h.mu.RLock()
	fn, ok := h.handlers[env.Type]
	h.mu.RUnlock()

	if !ok {
		slog.Error("Unknown socket envelope type",
			"type", env.Type,
			"sender", env.Sender,
		)
		return
	}

	if err := fn(ctx, env.Payload); err != nil {
		slog.Error("Socket handler failed",
			"type", env.Type,
			"sender", env.Sender,
			"error", err,
		)
	}
}
