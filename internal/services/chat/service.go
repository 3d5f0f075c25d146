// Package chat posts messages to the world chat log, applying roll mode
// visibility and relaying to external sinks.
package chat

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/errors"
	chatlog "github.com/KirkDiggler/vagabond-api/internal/repositories/chat_log"
	"github.com/KirkDiggler/vagabond-api/internal/repositories/users"
)

//go:generate mockgen -destination=mock/mock_service.go -package=chatmock github.com/KirkDiggler/vagabond-api/internal/services/chat Service,Sink

// Service defines the chat operations
type Service interface {
	Post(ctx context.Context, input *PostInput) (*PostOutput, error)
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
}

// Sink receives every stored message, for relays such as Discord
type Sink interface {
	Send(ctx context.Context, msg *entities.ChatMessage) error
}

// PostInput contains the message to post. RollMode defaults to public.
type PostInput struct {
	Message  *entities.ChatMessage
	RollMode entities.RollMode
}

// PostOutput contains the stored message
type PostOutput struct {
	Message *entities.ChatMessage
}

// ListInput contains parameters for reading the log as a viewer
type ListInput struct {
	// Viewer filters out whispers they cannot read; nil sees only public messages
	Viewer *entities.User
	Limit  int
}

// ListOutput contains the visible messages oldest first
type ListOutput struct {
	Messages []*entities.ChatMessage
}

// Config holds the service dependencies
type Config struct {
	ChatLog chatlog.Repository
	Users   users.Repository
	Sinks   []Sink
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.ChatLog == nil {
		vb.RequiredField("ChatLog")
	}
	if c.Users == nil {
		vb.RequiredField("Users")
	}
	for i, sink := range c.Sinks {
		if sink == nil {
			vb.Fieldf("Sinks", "sink %d is nil", i)
		}
	}

	return vb.Build()
}

type service struct {
	chatLog chatlog.Repository
	users   users.Repository
	sinks   []Sink
}

// NewService creates a chat service
func NewService(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &service{
		chatLog: cfg.ChatLog,
		users:   cfg.Users,
		sinks:   append([]Sink(nil), cfg.Sinks...),
	}, nil
}

// Post stores a message. Sink failures are logged and do not fail the post.
func (s *service) Post(ctx context.Context, input *PostInput) (*PostOutput, error) {
	if input == nil || input.Message == nil {
		return nil, errors.InvalidArgument("message is required")
	}

	mode := input.RollMode
	if mode == "" {
		mode = entities.RollModePublic
	}
	if !mode.Valid() {
		return nil, errors.InvalidArgumentf("unknown roll mode %q", mode)
	}

	msg := *input.Message
	if err := s.applyRollMode(ctx, &msg, mode); err != nil {
		return nil, err
	}

	created, err := s.chatLog.Create(ctx, chatlog.CreateInput{Message: &msg})
	if err != nil {
		return nil, errors.Wrap(err, "failed to store chat message")
	}

	for _, sink := range s.sinks {
		if err := sink.Send(ctx, created.Message); err != nil {
			slog.Warn("Chat sink failed",
				"message_id", created.Message.ID,
				"error", err,
			)
		}
	}

	slog.Info("Chat message posted",
		"message_id", created.Message.ID,
		"author", created.Message.Author,
		"roll_mode", mode,
		"rolls", len(created.Message.Rolls),
	)

	return &PostOutput{Message: created.Message}, nil
}

// applyRollMode sets whisper recipients and blindness. Private and blind
// rolls go to every GM, self rolls only to the author.
func (s *service) applyRollMode(ctx context.Context, msg *entities.ChatMessage, mode entities.RollMode) error {
	msg.RollMode = mode
	msg.Whisper = nil
	msg.Blind = false

	switch mode {
	case entities.RollModePrivate, entities.RollModeBlind:
		gms, err := s.gmIDs(ctx)
		if err != nil {
			return err
		}
		msg.Whisper = gms
		msg.Blind = mode == entities.RollModeBlind
	case entities.RollModeSelf:
		if msg.Author == "" {
			return errors.InvalidArgument("self rolls require an author")
		}
		msg.Whisper = []string{msg.Author}
	}
	return nil
}

func (s *service) gmIDs(ctx context.Context) ([]string, error) {
	all, err := s.users.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	var ids []string
	for _, u := range all {
		if u.IsGM {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

// List returns the messages the viewer can read
func (s *service) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		input = &ListInput{}
	}

	out, err := s.chatLog.List(ctx, chatlog.ListInput{Limit: input.Limit})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list chat messages")
	}

	visible := make([]*entities.ChatMessage, 0, len(out.Messages))
	for _, msg := range out.Messages {
		if msg.VisibleTo(input.Viewer) {
			visible = append(visible, msg)
		}
	}

	return &ListOutput{Messages: visible}, nil
}
