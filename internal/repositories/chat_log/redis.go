package chatlog

import (
	"context"
	"encoding/json"

	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/errors"
	"github.com/KirkDiggler/vagabond-api/internal/pkg/clock"
	"github.com/KirkDiggler/vagabond-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/vagabond-api/internal/redis"
)

const (
	// Messages are kept in one list, oldest at the head
	chatLogKey = "chat_log:messages"

	// defaultMaxMessages trims the log so it cannot grow without bound
	defaultMaxMessages = 500

	errMessageNil = "message cannot be nil"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client      redisclient.Client
	Clock       clock.Clock
	IDGenerator idgen.Generator

	// MaxMessages defaults to 500
	MaxMessages int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.MaxMessages < 0 {
		vb.InvalidField("MaxMessages", "must not be negative")
	}

	return vb.Build()
}

type redisRepository struct {
	client      redisclient.Client
	clock       clock.Clock
	idGen       idgen.Generator
	maxMessages int
}

// NewRedisRepository creates a new Redis repository for the chat log
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	maxMessages := cfg.MaxMessages
	if maxMessages == 0 {
		maxMessages = defaultMaxMessages
	}

	return &redisRepository{
		client:      cfg.Client,
		clock:       cfg.Clock,
		idGen:       cfg.IDGenerator,
		maxMessages: maxMessages,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Create appends a message and trims the log to its maximum length
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Message == nil {
		return nil, errors.InvalidArgument(errMessageNil)
	}

	msg := *input.Message
	msg.ID = r.idGen.Generate()
	msg.CreatedAt = r.clock.Now()

	data, err := json.Marshal(&msg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal chat message")
	}

	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, chatLogKey, data)
	pipe.LTrim(ctx, chatLogKey, int64(-r.maxMessages), -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to store chat message in Redis")
	}

	return &CreateOutput{Message: &msg}, nil
}

// List reads messages oldest first
func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if input.Limit < 0 {
		return nil, errors.InvalidArgument("limit must not be negative")
	}

	start := int64(0)
	if input.Limit > 0 {
		start = int64(-input.Limit)
	}

	raw, err := r.client.LRange(ctx, chatLogKey, start, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list chat messages from Redis")
	}

	messages := make([]*entities.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg entities.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal chat message")
		}
		messages = append(messages, &msg)
	}

	return &ListOutput{Messages: messages}, nil
}

// Clear removes every message
func (r *redisRepository) Clear(ctx context.Context) (*ClearOutput, error) {
	count, err := r.client.LLen(ctx, chatLogKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to count chat messages")
	}

	if err := r.client.Del(ctx, chatLogKey).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to clear chat log")
	}

	return &ClearOutput{MessagesDeleted: int(count)}, nil
}
