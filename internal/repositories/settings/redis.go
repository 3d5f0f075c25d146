package settings

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/vagabond-api/internal/errors"
	redisclient "github.com/KirkDiggler/vagabond-api/internal/redis"
)

const (
	// Key pattern: settings:vagabond:{name}
	settingKeyPrefix = "settings:vagabond:"

	// ChangeChannel carries Change messages to every participant
	ChangeChannel = "system.vagabond.settings"

	errNameEmpty = "setting name cannot be empty"

	// maxSetAttempts bounds optimistic retries when another writer touches
	// the key between WATCH and EXEC
	maxSetAttempts = 5
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}

	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
}

// NewRedisRepository creates a new Redis repository for world settings
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func validateName(name string) error {
	if name == "" {
		return errors.InvalidArgument(errNameEmpty)
	}
	if !slices.Contains(Names(), name) {
		return errors.InvalidArgumentf("setting %q is not registered", name)
	}
	return nil
}

// Get reads a setting, defaulting to zero when it has never been written
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if err := validateName(input.Name); err != nil {
		return nil, err
	}

	counter, err := read(ctx, r.client, input.Name)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Counter: counter}, nil
}

// getter is satisfied by both the client and a WATCH transaction
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func read(ctx context.Context, c getter, name string) (Counter, error) {
	raw, err := c.Get(ctx, settingKeyPrefix+name).Result()
	if err != nil {
		if err == redis.Nil {
			return Counter{}, nil
		}
		return Counter{}, errors.Wrapf(err, "failed to get setting %s from Redis", name)
	}

	var counter Counter
	if err := json.Unmarshal([]byte(raw), &counter); err != nil {
		return Counter{}, errors.Wrapf(err, "failed to unmarshal setting %s", name)
	}
	return counter, nil
}

// Set writes a setting and publishes the change. The read of the previous
// value and the write run under WATCH so Previous is the value actually
// replaced.
func (r *redisRepository) Set(ctx context.Context, input SetInput) (*SetOutput, error) {
	if err := validateName(input.Name); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Counter)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal setting %s", input.Name)
	}

	key := settingKeyPrefix + input.Name
	var previous Counter
	txf := func(tx *redis.Tx) error {
		prev, err := read(ctx, tx, input.Name)
		if err != nil {
			return err
		}
		previous = prev

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}

	stored := false
	for attempt := 0; attempt < maxSetAttempts; attempt++ {
		err = r.client.Watch(ctx, txf, key)
		if err == nil {
			stored = true
			break
		}
		if err != redis.TxFailedErr {
			return nil, errors.Wrapf(err, "failed to store setting %s in Redis", input.Name)
		}
	}
	if !stored {
		return nil, errors.Unavailable("setting " + input.Name + " is changing concurrently, try again")
	}

	change, err := json.Marshal(Change{Name: input.Name, Counter: input.Counter, UserID: input.UserID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal setting change")
	}
	if err := r.client.Publish(ctx, ChangeChannel, change).Err(); err != nil {
		// the stored value stands; watchers pick it up on their next read
		slog.Warn("Failed to publish setting change",
			"setting", input.Name,
			"error", err,
		)
	}

	return &SetOutput{
		Previous: previous,
		Counter:  input.Counter,
	}, nil
}

// Watch subscribes to setting changes
func (r *redisRepository) Watch(ctx context.Context) (<-chan Change, func(), error) {
	pubsub := r.client.Subscribe(ctx, ChangeChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, errors.Wrap(err, "failed to subscribe to setting changes")
	}

	out := make(chan Change)
	done := make(chan struct{})
	go func() {
		defer close(out)
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var change Change
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					slog.Error("Dropping malformed setting change",
						"payload", msg.Payload,
						"error", err,
					)
					continue
				}
				select {
				case out <- change:
				case <-ctx.Done():
					return
				case <-done:
					return
				}
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			_ = pubsub.Close()
		})
	}

	return out, stop, nil
}
