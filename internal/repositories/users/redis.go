package users

import (
	"context"
	"encoding/json"
	"sort"

	redis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/errors"
	redisclient "github.com/KirkDiggler/vagabond-api/internal/redis"
)

const (
	// Key pattern: user:{id}
	userKeyPrefix = "user:"
	userIndexKey  = "users"
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

// NewRedisRepository creates a new Redis repository for users
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Get(ctx context.Context, id string) (*entities.User, error) {
	if id == "" {
		return nil, errors.InvalidArgument("user ID cannot be empty")
	}

	raw, err := r.client.Get(ctx, userKeyPrefix+id).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("user %s not found", id)
		}
		return nil, errors.Wrapf(err, "failed to get user %s from Redis", id)
	}

	var user entities.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal user %s", id)
	}
	return &user, nil
}

func (r *redisRepository) Put(ctx context.Context, user *entities.User) error {
	if user == nil {
		return errors.InvalidArgument("user cannot be nil")
	}
	if user.ID == "" {
		return errors.InvalidArgument("user ID cannot be empty")
	}

	data, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "failed to marshal user")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, userKeyPrefix+user.ID, data, 0)
	pipe.SAdd(ctx, userIndexKey, user.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "failed to store user %s in Redis", user.ID)
	}
	return nil
}

func (r *redisRepository) List(ctx context.Context) ([]*entities.User, error) {
	ids, err := r.client.SMembers(ctx, userIndexKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user IDs")
	}
	sort.Strings(ids)

	users := make([]*entities.User, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			user, err := r.Get(ctx, id)
			if err != nil {
				return err
			}
			users[i] = user
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return users, nil
}
