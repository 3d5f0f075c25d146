package actors

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/errors"
	redisclient "github.com/KirkDiggler/vagabond-api/internal/redis"
)

const (
	actorKeyPrefix   = "actor:"
	ownerIndexPrefix = "actor:owner:"

	// Error messages
	errActorNil     = "actor cannot be nil"
	errActorIDEmpty = "actor ID cannot be empty"
	errOwnerIDEmpty = "owner ID cannot be empty"
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

var _ Repository = (*redisRepository)(nil)

// NewRedisRepository creates a new Redis-backed actor repository
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

func validateActor(actor *entities.Actor) error {
	if actor == nil {
		return errors.InvalidArgument(errActorNil)
	}
	if actor.ID == "" {
		return errors.InvalidArgument(errActorIDEmpty)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("Type", string(actor.Type), entities.ActorTypes(), vb)
	return vb.Build()
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateActor(input.Actor); err != nil {
		return nil, err
	}

	key := actorKeyPrefix + input.Actor.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("actor with ID %s already exists", input.Actor.ID)
	}

	data, err := json.Marshal(input.Actor)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal actor")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	if input.Actor.OwnerID != "" {
		pipe.SAdd(ctx, ownerIndexPrefix+input.Actor.OwnerID, input.Actor.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to create actor")
	}

	return &CreateOutput{Actor: input.Actor}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}

	result, err := r.client.Get(ctx, actorKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf("actor with ID %s not found", input.ID)
		}
		return nil, errors.Wrap(err, "failed to get actor")
	}

	var actor entities.Actor
	if err := json.Unmarshal([]byte(result), &actor); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal actor")
	}

	return &GetOutput{Actor: &actor}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateActor(input.Actor); err != nil {
		return nil, err
	}

	existing, err := r.Get(ctx, GetInput{ID: input.Actor.ID})
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Actor)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal actor")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, actorKeyPrefix+input.Actor.ID, data, 0)

	if previous := existing.Actor.OwnerID; previous != input.Actor.OwnerID {
		if previous != "" {
			pipe.SRem(ctx, ownerIndexPrefix+previous, input.Actor.ID)
		}
		if input.Actor.OwnerID != "" {
			pipe.SAdd(ctx, ownerIndexPrefix+input.Actor.OwnerID, input.Actor.ID)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to update actor")
	}

	return &UpdateOutput{Actor: input.Actor}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	existing, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, actorKeyPrefix+input.ID)
	if existing.Actor.OwnerID != "" {
		pipe.SRem(ctx, ownerIndexPrefix+existing.Actor.OwnerID, input.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to delete actor")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	indexKey := ownerIndexPrefix + input.OwnerID
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get actors from index %s", indexKey)
	}
	sort.Strings(ids)

	out := make([]*entities.Actor, 0, len(ids))
	for _, id := range ids {
		got, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			// stale index entry
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "Actor not found, cleaning up index",
					"actor_id", id,
					"index_key", indexKey,
				)
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get actor %s", id)
		}
		out = append(out, got.Actor)
	}

	return &ListByOwnerOutput{Actors: out}, nil
}
