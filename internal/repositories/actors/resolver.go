package actors

import (
	"context"

	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/errors"
)

// Resolver answers the speaker and target lookups made while rolling
type Resolver struct {
	repo Repository
}

// NewResolver creates a resolver over repo
func NewResolver(repo Repository) (*Resolver, error) {
	if repo == nil {
		return nil, errors.InvalidArgument("repository is required")
	}
	return &Resolver{repo: repo}, nil
}

// ResolveSpeaker returns the user's assigned character: the owned actor named
// after the user's character, else the first owned character.
func (r *Resolver) ResolveSpeaker(ctx context.Context, user *entities.User) (*entities.Actor, error) {
	if user == nil || user.ID == "" {
		return nil, errors.InvalidArgument("user is required")
	}

	out, err := r.repo.ListByOwner(ctx, ListByOwnerInput{OwnerID: user.ID})
	if err != nil {
		return nil, err
	}

	var first *entities.Actor
	for _, actor := range out.Actors {
		if actor.Type != entities.ActorTypeCharacter {
			continue
		}
		if user.CharacterName != "" && actor.Name == user.CharacterName {
			return actor, nil
		}
		if first == nil {
			first = actor
		}
	}
	if first == nil {
		return nil, errors.NotFoundf("user %s has no character", user.ID)
	}
	return first, nil
}

// ResolveTarget returns the actor with the given ID
func (r *Resolver) ResolveTarget(ctx context.Context, id string) (*entities.Actor, error) {
	out, err := r.repo.Get(ctx, GetInput{ID: id})
	if err != nil {
		return nil, err
	}
	return out.Actor, nil
}
