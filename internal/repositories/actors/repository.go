// Package actors persists the characters and creatures that make power rolls
package actors

//go:generate mockgen -destination=mock/mock_repository.go -package=actorsmock github.com/KirkDiggler/vagabond-api/internal/repositories/actors Repository

import (
	"context"

	"github.com/KirkDiggler/vagabond-api/internal/entities"
)

// Repository defines the interface for actor persistence
type Repository interface {
	// Create stores a new actor
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if an actor with the same ID exists
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves an actor by ID
	// Returns errors.NotFound if the actor doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing actor, moving its owner index if needed
	// Returns errors.NotFound if the actor doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes an actor by ID
	// Returns errors.NotFound if the actor doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByOwner retrieves the actors a user owns, ordered by ID
	ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error)
}

// CreateInput defines the input for creating an actor
type CreateInput struct {
	Actor *entities.Actor
}

// CreateOutput defines the output for creating an actor
type CreateOutput struct {
	Actor *entities.Actor
}

// GetInput defines the input for getting an actor
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting an actor
type GetOutput struct {
	Actor *entities.Actor
}

// UpdateInput defines the input for updating an actor
type UpdateInput struct {
	Actor *entities.Actor
}

// UpdateOutput defines the output for updating an actor
type UpdateOutput struct {
	Actor *entities.Actor
}

// DeleteInput defines the input for deleting an actor
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting an actor
type DeleteOutput struct{}

// ListByOwnerInput defines the input for listing a user's actors
type ListByOwnerInput struct {
	OwnerID string
}

// ListByOwnerOutput defines the output for listing a user's actors
type ListByOwnerOutput struct {
	Actors []*entities.Actor
}
