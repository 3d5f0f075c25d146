// Package users stores the participants of a world: display name, director
// flag and assigned character.
package users

import (
	"context"

	"github.com/KirkDiggler/vagabond-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=usersmock github.com/KirkDiggler/vagabond-api/internal/repositories/users Repository

// Repository defines the interface for user storage operations
type Repository interface {
	// Get returns NotFound for unknown users
	Get(ctx context.Context, id string) (*entities.User, error)

	// Put creates or replaces a user
	Put(ctx context.Context, user *entities.User) error

	// List returns every user ordered by ID
	List(ctx context.Context) ([]*entities.User, error)
}
