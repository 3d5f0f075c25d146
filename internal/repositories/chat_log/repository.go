// Package chatlog provides repository interface and types for the world chat log
package chatlog

import (
	"context"

	"github.com/KirkDiggler/vagabond-api/internal/entities"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=chatlogmock github.com/KirkDiggler/vagabond-api/internal/repositories/chat_log Repository

// CreateInput contains the message to append. ID and CreatedAt are assigned
// by the repository.
type CreateInput struct {
	Message *entities.ChatMessage
}

// CreateOutput contains the stored message
type CreateOutput struct {
	Message *entities.ChatMessage
}

// ListInput contains parameters for reading the log
type ListInput struct {
	// Limit returns only the most recent messages; zero means all
	Limit int
}

// ListOutput contains messages oldest first
type ListOutput struct {
	Messages []*entities.ChatMessage
}

// ClearOutput contains the result of clearing the log
type ClearOutput struct {
	MessagesDeleted int
}

// Repository defines the interface for chat log storage operations
type Repository interface {
	// Create appends a message to the log
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// List reads messages oldest first
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Clear removes every message
	Clear(ctx context.Context) (*ClearOutput, error)
}
