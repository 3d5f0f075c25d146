// Package settings stores the world-level pooled counters shared by every
// participant, such as the party's hero tokens and the director's malice.
package settings

import (
	"context"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=settingsmock github.com/KirkDiggler/vagabond-api/internal/repositories/settings Repository

// Registered setting names
const (
	HeroTokens = "heroTokens"
	Malice     = "malice"
)

// Names lists the registered settings
func Names() []string {
	return []string{HeroTokens, Malice}
}

// Counter is the stored value of a pooled counter
type Counter struct {
	Value int `json:"value"`
}

// Change is published whenever a setting is written
type Change struct {
	Name    string  `json:"name"`
	Counter Counter `json:"counter"`
	// UserID is who made the change, empty for system writes
	UserID string `json:"user_id,omitempty"`
}

// GetInput contains parameters for reading a setting
type GetInput struct {
	Name string
}

// GetOutput contains the current counter. Unset settings read as zero.
type GetOutput struct {
	Counter Counter
}

// SetInput contains parameters for writing a setting
type SetInput struct {
	Name    string
	Counter Counter
	UserID  string
}

// SetOutput contains the result of writing a setting
type SetOutput struct {
	Previous Counter
	Counter  Counter
}

// Repository defines the interface for world setting storage
type Repository interface {
	// Get reads a setting
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Set writes a setting and notifies watchers
	Set(ctx context.Context, input SetInput) (*SetOutput, error)

	// Watch streams changes until stop is called or ctx ends
	Watch(ctx context.Context) (<-chan Change, func(), error)
}
