package builders

import "github.com/KirkDiggler/vagabond-api/internal/entities"

// UserBuilder provides a fluent interface for building test User instances
type UserBuilder struct {
	user *entities.User
}

// NewUserBuilder creates a player with no assigned character
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		user: &entities.User{
			ID:   "user-test-123",
			Name: "Test Player",
		},
	}
}

// WithID sets the user ID
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.user.ID = id
	return b
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.user.Name = name
	return b
}

// WithCharacter assigns the character the user speaks as
func (b *UserBuilder) WithCharacter(name string) *UserBuilder {
	b.user.CharacterName = name
	return b
}

// AsDirector marks the user as a GM. Active makes them the session that
// owns writes to world resources.
func (b *UserBuilder) AsDirector(active bool) *UserBuilder {
	b.user.IsGM = true
	b.user.IsActiveGM = active
	return b
}

// Build returns the constructed User
func (b *UserBuilder) Build() *entities.User {
	return b.user
}
