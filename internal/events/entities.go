package events

import "github.com/KirkDiggler/vagabond-api/internal/entities"

// ActorEntity wraps entities.Actor to implement core.Entity
type ActorEntity struct {
	*entities.Actor
}

// GetID returns the actor's ID
func (a *ActorEntity) GetID() string {
	return a.ID
}

// GetType returns the actor type for rpg-toolkit
func (a *ActorEntity) GetType() string {
	return string(a.Type)
}

// UserEntity wraps entities.User to implement core.Entity
type UserEntity struct {
	*entities.User
}

// GetID returns the user's ID
func (u *UserEntity) GetID() string {
	return u.ID
}

// GetType returns the entity type for rpg-toolkit
func (u *UserEntity) GetType() string {
	return "user"
}

// SettingEntity names a world setting as an event target
type SettingEntity string

// GetID returns the setting name
func (s SettingEntity) GetID() string {
	return string(s)
}

// GetType returns the entity type for rpg-toolkit
func (s SettingEntity) GetType() string {
	return "setting"
}

// WrapActor converts an actor to an entity, nil stays nil
func WrapActor(actor *entities.Actor) *ActorEntity {
	if actor == nil {
		return nil
	}
	return &ActorEntity{Actor: actor}
}

// WrapUser converts a user to an entity, nil stays nil
func WrapUser(user *entities.User) *UserEntity {
	if user == nil {
		return nil
	}
	return &UserEntity{User: user}
}
