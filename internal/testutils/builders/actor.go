// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/rules"
)

// ActorBuilder provides a fluent interface for building test Actor instances
type ActorBuilder struct {
	actor *entities.Actor
}

// NewActorBuilder creates a new builder with a level 1 character
func NewActorBuilder() *ActorBuilder {
	return &ActorBuilder{
		actor: &entities.Actor{
			ID:    "actor-test-123",
			Name:  "Test Hero",
			Type:  entities.ActorTypeCharacter,
			Level: 1,
		},
	}
}

// WithID sets the actor ID
func (b *ActorBuilder) WithID(id string) *ActorBuilder {
	b.actor.ID = id
	return b
}

// WithName sets the actor name
func (b *ActorBuilder) WithName(name string) *ActorBuilder {
	b.actor.Name = name
	return b
}

// WithOwner sets the owning user
func (b *ActorBuilder) WithOwner(ownerID string) *ActorBuilder {
	b.actor.OwnerID = ownerID
	return b
}

// WithLevel sets the level
func (b *ActorBuilder) WithLevel(level int) *ActorBuilder {
	b.actor.Level = level
	return b
}

// WithCharacteristics sets might, agility, reason, intuition and presence in that order
func (b *ActorBuilder) WithCharacteristics(might, agility, reason, intuition, presence int) *ActorBuilder {
	b.actor.Characteristics = entities.Characteristics{
		Might:     might,
		Agility:   agility,
		Reason:    reason,
		Intuition: intuition,
		Presence:  presence,
	}
	return b
}

// WithStatuses adds statuses such as "restrained"
func (b *ActorBuilder) WithStatuses(statuses ...string) *ActorBuilder {
	for _, s := range statuses {
		b.actor.AddStatus(s)
	}
	return b
}

// AsNPC marks the actor as director controlled and clears the owner
func (b *ActorBuilder) AsNPC() *ActorBuilder {
	b.actor.Type = entities.ActorTypeNPC
	b.actor.OwnerID = ""
	return b
}

// Build returns the constructed Actor
func (b *ActorBuilder) Build() *entities.Actor {
	return b.actor
}

// BuildPrepared returns the actor with derived data computed from r
func (b *ActorBuilder) BuildPrepared(r *rules.Rules) *entities.Actor {
	b.actor.PrepareDerivedData(r)
	return b.actor
}
