// Package events names the hooks raised by vagabond-api on the rpg-toolkit
// event bus and provides helpers to publish and read them.
package events

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/core"
	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/vagabond-api/internal/errors"
)

// Event types
const (
	// EventPowerRollResolved fires after a prompt batch is produced
	EventPowerRollResolved = "vagabond.power_roll.resolved"

	// EventSettingChanged fires on every participant when a world setting changes
	EventSettingChanged = "vagabond.setting.changed"

	// EventHeroTokenSpent fires on the authoritative side after a spend succeeds
	EventHeroTokenSpent = "vagabond.hero_token.spent"

	// EventActorPrepared fires after an actor's derived data is recomputed
	EventActorPrepared = "vagabond.actor.prepared"
)

// Context keys
const (
	ContextRollMode  = "roll_mode"
	ContextTiers     = "tiers"
	ContextRollCount = "roll_count"
	ContextSetting   = "setting"
	ContextValue     = "value"
	ContextSpendType = "spend_type"
	ContextTokens    = "tokens"
)

// Bus is the subset of the rpg-toolkit bus used here
type Bus interface {
	Publish(ctx context.Context, event rpgevents.Event) error
	SubscribeFunc(eventType string, priority int, handler rpgevents.HandlerFunc) string
	Unsubscribe(id string) error
}

// NewBus returns an rpg-toolkit event bus
func NewBus() *rpgevents.Bus {
	return rpgevents.NewBus()
}

// Emit publishes an event with the given context data. A nil bus is a no-op.
func Emit(ctx context.Context, bus Bus, eventType string, source, target core.Entity, data map[string]any) (rpgevents.Event, error) {
	if bus == nil {
		return nil, nil
	}

	event := rpgevents.NewGameEvent(eventType, source, target)
	for k, v := range data {
		event.Context().Set(k, v)
	}

	if err := bus.Publish(ctx, event); err != nil {
		return event, errors.Wrapf(err, "failed to publish %s", eventType)
	}
	return event, nil
}

// GetInt safely extracts an int from event context
func GetInt(event rpgevents.Event, key string) (int, bool) {
	if val, ok := event.Context().Get(key); ok {
		if intVal, ok := val.(int); ok {
			return intVal, true
		}
	}
	return 0, false
}

// GetString safely extracts a string from event context
func GetString(event rpgevents.Event, key string) (string, bool) {
	if val, ok := event.Context().Get(key); ok {
		if strVal, ok := val.(string); ok {
			return strVal, true
		}
	}
	return "", false
}

// GetInts safely extracts an int slice from event context
func GetInts(event rpgevents.Event, key string) ([]int, bool) {
	if val, ok := event.Context().Get(key); ok {
		if ints, ok := val.([]int); ok {
			return ints, true
		}
	}
	return nil, false
}
