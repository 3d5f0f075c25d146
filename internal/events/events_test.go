package events_test

import (
	"context"
	"testing"

	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/events"
)

func TestEmitDeliversContext(t *testing.T) {
	bus := events.NewBus()
	actor := &entities.Actor{ID: "actor-1", Type: entities.ActorTypeCharacter}

	var (
		gotSource string
		gotTiers  []int
		gotMode   string
	)
	bus.SubscribeFunc(events.EventPowerRollResolved, 100, func(_ context.Context, e rpgevents.Event) error {
		gotSource = e.Source().GetID()
		gotTiers, _ = events.GetInts(e, events.ContextTiers)
		gotMode, _ = events.GetString(e, events.ContextRollMode)
		return nil
	})

	_, err := events.Emit(context.Background(), bus, events.EventPowerRollResolved, events.WrapActor(actor), nil, map[string]any{
		events.ContextTiers:    []int{2, 3},
		events.ContextRollMode: "publicroll",
	})
	require.NoError(t, err)

	assert.Equal(t, "actor-1", gotSource)
	assert.Equal(t, []int{2, 3}, gotTiers)
	assert.Equal(t, "publicroll", gotMode)
}

func TestEmitNilBus(t *testing.T) {
	event, err := events.Emit(context.Background(), nil, events.EventSettingChanged, nil, nil, nil)
	assert.NoError(t, err)
	assert.Nil(t, event)
}

func TestEntityWrappers(t *testing.T) {
	actor := events.WrapActor(&entities.Actor{ID: "npc-1", Type: entities.ActorTypeNPC})
	assert.Equal(t, "npc-1", actor.GetID())
	assert.Equal(t, "npc", actor.GetType())

	user := events.WrapUser(&entities.User{ID: "u-1"})
	assert.Equal(t, "u-1", user.GetID())
	assert.Equal(t, "user", user.GetType())

	setting := events.SettingEntity("heroTokens")
	assert.Equal(t, "heroTokens", setting.GetID())
	assert.Equal(t, "setting", setting.GetType())

	assert.Nil(t, events.WrapActor(nil))
	assert.Nil(t, events.WrapUser(nil))
}

func TestContextHelpersWrongType(t *testing.T) {
	event := rpgevents.NewGameEvent(events.EventSettingChanged, nil, nil)
	event.Context().Set(events.ContextValue, "three")

	_, ok := events.GetInt(event, events.ContextValue)
	assert.False(t, ok)
	_, ok = events.GetInt(event, "missing")
	assert.False(t, ok)
}
