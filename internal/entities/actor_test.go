package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/rules"
)

func TestActorStatuses(t *testing.T) {
	actor := &entities.Actor{ID: "actor-1"}

	actor.AddStatus(rules.ConditionWeakened)
	actor.AddStatus(rules.ConditionWeakened)
	actor.AddStatus(rules.ConditionDazed)

	assert.Equal(t, []string{"dazed", "weakened"}, actor.Statuses)
	assert.True(t, actor.HasStatus(rules.ConditionWeakened))

	actor.RemoveStatus(rules.ConditionWeakened)
	assert.False(t, actor.HasStatus(rules.ConditionWeakened))
	assert.Equal(t, []string{"dazed"}, actor.Statuses)

	var missing *entities.Actor
	assert.False(t, missing.HasStatus(rules.ConditionDazed))
}

func TestActorRollData(t *testing.T) {
	actor := &entities.Actor{
		Level:    5,
		Statuses: []string{rules.ConditionRestrained},
		Characteristics: entities.Characteristics{
			Might:   2,
			Agility: -1,
		},
	}
	actor.PrepareDerivedData(rules.Default())

	data := actor.RollData()
	assert.Equal(t, 2, data["might"])
	assert.Equal(t, -1, data["agility"])
	assert.Equal(t, 0, data["presence"])
	assert.Equal(t, 5, data["level"])
	assert.Equal(t, 2, data["echelon"])
	assert.Equal(t, 1, data["statuses.restrained"])
}

func TestChatMessageVisibility(t *testing.T) {
	gm := &entities.User{ID: "gm", IsGM: true}
	author := &entities.User{ID: "player-1"}
	other := &entities.User{ID: "player-2"}

	public := &entities.ChatMessage{Author: author.ID}
	assert.True(t, public.VisibleTo(other))

	private := &entities.ChatMessage{Author: author.ID, Whisper: []string{gm.ID}}
	assert.True(t, private.VisibleTo(gm))
	assert.True(t, private.VisibleTo(author))
	assert.False(t, private.VisibleTo(other))

	blind := &entities.ChatMessage{Author: author.ID, Whisper: []string{gm.ID}, Blind: true}
	assert.True(t, blind.VisibleTo(gm))
	assert.False(t, blind.VisibleTo(author))
	assert.False(t, blind.VisibleTo(nil))
}

func TestRollModeValid(t *testing.T) {
	for _, mode := range entities.RollModes() {
		assert.True(t, mode.Valid(), mode)
	}
	assert.False(t, entities.RollMode("roll").Valid())
}
