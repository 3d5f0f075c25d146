package rolls_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dicemock "github.com/KirkDiggler/vagabond-api/internal/dice/mock"
	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/errors"
	"github.com/KirkDiggler/vagabond-api/internal/i18n"
	"github.com/KirkDiggler/vagabond-api/internal/rolls"
)

type stubTargets map[string]*entities.Actor

func (s stubTargets) ResolveTarget(_ context.Context, id string) (*entities.Actor, error) {
	if a, ok := s[id]; ok {
		return a, nil
	}
	return nil, errors.NotFoundf("actor %s not found", id)
}

func evaluate(t *testing.T, opts rolls.Options, faces ...int) *rolls.PowerRoll {
	t.Helper()
	roll, err := rolls.New(&rolls.Config{Options: opts})
	require.NoError(t, err)
	require.NoError(t, roll.Evaluate(context.Background(), dicemock.NewManualRoller(faces...)))
	return roll
}

func TestRenderContext(t *testing.T) {
	loc := i18n.DefaultLocalizer()

	testCases := []struct {
		name         string
		opts         rolls.Options
		faces        []int
		wantTier     string
		wantMod      string
		wantNumber   int
		wantCritical string
	}{
		{name: "no favor", faces: []int{6, 6}, wantTier: "Tier 2"},
		{name: "double edge", opts: rolls.Options{Modifiers: rolls.Modifiers{Edges: 2}}, faces: []int{2, 2}, wantTier: "Tier 2", wantMod: "Double Favor", wantNumber: 2},
		{name: "single bane", opts: rolls.Options{Modifiers: rolls.Modifiers{Banes: 1}}, faces: []int{9, 9}, wantTier: "Tier 2", wantMod: "Hinder", wantNumber: 1},
		{name: "natural 20", faces: []int{10, 10}, wantTier: "Tier 3", wantCritical: "critical"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rc, err := evaluate(t, tc.opts, tc.faces...).RenderContext(context.Background(), loc, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.wantTier, rc.Tier.Label)
			assert.Equal(t, tc.wantMod, rc.Modifier.Mod)
			assert.Equal(t, tc.wantNumber, rc.Modifier.Number)
			assert.Equal(t, tc.wantCritical, rc.Critical)
			assert.Nil(t, rc.Target)
		})
	}
}

func TestRenderContextTargets(t *testing.T) {
	targets := stubTargets{"goblin-1": {ID: "goblin-1", Name: "Goblin Sniper"}}

	rc, err := evaluate(t, rolls.Options{Target: "goblin-1", BaseRoll: false}, 4, 5).
		RenderContext(context.Background(), nil, targets)
	require.NoError(t, err)
	require.NotNil(t, rc.Target)
	assert.Equal(t, "Goblin Sniper", rc.Target.Name)
	assert.Equal(t, "Tier 1 (9) [4, 5] vs Goblin Sniper", rc.String())

	rc, err = evaluate(t, rolls.Options{Target: "missing"}, 4, 5).
		RenderContext(context.Background(), nil, targets)
	require.NoError(t, err)
	assert.Equal(t, "missing", rc.Target.ID)

	rc, err = evaluate(t, rolls.Options{BaseRoll: true}, 4, 5).
		RenderContext(context.Background(), nil, targets)
	require.NoError(t, err)
	assert.True(t, rc.BaseRoll)
}
