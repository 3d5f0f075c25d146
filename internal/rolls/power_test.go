package rolls_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	dicemock "github.com/KirkDiggler/vagabond-api/internal/dice/mock"
	"github.com/KirkDiggler/vagabond-api/internal/errors"
	"github.com/KirkDiggler/vagabond-api/internal/rolls"
)

type PowerRollTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestPowerRollTestSuite(t *testing.T) {
	suite.Run(t, new(PowerRollTestSuite))
}

func (s *PowerRollTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *PowerRollTestSuite) newRoll(opts rolls.Options) *rolls.PowerRoll {
	roll, err := rolls.New(&rolls.Config{Options: opts})
	s.Require().NoError(err)
	return roll
}

func (s *PowerRollTestSuite) evaluated(opts rolls.Options, faces ...int) *rolls.PowerRoll {
	roll := s.newRoll(opts)
	s.Require().NoError(roll.Evaluate(s.ctx, dicemock.NewManualRoller(faces...)))
	return roll
}

func (s *PowerRollTestSuite) TestDefaults() {
	roll := s.newRoll(rolls.Options{})

	opts := roll.Options()
	s.Equal(rolls.TypeTest, opts.Type)
	s.Equal(rolls.DefaultCriticalThreshold, opts.CriticalThreshold)
	s.True(opts.AppliedModifier)
	s.Equal("2d10", roll.Formula())
	s.True(roll.IsValidPowerRoll())
}

func (s *PowerRollTestSuite) TestInvalidType() {
	_, err := rolls.New(&rolls.Config{Options: rolls.Options{Type: "damage"}})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *PowerRollTestSuite) TestFormulaTermCounts() {
	for edges := 0; edges <= 2; edges++ {
		for banes := 0; banes <= 2; banes++ {
			for _, bonuses := range []int{0, 3, -1} {
				s.Run(fmt.Sprintf("e%d_b%d_bonus%d", edges, banes, bonuses), func() {
					roll := s.newRoll(rolls.Options{Modifiers: rolls.Modifiers{Edges: edges, Banes: banes, Bonuses: bonuses}})

					expected := 1
					if nf := edges - banes; nf == 1 || nf == -1 {
						expected += 2
					}
					if bonuses != 0 {
						expected += 2
					}
					s.Len(roll.Terms(), expected)
				})
			}
		}
	}
}

func (s *PowerRollTestSuite) TestFormulaStrings() {
	testCases := []struct {
		name     string
		mods     rolls.Modifiers
		expected string
	}{
		{name: "single edge", mods: rolls.Modifiers{Edges: 1}, expected: "2d10 + 2[Favor]"},
		{name: "single bane with penalty", mods: rolls.Modifiers{Banes: 1, Bonuses: -3}, expected: "2d10 - 2[Hinder] - 3[Bonuses]"},
		{name: "double edge adds nothing", mods: rolls.Modifiers{Edges: 2}, expected: "2d10"},
		{name: "edge and bane cancel", mods: rolls.Modifiers{Edges: 1, Banes: 1, Bonuses: 1}, expected: "2d10 + 1[Bonuses]"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, s.newRoll(rolls.Options{Modifiers: tc.mods}).Formula())
		})
	}
}

func (s *PowerRollTestSuite) TestAppliedModifierIsNotReapplied() {
	roll := s.newRoll(rolls.Options{
		Modifiers:       rolls.Modifiers{Edges: 1, Bonuses: 2},
		AppliedModifier: true,
	})
	s.Equal("2d10", roll.Formula())
	s.Equal(1, roll.NetFavor())
}

func (s *PowerRollTestSuite) TestNetFavorClamps() {
	s.Equal(2, s.newRoll(rolls.Options{Modifiers: rolls.Modifiers{Edges: 5}}).NetFavor())
	s.Equal(-2, s.newRoll(rolls.Options{Modifiers: rolls.Modifiers{Banes: 9}}).NetFavor())
	s.Equal(1, s.newRoll(rolls.Options{Modifiers: rolls.Modifiers{Edges: 1, Banes: -4}}).NetFavor())
}

func (s *PowerRollTestSuite) TestUnevaluatedAccessors() {
	roll := s.newRoll(rolls.Options{})

	_, ok := roll.NaturalResult()
	s.False(ok)
	_, ok = roll.IsCritical()
	s.False(ok)
	_, ok = roll.IsNat20()
	s.False(ok)
	_, ok = roll.Product()
	s.False(ok)
	_, ok = roll.Tier()
	s.False(ok)

	_, err := roll.RenderContext(s.ctx, nil, nil)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *PowerRollTestSuite) TestTiers() {
	testCases := []struct {
		name     string
		opts     rolls.Options
		faces    []int
		expected string
	}{
		{name: "exact tier 2 threshold", faces: []int{5, 7}, expected: "tier2"},
		{name: "below tier 2", faces: []int{5, 6}, expected: "tier1"},
		{name: "exact tier 3 threshold", faces: []int{8, 9}, expected: "tier3"},
		{
			name:     "double edge raises one tier",
			opts:     rolls.Options{Modifiers: rolls.Modifiers{Edges: 2}},
			faces:    []int{5, 6},
			expected: "tier2",
		},
		{
			name:     "double bane lowers one tier",
			opts:     rolls.Options{Modifiers: rolls.Modifiers{Banes: 2}},
			faces:    []int{9, 9},
			expected: "tier2",
		},
		{
			name:     "single edge bonus crosses threshold",
			opts:     rolls.Options{Modifiers: rolls.Modifiers{Edges: 1}},
			faces:    []int{4, 6},
			expected: "tier2",
		},
		{
			name:     "critical overrides banes and penalties",
			opts:     rolls.Options{Modifiers: rolls.Modifiers{Banes: 2, Bonuses: -10}},
			faces:    []int{9, 10},
			expected: "tier3",
		},
		{
			name:     "lower critical threshold",
			opts:     rolls.Options{Type: rolls.TypeAbility, CriticalThreshold: 17},
			faces:    []int{8, 9},
			expected: "tier3",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			roll := s.evaluated(tc.opts, tc.faces...)
			tier, ok := roll.Tier()
			s.True(ok)
			s.Equal(tc.expected, tier)
		})
	}
}

func (s *PowerRollTestSuite) TestCriticalAndNat20() {
	roll := s.evaluated(rolls.Options{}, 10, 10)

	natural, ok := roll.NaturalResult()
	s.True(ok)
	s.Equal(20, natural)

	critical, ok := roll.IsCritical()
	s.True(ok)
	s.True(critical)

	nat20, ok := roll.IsNat20()
	s.True(ok)
	s.True(nat20)

	plain := s.evaluated(rolls.Options{}, 9, 9)
	critical, _ = plain.IsCritical()
	s.False(critical)
}

func (s *PowerRollTestSuite) TestNat20RequiresPowerRollDice() {
	roll, err := rolls.New(&rolls.Config{Formula: "3d6"})
	s.Require().NoError(err)
	s.Require().NoError(roll.Evaluate(s.ctx, dicemock.NewManualRoller(6, 6, 6)))

	s.False(roll.IsValidPowerRoll())
	_, ok := roll.IsNat20()
	s.False(ok)

	_, ok = roll.IsCritical()
	s.True(ok)
}

func (s *PowerRollTestSuite) TestReEvaluateFails() {
	roll := s.evaluated(rolls.Options{}, 3, 4)

	err := roll.Evaluate(s.ctx, dicemock.NewManualRoller(1, 1))
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))

	total, _ := roll.Total()
	s.Equal(7, total)
}

func (s *PowerRollTestSuite) TestFormulaDataReferences() {
	roll, err := rolls.New(&rolls.Config{
		Formula: "2d10 + @might",
		Data:    map[string]int{"might": 2},
	})
	s.Require().NoError(err)
	s.Require().NoError(roll.Evaluate(s.ctx, dicemock.NewManualRoller(5, 5)))

	total, _ := roll.Total()
	s.Equal(12, total)
	natural, _ := roll.NaturalResult()
	s.Equal(10, natural)
}

func (s *PowerRollTestSuite) TestRecord() {
	roll := s.evaluated(rolls.Options{
		Modifiers: rolls.Modifiers{Edges: 1},
		Target:    "actor-9",
		Flavor:    "Test",
	}, 6, 6)

	record := roll.Record()
	s.Equal("2d10 + 2[Favor]", record.Formula)
	s.Equal([]int{6, 6}, record.Dice)
	s.Equal(12, record.NaturalResult)
	s.Equal(14, record.Total)
	s.Equal(2, record.Tier)
	s.Equal(1, record.NetFavor)
	s.Equal("actor-9", record.Target)
	s.False(record.Critical)
}

func (s *PowerRollTestSuite) TestReplaceFirstDiceFindsDieGroup() {
	source := s.evaluated(rolls.Options{}, 9, 8)

	roll, err := rolls.New(&rolls.Config{Formula: "3 + 2d10"})
	s.Require().NoError(err)
	s.Require().NoError(roll.ReplaceFirstDice(source.FirstDice()))
	s.Require().NoError(roll.Evaluate(s.ctx, dicemock.NewManualRoller()))

	natural, ok := roll.NaturalResult()
	s.True(ok)
	s.Equal(17, natural)
	total, _ := roll.Total()
	s.Equal(20, total)
}

func (s *PowerRollTestSuite) TestReplaceFirstDiceWithoutDice() {
	roll, err := rolls.New(&rolls.Config{Formula: "3"})
	s.Require().NoError(err)
	s.Nil(roll.FirstDice())

	source := s.newRoll(rolls.Options{})
	err = roll.ReplaceFirstDice(source.FirstDice())
	s.True(errors.IsInvalidArgument(err))
}
