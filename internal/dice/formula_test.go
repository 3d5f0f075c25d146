package dice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/vagabond-api/internal/dice"
	"github.com/KirkDiggler/vagabond-api/internal/errors"
)

type FormulaTestSuite struct {
	suite.Suite
}

func TestFormulaTestSuite(t *testing.T) {
	suite.Run(t, new(FormulaTestSuite))
}

func (s *FormulaTestSuite) TestParseDiceOnly() {
	terms, err := dice.ParseFormula("2d10", nil)
	s.Require().NoError(err)
	s.Require().Len(terms, 1)

	die, ok := terms[0].(*dice.DieTerm)
	s.Require().True(ok)
	s.Equal(2, die.Number)
	s.Equal(10, die.Faces)
	s.False(die.Evaluated())
}

func (s *FormulaTestSuite) TestParseMixedTerms() {
	terms, err := dice.ParseFormula("2d10 + @might - 2[Hinder] + d6", map[string]int{"might": 3})
	s.Require().NoError(err)
	s.Require().Len(terms, 7)

	s.Equal("2d10 + 3 - 2[Hinder] + 1d6", dice.FormatTerms(terms))
	s.Equal("Hinder", terms[4].Flavor())
}

func (s *FormulaTestSuite) TestMissingReferenceIsZero() {
	terms, err := dice.ParseFormula("2d10+@reason", map[string]int{})
	s.Require().NoError(err)
	s.Require().Len(terms, 3)

	num, ok := terms[2].(*dice.NumericTerm)
	s.Require().True(ok)
	s.Equal(0, num.Number)
}

func (s *FormulaTestSuite) TestInvalidFormulas() {
	testCases := []struct {
		name    string
		formula string
	}{
		{name: "empty", formula: "   "},
		{name: "garbage", formula: "2d10 + banana"},
		{name: "missing operator", formula: "2d10 2"},
		{name: "trailing operator", formula: "2d10 +"},
		{name: "zero dice", formula: "0d10"},
		{name: "too many dice", formula: "9999999999d10"},
		{name: "too many faces", formula: "2d100000"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := dice.ParseFormula(tc.formula, nil)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *FormulaTestSuite) TestCloneTermCopiesResultsAndOverridesOrder() {
	roll, err := dice.NewRoll("2d10", nil)
	s.Require().NoError(err)
	s.Require().NoError(roll.Evaluate(context.Background(), staticRoller{faces: []int{7, 9}}))

	clone, err := dice.CloneTerm(roll.Terms()[0], dice.WithRollOrder(999))
	s.Require().NoError(err)

	die, ok := clone.(*dice.DieTerm)
	s.Require().True(ok)
	s.True(die.Evaluated())
	s.Equal([]int{7, 9}, die.Results)
	s.Equal(999, die.Options.RollOrder)

	original := roll.Dice()[0]
	s.Equal(0, original.Options.RollOrder)
	s.NotSame(original, die)
}

func (s *FormulaTestSuite) TestTermFromDataRejectsUnknownClass() {
	_, err := dice.TermFromData(dice.TermData{Class: "FunctionTerm"})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

type staticRoller struct {
	faces []int
}

func (r staticRoller) Roll(_ int) (int, error) { return r.faces[0], nil }

func (r staticRoller) RollN(count, _ int) ([]int, error) {
	return append([]int(nil), r.faces[:count]...), nil
}
