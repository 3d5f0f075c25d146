package dice_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/vagabond-api/internal/dice"
	dicemock "github.com/KirkDiggler/vagabond-api/internal/dice/mock"
	"github.com/KirkDiggler/vagabond-api/internal/errors"
)

type RollTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockRoller *dicemock.MockRoller
	ctx        context.Context
}

func TestRollTestSuite(t *testing.T) {
	suite.Run(t, new(RollTestSuite))
}

func (s *RollTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRoller = dicemock.NewMockRoller(s.ctrl)
	s.ctx = context.Background()
}

func (s *RollTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RollTestSuite) TestEvaluateSumsTerms() {
	roll, err := dice.NewRoll("2d10 - 2[Hinder] + 3", nil)
	s.Require().NoError(err)

	s.mockRoller.EXPECT().RollN(2, 10).Return([]int{4, 8}, nil)

	_, ok := roll.Total()
	s.False(ok)

	s.Require().NoError(roll.Evaluate(s.ctx, s.mockRoller))

	total, ok := roll.Total()
	s.True(ok)
	s.Equal(13, total)
	s.Equal(12, roll.Dice()[0].Total())
}

func (s *RollTestSuite) TestEvaluateTwiceFails() {
	roll, err := dice.NewRoll("2d10", nil)
	s.Require().NoError(err)

	s.mockRoller.EXPECT().RollN(2, 10).Return([]int{1, 2}, nil).Times(1)

	s.Require().NoError(roll.Evaluate(s.ctx, s.mockRoller))
	err = roll.Evaluate(s.ctx, s.mockRoller)
	s.Require().Error(err)
	s.True(errors.IsFailedPrecondition(err))
}

func (s *RollTestSuite) TestEvaluateRollerError() {
	roll, err := dice.NewRoll("2d10", nil)
	s.Require().NoError(err)

	s.mockRoller.EXPECT().RollN(2, 10).Return(nil, fmt.Errorf("entropy exhausted"))

	err = roll.Evaluate(s.ctx, s.mockRoller)
	s.Require().Error(err)
	s.False(roll.Evaluated())
}

func (s *RollTestSuite) TestEvaluateCanceledContext() {
	roll, err := dice.NewRoll("2d10", nil)
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	err = roll.Evaluate(ctx, s.mockRoller)
	s.Require().Error(err)
	s.True(errors.IsCanceled(err))
}

func (s *RollTestSuite) TestSharedTermIsNotRerolled() {
	base, err := dice.NewRoll("2d10", nil)
	s.Require().NoError(err)

	roller := dicemock.NewManualRoller(6, 7)
	s.Require().NoError(base.Evaluate(s.ctx, roller))

	shared, err := dice.CloneTerm(base.Terms()[0], dice.WithRollOrder(999))
	s.Require().NoError(err)

	derived, err := dice.NewRoll("2d10 + 2", nil)
	s.Require().NoError(err)
	s.Require().NoError(derived.SetTerm(0, shared))
	s.Require().NoError(derived.Evaluate(s.ctx, roller))

	s.Equal(2, roller.Used())
	total, _ := derived.Total()
	s.Equal(15, total)
}

func (s *RollTestSuite) TestModifyAfterEvaluateFails() {
	roll, err := dice.NewRoll("2d10", nil)
	s.Require().NoError(err)
	s.Require().NoError(roll.Evaluate(s.ctx, dicemock.NewManualRoller(3, 3)))

	err = roll.SetTerm(0, dice.NewNumericTerm(1, ""))
	s.True(errors.IsFailedPrecondition(err))

	err = roll.AppendTerms(dice.NewNumericTerm(1, ""))
	s.True(errors.IsFailedPrecondition(err))
}

func (s *RollTestSuite) TestAppendTermsAndResetFormula() {
	roll, err := dice.NewRoll("2d10", nil)
	s.Require().NoError(err)

	op, err := dice.NewOperatorTerm("+")
	s.Require().NoError(err)
	s.Require().NoError(roll.AppendTerms(op, dice.NewNumericTerm(2, "Favor")))
	s.Equal("2d10", roll.Formula())

	roll.ResetFormula()
	s.Equal("2d10 + 2[Favor]", roll.Formula())
}

func (s *RollTestSuite) TestSetTermOutOfRange() {
	roll, err := dice.NewRoll("2d10", nil)
	s.Require().NoError(err)

	err = roll.SetTerm(3, dice.NewNumericTerm(1, ""))
	s.True(errors.IsOutOfRange(err))
}
