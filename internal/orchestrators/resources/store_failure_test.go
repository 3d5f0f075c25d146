package resources_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	apperrors "github.com/KirkDiggler/vagabond-api/internal/errors"
	"github.com/KirkDiggler/vagabond-api/internal/orchestrators/resources"
	"github.com/KirkDiggler/vagabond-api/internal/repositories/settings"
	settingsmock "github.com/KirkDiggler/vagabond-api/internal/repositories/settings/mock"
	usersmock "github.com/KirkDiggler/vagabond-api/internal/repositories/users/mock"
	"github.com/KirkDiggler/vagabond-api/internal/rules"
	chatmock "github.com/KirkDiggler/vagabond-api/internal/services/chat/mock"
	"github.com/KirkDiggler/vagabond-api/internal/testutils"
	"github.com/KirkDiggler/vagabond-api/internal/testutils/mocks"
)

type StoreFailureTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockSettings *settingsmock.MockRepository
	mockUsers    *usersmock.MockRepository
	mockChat     *chatmock.MockService
	orch         resources.Service
	ctx          context.Context
}

func (s *StoreFailureTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockSettings = settingsmock.NewMockRepository(s.ctrl)
	s.mockUsers = usersmock.NewMockRepository(s.ctrl)
	s.mockChat = chatmock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	orch, err := resources.NewOrchestrator(&resources.Config{
		Settings:      s.mockSettings,
		Users:         s.mockUsers,
		Chat:          s.mockChat,
		Rules:         rules.Default(),
		Emitter:       &recordingEmitter{},
		Authoritative: true,
		Notifier:      &recordingNotifier{},
	})
	s.Require().NoError(err)
	s.orch = orch
}

func (s *StoreFailureTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *StoreFailureTestSuite) TestReadFailureSkipsAnnouncement() {
	mocks.ExpectUserLookup(s.ctx, s.mockUsers, testutils.CreateTestPlayer())
	s.mockSettings.EXPECT().
		Get(s.ctx, settings.GetInput{Name: settings.HeroTokens}).
		Return(nil, apperrors.Unavailable("redis is loading"))
	s.mockChat.EXPECT().Post(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.orch.HandleSpendHeroToken(s.ctx, &resources.HandleSpendHeroTokenInput{
		UserID:    testutils.TestPlayerID,
		SpendType: rules.SpendImproveTest,
	})

	s.Require().Error(err)
	s.True(apperrors.IsUnavailable(err))
}

func (s *StoreFailureTestSuite) TestWriteFailureSkipsAnnouncement() {
	mocks.ExpectUserLookup(s.ctx, s.mockUsers, testutils.CreateTestPlayer())
	s.mockSettings.EXPECT().
		Get(s.ctx, settings.GetInput{Name: settings.HeroTokens}).
		Return(&settings.GetOutput{Counter: settings.Counter{Value: 2}}, nil)
	s.mockSettings.EXPECT().
		Set(s.ctx, settings.SetInput{
			Name:    settings.HeroTokens,
			Counter: settings.Counter{Value: 1},
			UserID:  testutils.TestPlayerID,
		}).
		Return(nil, errors.New("connection reset"))
	s.mockChat.EXPECT().Post(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.orch.HandleSpendHeroToken(s.ctx, &resources.HandleSpendHeroTokenInput{
		UserID:    testutils.TestPlayerID,
		SpendType: rules.SpendImproveTest,
	})

	s.Require().Error(err)
	s.Contains(err.Error(), "failed to spend hero tokens")
}

func (s *StoreFailureTestSuite) TestWatchFailure() {
	s.mockSettings.EXPECT().Watch(gomock.Any()).Return(nil, nil, errors.New("subscribe refused"))

	err := s.orch.WatchSettings(s.ctx)
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to watch settings")
}

func (s *StoreFailureTestSuite) TestMaliceReadFailure() {
	s.mockSettings.EXPECT().
		Get(s.ctx, settings.GetInput{Name: settings.Malice}).
		Return(nil, errors.New("timeout"))

	_, err := s.orch.UpdateMalice(s.ctx, &resources.UpdateMaliceInput{
		User:  testutils.CreateTestDirector(),
		Delta: 1,
	})
	s.Error(err)
}

func TestStoreFailureTestSuite(t *testing.T) {
	suite.Run(t, new(StoreFailureTestSuite))
}
