package chatlog_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/vagabond-api/internal/entities"
	apperrors "github.com/KirkDiggler/vagabond-api/internal/errors"
	"github.com/KirkDiggler/vagabond-api/internal/pkg/clock"
	"github.com/KirkDiggler/vagabond-api/internal/pkg/idgen"
	chatlog "github.com/KirkDiggler/vagabond-api/internal/repositories/chat_log"
	"github.com/KirkDiggler/vagabond-api/internal/testutils"
)

var testNow = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

type RedisChatLogTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    chatlog.Repository
	cleanup func()
}

func (s *RedisChatLogTestSuite) SetupTest() {
	s.ctx = context.Background()

	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := chatlog.NewRedisRepository(&chatlog.Config{
		Client:      client,
		Clock:       clock.Fixed{At: testNow},
		IDGenerator: idgen.NewSequential("msg"),
		MaxMessages: 3,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisChatLogTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisChatLogTestSuite) TestNewRedisRepositoryValidation() {
	client, _ := redismock.NewClientMock()

	testCases := []struct {
		name   string
		config *chatlog.Config
		errMsg string
	}{
		{name: "nil config", config: nil, errMsg: "config is required"},
		{name: "missing client", config: &chatlog.Config{Clock: clock.New(), IDGenerator: idgen.NewUUID("")}, errMsg: "Client"},
		{name: "missing clock", config: &chatlog.Config{Client: client, IDGenerator: idgen.NewUUID("")}, errMsg: "Clock"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			repo, err := chatlog.NewRedisRepository(tc.config)
			s.Error(err)
			s.Contains(err.Error(), tc.errMsg)
			s.Nil(repo)
		})
	}
}

func (s *RedisChatLogTestSuite) TestCreateAssignsIDAndTime() {
	out, err := s.repo.Create(s.ctx, chatlog.CreateInput{
		Message: &entities.ChatMessage{Author: "user-1", Content: "Gain two surges"},
	})
	s.Require().NoError(err)
	s.Equal("msg_1", out.Message.ID)
	s.Equal(testNow, out.Message.CreatedAt)
	s.Equal("user-1", out.Message.Author)
}

func (s *RedisChatLogTestSuite) TestCreateRequiresMessage() {
	_, err := s.repo.Create(s.ctx, chatlog.CreateInput{})
	s.True(apperrors.IsInvalidArgument(err))
}

func (s *RedisChatLogTestSuite) TestListTrimsAndLimits() {
	for i := 1; i <= 4; i++ {
		_, err := s.repo.Create(s.ctx, chatlog.CreateInput{
			Message: &entities.ChatMessage{Content: fmt.Sprintf("message %d", i)},
		})
		s.Require().NoError(err)
	}

	all, err := s.repo.List(s.ctx, chatlog.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(all.Messages, 3)
	s.Equal("message 2", all.Messages[0].Content)
	s.Equal("message 4", all.Messages[2].Content)

	recent, err := s.repo.List(s.ctx, chatlog.ListInput{Limit: 1})
	s.Require().NoError(err)
	s.Require().Len(recent.Messages, 1)
	s.Equal("message 4", recent.Messages[0].Content)

	_, err = s.repo.List(s.ctx, chatlog.ListInput{Limit: -1})
	s.True(apperrors.IsInvalidArgument(err))
}

func (s *RedisChatLogTestSuite) TestClear() {
	_, err := s.repo.Create(s.ctx, chatlog.CreateInput{Message: &entities.ChatMessage{Content: "hi"}})
	s.Require().NoError(err)

	out, err := s.repo.Clear(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, out.MessagesDeleted)

	list, err := s.repo.List(s.ctx, chatlog.ListInput{})
	s.Require().NoError(err)
	s.Empty(list.Messages)
}

func TestRedisChatLogTestSuite(t *testing.T) {
	suite.Run(t, new(RedisChatLogTestSuite))
}

func TestListRedisFailure(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo, err := chatlog.NewRedisRepository(&chatlog.Config{
		Client:      client,
		Clock:       clock.New(),
		IDGenerator: idgen.NewUUID(""),
	})
	require.NoError(t, err)

	mock.ExpectLRange("chat_log:messages", 0, -1).SetErr(errors.New("connection refused"))

	_, err = repo.List(context.Background(), chatlog.ListInput{})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
