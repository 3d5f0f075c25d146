package actors_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/vagabond-api/internal/entities"
	apperrors "github.com/KirkDiggler/vagabond-api/internal/errors"
	"github.com/KirkDiggler/vagabond-api/internal/repositories/actors"
	"github.com/KirkDiggler/vagabond-api/internal/testutils"
)

type RedisActorsTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    actors.Repository
	cleanup func()
}

func (s *RedisActorsTestSuite) SetupTest() {
	s.ctx = context.Background()

	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := actors.NewRedisRepository(&actors.Config{Client: client})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisActorsTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisActorsTestSuite) hero(id, owner string) *entities.Actor {
	return &entities.Actor{
		ID:      id,
		Name:    "Hero " + id,
		Type:    entities.ActorTypeCharacter,
		OwnerID: owner,
		Level:   3,
		Characteristics: entities.Characteristics{
			Might: 2,
		},
	}
}

func (s *RedisActorsTestSuite) TestCreateThenGet() {
	_, err := s.repo.Create(s.ctx, actors.CreateInput{Actor: s.hero("hero-1", "user-1")})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, actors.GetInput{ID: "hero-1"})
	s.Require().NoError(err)
	s.Equal("Hero hero-1", out.Actor.Name)
	s.Equal(2, out.Actor.Characteristics.Might)
}

func (s *RedisActorsTestSuite) TestCreateDuplicate() {
	_, err := s.repo.Create(s.ctx, actors.CreateInput{Actor: s.hero("hero-1", "")})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, actors.CreateInput{Actor: s.hero("hero-1", "")})
	s.True(apperrors.IsAlreadyExists(err))
}

func (s *RedisActorsTestSuite) TestCreateValidation() {
	testCases := []struct {
		name  string
		actor *entities.Actor
	}{
		{name: "nil actor", actor: nil},
		{name: "missing id", actor: &entities.Actor{Type: entities.ActorTypeNPC}},
		{name: "unknown type", actor: &entities.Actor{ID: "x", Type: "vehicle"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Create(s.ctx, actors.CreateInput{Actor: tc.actor})
			s.True(apperrors.IsInvalidArgument(err))
		})
	}
}

func (s *RedisActorsTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, actors.GetInput{ID: "nobody"})
	s.True(apperrors.IsNotFound(err))
}

func (s *RedisActorsTestSuite) TestUpdateMovesOwnerIndex() {
	_, err := s.repo.Create(s.ctx, actors.CreateInput{Actor: s.hero("hero-1", "user-1")})
	s.Require().NoError(err)

	moved := s.hero("hero-1", "user-2")
	_, err = s.repo.Update(s.ctx, actors.UpdateInput{Actor: moved})
	s.Require().NoError(err)

	first, err := s.repo.ListByOwner(s.ctx, actors.ListByOwnerInput{OwnerID: "user-1"})
	s.Require().NoError(err)
	s.Empty(first.Actors)

	second, err := s.repo.ListByOwner(s.ctx, actors.ListByOwnerInput{OwnerID: "user-2"})
	s.Require().NoError(err)
	s.Require().Len(second.Actors, 1)
	s.Equal("hero-1", second.Actors[0].ID)
}

func (s *RedisActorsTestSuite) TestUpdateMissing() {
	_, err := s.repo.Update(s.ctx, actors.UpdateInput{Actor: s.hero("ghost", "")})
	s.True(apperrors.IsNotFound(err))
}

func (s *RedisActorsTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, actors.CreateInput{Actor: s.hero("hero-1", "user-1")})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, actors.DeleteInput{ID: "hero-1"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, actors.GetInput{ID: "hero-1"})
	s.True(apperrors.IsNotFound(err))

	out, err := s.repo.ListByOwner(s.ctx, actors.ListByOwnerInput{OwnerID: "user-1"})
	s.Require().NoError(err)
	s.Empty(out.Actors)
}

func (s *RedisActorsTestSuite) TestListByOwnerIsSorted() {
	for _, id := range []string{"hero-3", "hero-1", "hero-2"} {
		_, err := s.repo.Create(s.ctx, actors.CreateInput{Actor: s.hero(id, "user-1")})
		s.Require().NoError(err)
	}

	out, err := s.repo.ListByOwner(s.ctx, actors.ListByOwnerInput{OwnerID: "user-1"})
	s.Require().NoError(err)
	s.Require().Len(out.Actors, 3)
	s.Equal("hero-1", out.Actors[0].ID)
	s.Equal("hero-3", out.Actors[2].ID)

	_, err = s.repo.ListByOwner(s.ctx, actors.ListByOwnerInput{})
	s.True(apperrors.IsInvalidArgument(err))
}

func TestRedisActorsTestSuite(t *testing.T) {
	suite.Run(t, new(RedisActorsTestSuite))
}

func TestListByOwnerCleansStaleIndex(t *testing.T) {
	client, mock := redismock.NewClientMock()

	repo, err := actors.NewRedisRepository(&actors.Config{Client: client})
	require.NoError(t, err)

	mock.ExpectSMembers("actor:owner:user-1").SetVal([]string{"gone"})
	mock.ExpectGet("actor:gone").RedisNil()
	mock.ExpectSRem("actor:owner:user-1", "gone").SetVal(1)

	out, err := repo.ListByOwner(context.Background(), actors.ListByOwnerInput{OwnerID: "user-1"})
	require.NoError(t, err)
	require.Empty(t, out.Actors)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStoreFailure(t *testing.T) {
	client, mock := redismock.NewClientMock()

	repo, err := actors.NewRedisRepository(&actors.Config{Client: client})
	require.NoError(t, err)

	mock.ExpectGet("actor:hero-1").SetErr(errors.New("connection reset"))

	_, err = repo.Get(context.Background(), actors.GetInput{ID: "hero-1"})
	require.Error(t, err)
	require.False(t, apperrors.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
