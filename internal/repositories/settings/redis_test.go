package settings_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	apperrors "github.com/KirkDiggler/vagabond-api/internal/errors"
	"github.com/KirkDiggler/vagabond-api/internal/repositories/settings"
	"github.com/KirkDiggler/vagabond-api/internal/testutils"
)

type RedisSettingsTestSuite struct {
	suite.Suite
	ctx     context.Context
	repo    settings.Repository
	cleanup func()
}

func (s *RedisSettingsTestSuite) SetupTest() {
	s.ctx = context.Background()

	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	repo, err := settings.NewRedisRepository(&settings.Config{Client: client})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisSettingsTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisSettingsTestSuite) TestNewRedisRepositoryRequiresClient() {
	repo, err := settings.NewRedisRepository(&settings.Config{})
	s.Error(err)
	s.Nil(repo)

	repo, err = settings.NewRedisRepository(nil)
	s.Error(err)
	s.Nil(repo)
}

func (s *RedisSettingsTestSuite) TestGetUnsetReadsZero() {
	out, err := s.repo.Get(s.ctx, settings.GetInput{Name: settings.HeroTokens})
	s.Require().NoError(err)
	s.Equal(settings.Counter{Value: 0}, out.Counter)
}

func (s *RedisSettingsTestSuite) TestGetValidatesName() {
	_, err := s.repo.Get(s.ctx, settings.GetInput{})
	s.True(apperrors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, settings.GetInput{Name: "victories"})
	s.True(apperrors.IsInvalidArgument(err))
}

func (s *RedisSettingsTestSuite) TestSetThenGet() {
	out, err := s.repo.Set(s.ctx, settings.SetInput{Name: settings.Malice, Counter: settings.Counter{Value: 4}})
	s.Require().NoError(err)
	s.Equal(0, out.Previous.Value)
	s.Equal(4, out.Counter.Value)

	out, err = s.repo.Set(s.ctx, settings.SetInput{Name: settings.Malice, Counter: settings.Counter{Value: 1}})
	s.Require().NoError(err)
	s.Equal(4, out.Previous.Value)

	got, err := s.repo.Get(s.ctx, settings.GetInput{Name: settings.Malice})
	s.Require().NoError(err)
	s.Equal(1, got.Counter.Value)

	// other counters are untouched
	got, err = s.repo.Get(s.ctx, settings.GetInput{Name: settings.HeroTokens})
	s.Require().NoError(err)
	s.Equal(0, got.Counter.Value)
}

func (s *RedisSettingsTestSuite) TestWatchReceivesChanges() {
	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
	defer cancel()

	changes, stop, err := s.repo.Watch(ctx)
	s.Require().NoError(err)
	defer stop()

	_, err = s.repo.Set(ctx, settings.SetInput{
		Name:    settings.HeroTokens,
		Counter: settings.Counter{Value: 3},
		UserID:  "gm-1",
	})
	s.Require().NoError(err)

	select {
	case change := <-changes:
		s.Equal(settings.HeroTokens, change.Name)
		s.Equal(3, change.Counter.Value)
		s.Equal("gm-1", change.UserID)
	case <-ctx.Done():
		s.Fail("timed out waiting for setting change")
	}

	stop()
	stop()
}

func (s *RedisSettingsTestSuite) TestConcurrentSetsReportDistinctPrevious() {
	const writers = 8

	type result struct {
		previous int
		err      error
	}
	results := make([]result, writers)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := s.repo.Set(s.ctx, settings.SetInput{
				Name:    settings.HeroTokens,
				Counter: settings.Counter{Value: i + 1},
			})
			if err != nil {
				results[i] = result{err: err}
				return
			}
			results[i] = result{previous: out.Previous.Value}
		}(i)
	}
	wg.Wait()

	// every successful write replaced a different value, so none was lost
	seen := map[int]bool{}
	succeeded := 0
	for _, r := range results {
		if r.err != nil {
			s.True(apperrors.IsUnavailable(r.err), "unexpected error: %v", r.err)
			continue
		}
		succeeded++
		s.False(seen[r.previous], "previous value %d reported twice", r.previous)
		seen[r.previous] = true
	}
	s.Positive(succeeded)
}

func (s *RedisSettingsTestSuite) TestWatchStopConcurrently() {
	changes, stop, err := s.repo.Watch(s.ctx)
	s.Require().NoError(err)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stop()
		}()
	}
	wg.Wait()

	select {
	case _, ok := <-changes:
		s.False(ok)
	case <-time.After(5 * time.Second):
		s.Fail("changes channel was not closed after stop")
	}
}

func TestRedisSettingsTestSuite(t *testing.T) {
	suite.Run(t, new(RedisSettingsTestSuite))
}

func TestSetStoreFailure(t *testing.T) {
	client, cleanup := testutils.CreateTestRedisClientWithContext(t, func(m *miniredis.Miniredis) {
		m.SetError("redis down")
	})
	defer cleanup()

	repo, err := settings.NewRedisRepository(&settings.Config{Client: client})
	require.NoError(t, err)

	_, err = repo.Set(context.Background(), settings.SetInput{Name: settings.HeroTokens, Counter: settings.Counter{Value: 1}})
	require.Error(t, err)
}

func TestGetMalformedValue(t *testing.T) {
	client, cleanup := testutils.CreateTestRedisClientWithContext(t, func(m *miniredis.Miniredis) {
		m.Set("settings:vagabond:malice", "not json")
	})
	defer cleanup()

	repo, err := settings.NewRedisRepository(&settings.Config{Client: client})
	require.NoError(t, err)

	_, err = repo.Get(context.Background(), settings.GetInput{Name: settings.Malice})
	require.Error(t, err)
}
