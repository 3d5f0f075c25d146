//go:build integration

package resources_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/orchestrators/resources"
	"github.com/KirkDiggler/vagabond-api/internal/pkg/clock"
	"github.com/KirkDiggler/vagabond-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/vagabond-api/internal/redis"
	chatlog "github.com/KirkDiggler/vagabond-api/internal/repositories/chat_log"
	"github.com/KirkDiggler/vagabond-api/internal/repositories/settings"
	"github.com/KirkDiggler/vagabond-api/internal/repositories/users"
	"github.com/KirkDiggler/vagabond-api/internal/rules"
	"github.com/KirkDiggler/vagabond-api/internal/services/chat"
	"github.com/KirkDiggler/vagabond-api/internal/socket"
)

func startRedis(t *testing.T) redisclient.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := redisclient.NewClient(endpoint, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

type participant struct {
	handler   *socket.Handler
	resources resources.Service
}

func newParticipant(t *testing.T, client redisclient.Client, id string, director bool) *participant {
	t.Helper()

	channel, err := socket.NewRedisChannel(&socket.RedisConfig{Client: client})
	require.NoError(t, err)
	handler, err := socket.NewHandler(&socket.HandlerConfig{Channel: channel, ParticipantID: id})
	require.NoError(t, err)

	settingsRepo, err := settings.NewRedisRepository(&settings.Config{Client: client})
	require.NoError(t, err)
	usersRepo, err := users.NewRedisRepository(&users.Config{Client: client})
	require.NoError(t, err)
	chatLog, err := chatlog.NewRedisRepository(&chatlog.Config{
		Client:      client,
		Clock:       clock.New(),
		IDGenerator: idgen.NewUUID("msg"),
	})
	require.NoError(t, err)
	chatService, err := chat.NewService(&chat.Config{ChatLog: chatLog, Users: usersRepo})
	require.NoError(t, err)

	orch, err := resources.NewOrchestrator(&resources.Config{
		Settings:      settingsRepo,
		Users:         usersRepo,
		Chat:          chatService,
		Rules:         rules.Default(),
		Emitter:       handler,
		Authoritative: director,
		Registrar:     handler,
	})
	require.NoError(t, err)

	return &participant{handler: handler, resources: orch}
}

func TestSpendOverRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	client := startRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	usersRepo, err := users.NewRedisRepository(&users.Config{Client: client})
	require.NoError(t, err)
	player := &entities.User{ID: "user-1", Name: "Avery", CharacterName: "Talia"}
	require.NoError(t, usersRepo.Put(ctx, player))
	require.NoError(t, usersRepo.Put(ctx, &entities.User{ID: "gm-1", Name: "Director", IsGM: true}))

	director := newParticipant(t, client, "gm-1", true)
	go func() { _ = director.handler.Listen(ctx) }()

	_, err = director.resources.SetHeroTokens(ctx, &resources.SetHeroTokensInput{
		User:  &entities.User{ID: "gm-1", IsGM: true},
		Value: 3,
	})
	require.NoError(t, err)

	requester := newParticipant(t, client, "user-1", false)

	// the director's subscription is asynchronous; repeat until a spend lands
	require.Eventually(t, func() bool {
		_, err := requester.resources.RequestHeroTokenSpend(ctx, &resources.RequestHeroTokenSpendInput{
			User:      player,
			SpendType: rules.SpendGainSurges,
		})
		require.NoError(t, err)

		time.Sleep(100 * time.Millisecond)
		out, err := requester.resources.GetResources(ctx)
		require.NoError(t, err)
		return out.Resources.HeroTokens < 3
	}, 10*time.Second, 200*time.Millisecond)
}
