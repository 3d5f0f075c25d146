// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/vagabond-api/internal/entities"
	"github.com/KirkDiggler/vagabond-api/internal/repositories/actors"
	actorsmock "github.com/KirkDiggler/vagabond-api/internal/repositories/actors/mock"
	usersmock "github.com/KirkDiggler/vagabond-api/internal/repositories/users/mock"
	"github.com/KirkDiggler/vagabond-api/internal/services/chat"
	chatmock "github.com/KirkDiggler/vagabond-api/internal/services/chat/mock"
)

// PostedAt is the timestamp ExpectChatPost stamps onto stored messages
var PostedAt = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// ExpectUserLookup sets up a mock expectation for resolving a user by ID
func ExpectUserLookup(ctx context.Context, mockRepo *usersmock.MockRepository, user *entities.User) *gomock.Call {
	return mockRepo.EXPECT().
		Get(ctx, user.ID).
		Return(user, nil)
}

// ExpectChatPost sets up a mock expectation for posting to chat. check, when
// set, inspects the input before the message is stored.
func ExpectChatPost(ctx any, mockChat *chatmock.MockService, check func(*chat.PostInput)) *gomock.Call {
	return mockChat.EXPECT().
		Post(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *chat.PostInput) (*chat.PostOutput, error) {
			if check != nil {
				check(input)
			}
			// Simulate repository behavior - it would set ID and timestamp
			msg := *input.Message
			if msg.ID == "" {
				msg.ID = "generated-message-id"
			}
			msg.CreatedAt = PostedAt
			return &chat.PostOutput{Message: &msg}, nil
		})
}

// ExpectOwnedActors sets up a mock expectation for listing a user's actors
func ExpectOwnedActors(
	ctx context.Context, mockRepo *actorsmock.MockRepository,
	ownerID string, owned ...*entities.Actor,
) *gomock.Call {
	return mockRepo.EXPECT().
		ListByOwner(ctx, actors.ListByOwnerInput{OwnerID: ownerID}).
		Return(&actors.ListByOwnerOutput{Actors: owned}, nil)
}

// ExpectActorGet sets up a mock expectation for loading one actor
func ExpectActorGet(
	ctx context.Context, mockRepo *actorsmock.MockRepository,
	actorID string, actor *entities.Actor, err error,
) *gomock.Call {
	if err != nil {
		return mockRepo.EXPECT().
			Get(ctx, actors.GetInput{ID: actorID}).
			Return(nil, err)
	}
	return mockRepo.EXPECT().
		Get(ctx, actors.GetInput{ID: actorID}).
		Return(&actors.GetOutput{Actor: actor}, nil)
}
