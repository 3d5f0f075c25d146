package socket_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/vagabond-api/internal/socket"
	socketmock "github.com/KirkDiggler/vagabond-api/internal/socket/mock"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockChannel *socketmock.MockChannel
	handler     *socket.Handler
	ctx         context.Context
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockChannel = socketmock.NewMockChannel(s.ctrl)
	s.ctx = context.Background()

	handler, err := socket.NewHandler(&socket.HandlerConfig{
		Channel:       s.mockChannel,
		ParticipantID: "gm",
	})
	s.Require().NoError(err)
	s.handler = handler
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) TestEmitTagsSender() {
	payload := socket.SpendHeroTokenPayload{UserID: "u1", SpendType: "gainSurges"}

	s.mockChannel.EXPECT().
		Publish(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, env socket.Envelope) error {
			s.Equal(socket.TypeSpendHeroToken, env.Type)
			s.Equal("gm", env.Sender)
			s.JSONEq(`{"userId":"u1","spendType":"gainSurges"}`, string(env.Payload))
			return nil
		})

	s.NoError(s.handler.Emit(s.ctx, socket.TypeSpendHeroToken, payload))
}

func (s *HandlerTestSuite) TestEmitPublishFailure() {
	s.mockChannel.EXPECT().Publish(s.ctx, gomock.Any()).Return(errors.New("broken pipe"))

	s.Error(s.handler.Emit(s.ctx, socket.TypeSpendHeroToken, struct{}{}))
}

func (s *HandlerTestSuite) TestEmitRequiresType() {
	s.Error(s.handler.Emit(s.ctx, "", struct{}{}))
}

func (s *HandlerTestSuite) TestDispatch() {
	var calls []string
	s.handler.Register(socket.TypeSpendHeroToken, func(_ context.Context, payload json.RawMessage) error {
		calls = append(calls, string(payload))
		return nil
	})

	s.handler.Dispatch(s.ctx, socket.Envelope{Type: socket.TypeSpendHeroToken, Payload: json.RawMessage(`1`), Sender: "player"})
	// own echo is skipped
	s.handler.Dispatch(s.ctx, socket.Envelope{Type: socket.TypeSpendHeroToken, Payload: json.RawMessage(`2`), Sender: "gm"})
	// unknown types are dropped
	s.handler.Dispatch(s.ctx, socket.Envelope{Type: "rollInitiative", Payload: json.RawMessage(`3`)})

	s.Equal([]string{"1"}, calls)
}

func (s *HandlerTestSuite) TestDispatchHandlerErrorIsSwallowed() {
	s.handler.Register("boom", func(context.Context, json.RawMessage) error {
		return errors.New("handler failed")
	})

	s.NotPanics(func() {
		s.handler.Dispatch(s.ctx, socket.Envelope{Type: "boom"})
	})
}

func (s *HandlerTestSuite) TestListenOverLocalChannel() {
	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
	defer cancel()

	channel := socket.NewLocalChannel()
	gm, err := socket.NewHandler(&socket.HandlerConfig{Channel: channel, ParticipantID: "gm"})
	s.Require().NoError(err)
	player, err := socket.NewHandler(&socket.HandlerConfig{Channel: channel, ParticipantID: "player"})
	s.Require().NoError(err)

	received := make(chan socket.SpendHeroTokenPayload, 1)
	gm.Register(socket.TypeSpendHeroToken, func(_ context.Context, raw json.RawMessage) error {
		var p socket.SpendHeroTokenPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return err
		}
		select {
		case received <- p:
		default:
		}
		return nil
	})

	listening := make(chan error, 1)
	go func() { listening <- gm.Listen(ctx) }()

	// Listen subscribes asynchronously; retry until the envelope lands
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	payload := socket.SpendHeroTokenPayload{UserID: "u1", SpendType: "improveTest", Flavor: "Talia"}
	for {
		s.Require().NoError(player.Emit(ctx, socket.TypeSpendHeroToken, payload))
		select {
		case got := <-received:
			s.Equal(payload, got)
			cancel()
			s.NoError(<-listening)
			return
		case <-ticker.C:
		case <-ctx.Done():
			s.FailNow("timed out waiting for dispatch")
		}
	}
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
