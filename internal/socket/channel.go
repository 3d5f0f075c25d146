// Package socket carries typed envelopes between participants on the
// "system.vagabond" broadcast channel. Like a game socket, a participant
// never receives its own emits.
package socket

//go:generate mockgen -destination=mock/mock_channel.go -package=socketmock github.com/KirkDiggler/vagabond-api/internal/socket Channel

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/vagabond-api/internal/errors"
	redisclient "github.com/KirkDiggler/vagabond-api/internal/redis"
)

// Identifier is the broadcast channel name
const Identifier = "system.vagabond"

// Envelope is one message on the channel
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`

	// Sender identifies the emitting participant so it can skip its own echo
	Sender string `json:"sender,omitempty"`
}

// Channel is a broadcast transport
type Channel interface {
	Publish(ctx context.Context, env Envelope) error

	// Subscribe delivers envelopes until stop is called or ctx ends
	Subscribe(ctx context.Context) (<-chan Envelope, func(), error)
}

// RedisConfig configures a Redis pub/sub channel
type RedisConfig struct {
	Client redisclient.Client

	// Name defaults to Identifier
	Name string
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}

	return vb.Build()
}

// RedisChannel broadcasts over Redis pub/sub
type RedisChannel struct {
	client redisclient.Client
	name   string
}

// NewRedisChannel creates a Redis-backed channel
func NewRedisChannel(cfg *RedisConfig) (*RedisChannel, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	name := cfg.Name
	if name == "" {
		name = Identifier
	}

	return &RedisChannel{client: cfg.Client, name: name}, nil
}

var _ Channel = (*RedisChannel)(nil)

// Publish sends env to every subscriber
func (c *RedisChannel) Publish(ctx context.Context, env Envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return errors.Wrap(err, "failed to marshal envelope")
	}
	if err := c.client.Publish(ctx, c.name, data).Err(); err != nil {
		return errors.Wrapf(err, "failed to publish on %s", c.name)
	}
	return nil
}

// Subscribe listens on the channel
func (c *RedisChannel) Subscribe(ctx context.Context) (<-chan Envelope, func(), error) {
	pubsub := c.client.Subscribe(ctx, c.name)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, errors.Wrapf(err, "failed to subscribe to %s", c.name)
	}

	out := make(chan Envelope)
	done := make(chan struct{})
	go func() {
		defer close(out)
		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var env Envelope
				if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
					slog.Error("Dropping malformed envelope",
						"channel", c.name,
						"error", err,
					)
					continue
				}
				select {
				case out <- env:
				case <-ctx.Done():
					return
				case <-done:
					return
				}
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			_ = pubsub.Close()
		})
	}

	return out, stop, nil
}

// LocalChannel is an in-process channel for single-binary use and tests
type LocalChannel struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]*localSub
}

type localSub struct {
	inbox chan Envelope
	done  chan struct{}
}

// NewLocalChannel creates an empty in-process channel
func NewLocalChannel() *LocalChannel {
	return &LocalChannel{subs: map[int]*localSub{}}
}

var _ Channel = (*LocalChannel)(nil)

// Publish delivers env to every current subscriber, blocking until each has
// accepted it, stopped, or ctx ends.
func (c *LocalChannel) Publish(ctx context.Context, env Envelope) error {
	c.mu.RLock()
	subs := make([]*localSub, 0, len(c.subs))
	for _, sub := range c.subs {
		subs = append(subs, sub)
	}
	c.mu.RUnlock()

	for _, sub := range subs {
		select {
		case sub.inbox <- env:
		case <-sub.done:
		case <-ctx.Done():
			return errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "publish interrupted")
		}
	}
	return nil
}

// Subscribe registers a new subscriber
func (c *LocalChannel) Subscribe(ctx context.Context) (<-chan Envelope, func(), error) {
	sub := &localSub{
		inbox: make(chan Envelope, 16),
		done:  make(chan struct{}),
	}

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = sub
	c.mu.Unlock()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
			close(sub.done)
		})
	}

	// out is owned by this goroutine so publishers never send on a closed channel
	out := make(chan Envelope)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				stop()
				return
			case <-sub.done:
				return
			case env := <-sub.inbox:
				select {
				case out <- env:
				case <-ctx.Done():
					stop()
					return
				case <-sub.done:
					return
				}
			}
		}
	}()

	return out, stop, nil
}
