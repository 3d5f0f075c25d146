package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient so tests can swap in miniredis or
// redismock clients.
type Client interface {
	redis.UniversalClient
}

// Nil is returned by reads of missing keys.
const Nil = redis.Nil
