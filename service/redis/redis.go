package redis

import (
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/treesdao/goapi/base/ctx"
)

// Forever means the key has no associated expire
const Forever = time.Duration(-1)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = redis.ErrNil

	// ErrNoTTL is returned when the key exists but has no associated expire
	ErrNoTTL = fmt.Errorf("key has no associated expire")

	// ErrGapTime is returned when no pool is available to serve the command
	ErrGapTime = fmt.Errorf("no available pool")

	// ErrExpireNotExistOrTimeout is returned when the key does not exist or
	// the timeout could not be set
	ErrExpireNotExistOrTimeout = fmt.Errorf("key not exist or timeout cannot be set")
)

// Service abstracts the redis layer
type Service interface {
	// Get returns the value of key
	Get(context ctx.Ctx, key string) (val []byte, err error)

	// Set sets key to hold val, expire mean expire time for this key
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error

	// Del removes the specified keys and returns the number of keys removed
	Del(context ctx.Ctx, keys ...string) (int, error)

	// Exists returns if the key exists
	Exists(context ctx.Ctx, key string) (bool, error)

	// TTL returns the remaining time to live of a key in seconds
	TTL(context ctx.Ctx, key string) (int, error)

	// Incr increments the number stored at key by one. If the key does not
	// exist, it is set to 0 before performing the operation.
	Incr(context ctx.Ctx, key string) (int64, error)

	// Incrby increments the number stored at key by val
	Incrby(context ctx.Ctx, key string, val int) (int64, error)
}
