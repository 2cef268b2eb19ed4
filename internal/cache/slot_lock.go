package cache

import (
	"context"
	"time"

	"dhara-backend/internal/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only if it still holds our token, so a lock
// that expired and was re-acquired by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SlotLocker is a short-lived mutual exclusion lock on a booking slot key.
type SlotLocker struct {
	client *redis.Client
}

func NewSlotLocker(client *redis.Client) *SlotLocker {
	return &SlotLocker{client: client}
}

// Acquire sets key with NX and a TTL. acquired is false when another holder
// owns the key. The returned release is safe to call more than once.
func (l *SlotLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	if l == nil || l.client == nil {
		return func() {}, true, nil
	}
	token := uuid.NewString()

	logger.ExternalServiceCall("redis", "setnx", "key", key)
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	logger.ExternalServiceResult("redis", "setnx", err, "key", key, "acquired", ok)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	released := false
	release := func() {
		if released {
			return
		}
		released = true
		// The request context may already be cancelled by the time we release.
		rctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := releaseScript.Run(rctx, l.client, []string{key}, token).Err(); err != nil {
			logger.Warn("Failed to release slot lock", "key", key, "error", err)
		}
	}
	return release, true, nil
}
