package redis

import (
	"context"
	"fmt"
	"time"

	"fair-wager-core/config"
	"fair-wager-core/internal/core/ports"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const lockKeyPrefix = "lock:"

// releaseScript deletes the lock only when the caller still holds it, so a
// holder whose TTL already expired cannot free a lock re-acquired by someone
// else.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// AccountLock implements ports.AccountLocker on Redis SET NX PX with a
// per-holder token. Acquisition polls at a fixed interval until the
// configured bound elapses.
type AccountLock struct {
	client        *goredis.Client
	retryInterval time.Duration
	acquireBound  time.Duration
	log           zerolog.Logger
}

func NewAccountLock(client *goredis.Client, cfg config.LockConfig, log zerolog.Logger) *AccountLock {
	return &AccountLock{
		client:        client,
		retryInterval: cfg.RetryInterval,
		acquireBound:  cfg.AcquireTimeout,
		log:           log,
	}
}

func (l *AccountLock) Acquire(ctx context.Context, key string, ttl time.Duration) (string, error) {
	token := uuid.New().String()
	deadline := time.Now().Add(l.acquireBound)

	for {
		ok, err := l.client.SetNX(ctx, lockKeyPrefix+key, token, ttl).Result()
		if err != nil {
			return "", fmt.Errorf("acquiring lock %s: %w", key, err)
		}
		if ok {
			return token, nil
		}
		if time.Now().After(deadline) {
			l.log.Warn().Str("key", key).Dur("bound", l.acquireBound).Msg("Lock acquisition timed out")
			return "", ports.ErrLockNotAcquired
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(l.retryInterval):
		}
	}
}

func (l *AccountLock) Release(ctx context.Context, key string, token string) error {
	res, err := l.client.Eval(ctx, releaseScript, []string{lockKeyPrefix + key}, token).Result()
	if err != nil {
		return fmt.Errorf("releasing lock %s: %w", key, err)
	}
	if n, ok := res.(int64); ok && n == 0 {
		// Expired or taken over; nothing to free.
		l.log.Debug().Str("key", key).Msg("Lock already released or lost")
	}
	return nil
}
