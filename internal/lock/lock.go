package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrNotAcquired is returned when the lock could not be taken within the
// caller's wait budget.
var ErrNotAcquired = errors.New("lock: not acquired")

// Manager hands out short-lived exclusive leases keyed by string. Leases
// expire on their own, so a crashed holder cannot block a key forever.
type Manager struct {
	client *redis.Client
	lease  time.Duration
	retry  time.Duration
}

func NewManager(client *redis.Client, lease time.Duration) *Manager {
	if lease <= 0 {
		lease = 10 * time.Second
	}
	return &Manager{
		client: client,
		lease:  lease,
		retry:  25 * time.Millisecond,
	}
}

// releaseScript deletes the key only if it still holds our token, so an
// expired lease grabbed by someone else is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
    return redis.call("del", KEYS[1])
end
return 0
`)

// Acquire takes the lease for key, polling until wait elapses or ctx is
// done. Returns the holder token needed by Release.
func (m *Manager) Acquire(ctx context.Context, key string, wait time.Duration) (string, error) {
	token := uuid.NewString()
	deadline := time.Now().Add(wait)

	for {
		ok, err := m.client.SetNX(ctx, key, token, m.lease).Result()
		if err != nil {
			return "", fmt.Errorf("lock: acquire %s: %w", key, err)
		}
		if ok {
			return token, nil
		}

		if time.Now().After(deadline) {
			return "", ErrNotAcquired
		}

		select {
		case <-ctx.Done():
			return "", ErrNotAcquired
		case <-time.After(m.retry):
		}
	}
}

// Release frees the lease if token still holds it.
func (m *Manager) Release(ctx context.Context, key, token string) error {
	if err := releaseScript.Run(ctx, m.client, []string{key}, token).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("lock: release %s: %w", key, err)
	}
	return nil
}
