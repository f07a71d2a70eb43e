package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewManager(client, 5*time.Second), mr
}

func TestAcquireRelease(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	token, err := m.Acquire(ctx, "reservation:1:2026-09-07", 100*time.Millisecond)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Second attempt on the held key times out.
	_, err = m.Acquire(ctx, "reservation:1:2026-09-07", 50*time.Millisecond)
	assert.ErrorIs(t, err, ErrNotAcquired)

	require.NoError(t, m.Release(ctx, "reservation:1:2026-09-07", token))

	// Freed key can be taken again.
	_, err = m.Acquire(ctx, "reservation:1:2026-09-07", 50*time.Millisecond)
	assert.NoError(t, err)
}

func TestReleaseRequiresOwnToken(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()

	token, err := m.Acquire(ctx, "k", 50*time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, m.Release(ctx, "k", "someone-elses-token"))
	assert.True(t, mr.Exists("k"), "foreign token must not release the lease")

	require.NoError(t, m.Release(ctx, "k", token))
	assert.False(t, mr.Exists("k"))
}

func TestLeaseExpiry(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()

	_, err := m.Acquire(ctx, "k", 50*time.Millisecond)
	require.NoError(t, err)

	mr.FastForward(6 * time.Second)

	_, err = m.Acquire(ctx, "k", 50*time.Millisecond)
	assert.NoError(t, err, "expired lease should be claimable")
}

func TestDifferentKeysDoNotContend(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = m.Acquire(ctx, "reservation:"+string(rune('a'+i)), 50*time.Millisecond)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "key %d", i)
	}
}
