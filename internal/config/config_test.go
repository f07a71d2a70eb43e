package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	// Empty values take the unset path in getEnv, shielding the test from
	// whatever the host environment carries.
	t.Setenv("DEFAULT_BUFFER_MINUTES", "")
	t.Setenv("RESERVATION_LOCK_WAIT", "")
	t.Setenv("RESERVATION_LOCK_LEASE", "")
	t.Setenv("SERVER_PORT", "")

	cfg := Load()

	assert.Equal(t, 5, cfg.DefaultBufferMinutes)
	assert.Equal(t, 3*time.Second, cfg.LockWait)
	assert.Equal(t, 10*time.Second, cfg.LockLease)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DEFAULT_BUFFER_MINUTES", "10")
	t.Setenv("RESERVATION_LOCK_WAIT", "1s")
	t.Setenv("RESERVATION_LOCK_LEASE", "30s")
	t.Setenv("SERVER_PORT", "9090")

	cfg := Load()

	assert.Equal(t, 10, cfg.DefaultBufferMinutes)
	assert.Equal(t, time.Second, cfg.LockWait)
	assert.Equal(t, 30*time.Second, cfg.LockLease)
	assert.Equal(t, ":9090", cfg.Addr())
}

func TestLoadIgnoresMalformedEnv(t *testing.T) {
	t.Setenv("DEFAULT_BUFFER_MINUTES", "a few")
	t.Setenv("RESERVATION_LOCK_WAIT", "soon")

	cfg := Load()

	assert.Equal(t, 5, cfg.DefaultBufferMinutes)
	assert.Equal(t, 3*time.Second, cfg.LockWait)
}
