package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachable points at a port nothing listens on, so every command fails fast.
func unreachable(t *testing.T) *RedisRevoker {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisRevoker(rdb)
}

func TestKeyIsPrefixed(t *testing.T) {
	r := NewRedisRevoker(nil)
	assert.Equal(t, "session:revoked:abc", r.key("abc"))
}

func TestRevokeSkipsExpiredTokens(t *testing.T) {
	// 已过期的 token 不会访问 redis
	err := unreachable(t).Revoke(context.Background(), "old", time.Now().Add(-time.Minute))
	assert.NoError(t, err)
}

func TestRedisErrorsSurface(t *testing.T) {
	r := unreachable(t)

	err := r.Revoke(context.Background(), "live", time.Now().Add(time.Hour))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revoke token")

	revoked, err := r.IsRevoked(context.Background(), "live")
	require.Error(t, err)
	assert.False(t, revoked)
}
