package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/alex-pricope/simple-polls/storage"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSessionRevocation(t *testing.T) {
	mr := miniredis.RunT(t)
	s := &storage.RedisSessionStorage{Client: storage.MustRedis("redis://" + mr.Addr())}
	ctx := context.Background()

	revoked, err := s.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, "abc", time.Minute))
	revoked, err = s.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = s.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked, "revocation expires with the token")

	require.NoError(t, s.Revoke(ctx, "expired", 0))
	revoked, err = s.IsRevoked(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, revoked, "already-expired tokens need no entry")
}
