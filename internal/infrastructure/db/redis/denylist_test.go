package redis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDenylistKey(t *testing.T) {
	k1 := denylistKey("token-a")
	k2 := denylistKey("token-b")

	if !strings.HasPrefix(k1, "revoked:") {
		t.Fatalf("unexpected key prefix: %s", k1)
	}
	if len(k1) != len("revoked:")+64 {
		t.Fatalf("expected hex sha256 suffix, got %s", k1)
	}
	if k1 == k2 {
		t.Fatalf("distinct tokens must map to distinct keys")
	}
	if k1 != denylistKey("token-a") {
		t.Fatalf("key must be deterministic")
	}
	if strings.Contains(k1, "token-a") {
		t.Fatalf("raw token must not appear in the key")
	}
}

func TestRevoke_ExpiredTokenSkipsRedis(t *testing.T) {
	// Nothing listens on this address; a round trip would fail.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond})
	defer client.Close()

	d := NewTokenDenylist(client)
	if err := d.Revoke(context.Background(), "tok", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("expired token should be a no-op, got %v", err)
	}
}

func newMiniredisDenylist(t *testing.T) (*TokenDenylist, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client, err := Connect(context.Background(), Config{Addr: srv.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenDenylist(client), srv
}

func TestTokenDenylist_RevokeUntilExpiry(t *testing.T) {
	d, srv := newMiniredisDenylist(t)
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }

	revoked, err := d.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "tok", now.Add(10*time.Minute)))
	assert.Equal(t, 10*time.Minute, srv.TTL(denylistKey("tok")))

	revoked, err = d.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	other, err := d.IsRevoked(ctx, "other")
	require.NoError(t, err)
	assert.False(t, other)

	srv.FastForward(11 * time.Minute)
	revoked, err = d.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked, "entry should expire with the token")
}

func TestTokenDenylist_ServerDown(t *testing.T) {
	d, srv := newMiniredisDenylist(t)
	srv.Close()

	_, err := d.IsRevoked(context.Background(), "tok")
	assert.Error(t, err)
	assert.Error(t, d.Revoke(context.Background(), "tok", time.Now().Add(time.Minute)))
}

func TestPinger(t *testing.T) {
	srv := miniredis.RunT(t)
	client, err := Connect(context.Background(), Config{Addr: srv.Addr()})
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, Pinger{Client: client}.Ping(context.Background()))
	srv.Close()
	assert.Error(t, Pinger{Client: client}.Ping(context.Background()))
}
