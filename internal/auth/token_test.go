package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestTokenStore(t *testing.T, ttl time.Duration) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTokenStore(client, ttl), srv
}

func TestTokenIssueAndResolve(t *testing.T) {
	store, _ := newTestTokenStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Issue(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, int64(42), userID)
}

func TestTokenResolveUnknownToken(t *testing.T) {
	store, _ := newTestTokenStore(t, time.Hour)

	_, err := store.Resolve(context.Background(), "not-a-token")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenRevoke(t *testing.T) {
	store, _ := newTestTokenStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Issue(ctx, 7)
	require.NoError(t, err)

	require.NoError(t, store.Revoke(ctx, token))

	_, err = store.Resolve(ctx, token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenExpires(t *testing.T) {
	store, srv := newTestTokenStore(t, time.Minute)
	ctx := context.Background()

	token, err := store.Issue(ctx, 7)
	require.NoError(t, err)

	srv.FastForward(2 * time.Minute)

	_, err = store.Resolve(ctx, token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
