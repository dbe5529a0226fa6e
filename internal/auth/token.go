package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenStore keeps opaque bearer tokens in Redis, keyed by a random ID with
// the user id as value. A token disappears when its TTL lapses or when it is
// revoked on logout.
type TokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

// ErrTokenInvalid indicates a missing or expired bearer token.
var ErrTokenInvalid = errors.New("token is not valid")

// NewTokenStore constructs a TokenStore.
func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{client: client, ttl: ttl}
}

// Issue creates a fresh token for the user.
func (s *TokenStore) Issue(ctx context.Context, userID int64) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, s.key(token), strconv.FormatInt(userID, 10), s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the user id a token belongs to.
func (s *TokenStore) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrTokenInvalid
	}
	val, err := s.client.Get(ctx, s.key(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrTokenInvalid
		}
		return 0, err
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, ErrTokenInvalid
	}
	return id, nil
}

// Revoke deletes a token, typically on logout.
func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	err := s.client.Del(ctx, s.key(token)).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

func (s *TokenStore) key(token string) string {
	return "fms:token:" + token
}
