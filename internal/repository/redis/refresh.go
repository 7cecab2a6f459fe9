package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshTokenStore keeps hashed refresh tokens with a TTL. Deleting the key
// is what invalidates a session: a missing key makes the next refresh fail,
// which forces the client back to login.
type RefreshTokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRefreshTokenStore(client *redis.Client, ttl time.Duration) *RefreshTokenStore {
	return &RefreshTokenStore{client: client, ttl: ttl}
}

func key(hash string) string {
	return fmt.Sprintf("refresh:%s", hash)
}

// Save stores the token hash mapped to its user.
func (s *RefreshTokenStore) Save(ctx context.Context, hash, userID string) error {
	return s.client.Set(ctx, key(hash), userID, s.ttl).Err()
}

// UserFor resolves the user owning a token hash. Returns empty when the
// token is unknown, expired or revoked.
func (s *RefreshTokenStore) UserFor(ctx context.Context, hash string) (string, error) {
	userID, err := s.client.Get(ctx, key(hash)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// Delete revokes one token.
func (s *RefreshTokenStore) Delete(ctx context.Context, hash string) error {
	return s.client.Del(ctx, key(hash)).Err()
}
