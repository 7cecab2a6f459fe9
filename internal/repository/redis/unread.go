package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// UnreadCounter caches per-user unread message counts so the client's
// periodic badge refresh does not hit Postgres every time.
type UnreadCounter struct {
	client *redis.Client
	ttl    time.Duration
}

func NewUnreadCounter(client *redis.Client, ttl time.Duration) *UnreadCounter {
	return &UnreadCounter{client: client, ttl: ttl}
}

func unreadKey(userID string) string {
	return fmt.Sprintf("unread:%s", userID)
}

// Get returns the cached count; found is false on a miss.
func (c *UnreadCounter) Get(ctx context.Context, userID string) (int64, bool, error) {
	val, err := c.client.Get(ctx, unreadKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

func (c *UnreadCounter) Set(ctx context.Context, userID string, count int64) error {
	return c.client.Set(ctx, unreadKey(userID), count, c.ttl).Err()
}

// Invalidate drops the cache after a send or read so the next poll recounts.
func (c *UnreadCounter) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, unreadKey(userID)).Err()
}
