package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage keeps session id -> user id entries with a TTL. A login writes
// one, the auth middleware reads it, a logout deletes it.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func (s *Storage) Set(ctx context.Context, sessionID, userID string, expiration time.Duration) error {
	return s.redis.Set(ctx, key(sessionID), userID, expiration).Err()
}

func (s *Storage) Get(ctx context.Context, sessionID string) (string, error) {
	return s.redis.Get(ctx, key(sessionID)).Result()
}

func (s *Storage) Delete(ctx context.Context, sessionID string) error {
	return s.redis.Del(ctx, key(sessionID)).Err()
}

func key(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}
