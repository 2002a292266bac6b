package throttle

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists throttle state in Redis so the cooldown survives
// process restarts and is shared across replicas. Keys are hashed for
// privacy and expire with the cooldown window.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) LastSubmission(ctx context.Context, key string) (time.Time, bool, error) {
	val, err := s.client.Get(ctx, s.redisKey(key)).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}

	nanos, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, err
	}
	return time.Unix(0, nanos), true, nil
}

func (s *RedisStore) Record(ctx context.Context, key string, at time.Time) error {
	return s.client.Set(ctx, s.redisKey(key), strconv.FormatInt(at.UnixNano(), 10), s.ttl).Err()
}

func (s *RedisStore) redisKey(key string) string {
	return fmt.Sprintf("throttle:%x", sha256.Sum256([]byte(key)))
}
