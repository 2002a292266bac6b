// Package redisrepo holds Redis-backed supporting stores.
package redisrepo

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyStore maps a caller-supplied idempotency key to the booking it
// created, so a replayed submission returns the original record instead of
// inserting a duplicate. Keys are hashed for privacy.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: ttl}
}

func (s *IdempotencyStore) Get(ctx context.Context, key string) (int64, bool, error) {
	val, err := s.client.Get(ctx, s.redisKey(key)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *IdempotencyStore) Set(ctx context.Context, key string, bookingID int64) error {
	return s.client.Set(ctx, s.redisKey(key), strconv.FormatInt(bookingID, 10), s.ttl).Err()
}

func (s *IdempotencyStore) redisKey(key string) string {
	return fmt.Sprintf("idempotency:%x", sha256.Sum256([]byte(key)))
}
