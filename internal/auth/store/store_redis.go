package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"crossverify/pkg/platform/sentinel"
)

const pendingCodeKeyPrefix = "otp:subject:"

// RedisCodeStore is the distributed CodeStore. Redis owns expiry via key
// TTL, so an aged-out code is indistinguishable from one that never existed
// and surfaces as not-found.
type RedisCodeStore struct {
	client *redis.Client
}

func NewRedisCodeStore(client *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{client: client}
}

func (s *RedisCodeStore) Save(ctx context.Context, subjectID, codeHash string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive: %w", sentinel.ErrInvalidState)
	}
	key := pendingCodeKeyPrefix + subjectID
	if err := s.client.Set(ctx, key, codeHash, ttl).Err(); err != nil {
		return fmt.Errorf("save pending code: %w", err)
	}
	return nil
}

// Take removes and returns the pending code hash atomically via GETDEL.
func (s *RedisCodeStore) Take(ctx context.Context, subjectID string) (string, error) {
	key := pendingCodeKeyPrefix + subjectID
	hash, err := s.client.GetDel(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("pending code for %s: %w", subjectID, sentinel.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("take pending code: %w", err)
	}
	return hash, nil
}
