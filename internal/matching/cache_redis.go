// internal/matching/cache_redis.go
package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"venture-match/internal/models"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "match:results:"

// RedisStore shares cached results between worker replicas. Expiry is
// delegated to Redis, so Sweep has nothing to do.
type RedisStore struct {
	client redis.Cmdable
}

func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string, _ time.Time) ([]models.MatchResult, bool, error) {
	val, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var results []models.MatchResult
	if err := json.Unmarshal([]byte(val), &results); err != nil {
		return nil, false, fmt.Errorf("decode cached results %s: %w", key, err)
	}
	return results, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, results []models.MatchResult, _ time.Time, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode results %s: %w", key, err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Sweep(context.Context, time.Time) (int, error) {
	return 0, nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, redisKeyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
