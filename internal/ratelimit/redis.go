package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps attempts in a sorted set per key so several instances
// share one counter.
type RedisStore struct {
	client *redis.Client
	window time.Duration
	prefix string
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, window time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		window: window,
		prefix: "ratelimit:",
		now:    time.Now,
	}
}

func (s *RedisStore) key(k string) string {
	return s.prefix + k
}

func (s *RedisStore) Increment(ctx context.Context, key string) (int, error) {
	now := s.now()
	k := s.key(key)
	cutoff := now.Add(-s.window).UnixNano()
	member := fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString()[:8])

	var card *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, k, "-inf", strconv.FormatInt(cutoff, 10))
		pipe.ZAdd(ctx, k, redis.Z{Score: float64(now.UnixNano()), Member: member})
		card = pipe.ZCard(ctx, k)
		pipe.PExpire(ctx, k, s.window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to record attempt: %w", err)
	}
	return int(card.Val()), nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

// NewRedisClient parses url and checks connectivity.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
