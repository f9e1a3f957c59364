package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"echo-widget/internal/model"
)

type redisRepository struct {
	rdb *redis.Client
}

// NewRedisRepository returns a ConfigCache backed by Redis. Entries carry a
// key TTL, so Redis expires them on its own.
func NewRedisRepository(rdb *redis.Client) ConfigCache {
	return &redisRepository{rdb: rdb}
}

func configKey(recordID string) string { return fmt.Sprintf("brandconfig:%s", recordID) }

func (r *redisRepository) Get(ctx context.Context, recordID string) (*model.CachedConfig, error) {
	val, err := r.rdb.Get(ctx, configKey(recordID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not read cached config: %w", err)
	}
	var entry model.CachedConfig
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return nil, fmt.Errorf("could not decode cached config: %w", err)
	}
	return &entry, nil
}

func (r *redisRepository) Put(ctx context.Context, entry *model.CachedConfig) error {
	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	val, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("could not encode cached config: %w", err)
	}
	return r.rdb.Set(ctx, configKey(entry.RecordID), val, ttl).Err()
}

func (r *redisRepository) Delete(ctx context.Context, recordID string) error {
	return r.rdb.Del(ctx, configKey(recordID)).Err()
}

// PurgeExpired is a no-op: Redis drops keys when their TTL runs out.
func (r *redisRepository) PurgeExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
