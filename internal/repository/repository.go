package repository

import (
	"context"
	"time"

	"echo-widget/internal/model"
)

// ConfigCache stores configuration overlays per record id.
type ConfigCache interface {
	Get(ctx context.Context, recordID string) (*model.CachedConfig, error)
	Put(ctx context.Context, entry *model.CachedConfig) error
	Delete(ctx context.Context, recordID string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// noopCache never holds anything.
type noopCache struct{}

// NewNoopCache returns a ConfigCache that disables caching.
func NewNoopCache() ConfigCache { return noopCache{} }

func (noopCache) Get(context.Context, string) (*model.CachedConfig, error) { return nil, ErrNotFound }
func (noopCache) Put(context.Context, *model.CachedConfig) error           { return nil }
func (noopCache) Delete(context.Context, string) error                     { return nil }
func (noopCache) PurgeExpired(context.Context, time.Time) (int64, error)   { return 0, nil }
