package brandconfig

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"echo-widget/internal/model"
	"echo-widget/internal/repository"
	"echo-widget/internal/widgetconfig"
)

// Source reports where a resolved configuration came from.
type Source string

const (
	SourceDefault  Source = "default"  // No record id was given.
	SourceRemote   Source = "remote"   // Freshly fetched.
	SourceCache    Source = "cache"    // Served from the overlay cache.
	SourceFallback Source = "fallback" // The fetch failed; defaults were used.
)

// OverlayFetcher is implemented by Fetcher.
type OverlayFetcher interface {
	Fetch(ctx context.Context, recordID string) (model.Options, error)
}

// Observer is told how each resolution went.
type Observer interface {
	ConfigResolved(source Source)
}

// Resolver produces the configuration of a new widget instance.
type Resolver struct {
	fetcher  OverlayFetcher
	cache    repository.ConfigCache
	defaults model.Config
	ttl      time.Duration
	observer Observer
	now      func() time.Time
}

// NewResolver creates a Resolver. defaults already include the legacy layer.
// A ttl of zero disables caching.
func NewResolver(fetcher OverlayFetcher, cache repository.ConfigCache, defaults model.Config, ttl time.Duration, observer Observer) *Resolver {
	if cache == nil {
		cache = repository.NewNoopCache()
	}
	return &Resolver{
		fetcher:  fetcher,
		cache:    cache,
		defaults: defaults,
		ttl:      ttl,
		observer: observer,
		now:      time.Now,
	}
}

// Defaults returns the configuration used when nothing is fetched.
func (r *Resolver) Defaults() model.Config { return r.defaults }

// Resolve never fails. Without a record id no fetch is attempted; any fetch
// or cache problem is logged and the defaults are used.
func (r *Resolver) Resolve(ctx context.Context, recordID string) (model.Config, Source) {
	cfg, source := r.resolve(ctx, recordID)
	if r.observer != nil {
		r.observer.ConfigResolved(source)
	}
	return cfg, source
}

func (r *Resolver) resolve(ctx context.Context, recordID string) (model.Config, Source) {
	if recordID == "" {
		return r.defaults, SourceDefault
	}

	if r.ttl > 0 {
		entry, err := r.cache.Get(ctx, recordID)
		switch {
		case err == nil && !entry.Expired(r.now()):
			return widgetconfig.Normalize(r.defaults, entry.Overlay), SourceCache
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			slog.Warn("Config cache lookup failed", "record_id", recordID, "error", err)
		}
	}

	overlay, err := r.fetcher.Fetch(ctx, recordID)
	if err != nil {
		slog.Warn("Failed to fetch brand config, using defaults", "record_id", recordID, "error", err)
		return r.defaults, SourceFallback
	}

	if r.ttl > 0 {
		now := r.now()
		entry := &model.CachedConfig{RecordID: recordID, Overlay: overlay, FetchedAt: now, ExpiresAt: now.Add(r.ttl)}
		if err := r.cache.Put(ctx, entry); err != nil {
			slog.Warn("Failed to cache brand config", "record_id", recordID, "error", err)
		}
	}
	return widgetconfig.Normalize(r.defaults, overlay), SourceRemote
}

// Invalidate drops the cached overlay of recordID so the next Resolve refetches it.
func (r *Resolver) Invalidate(ctx context.Context, recordID string) error {
	if err := r.cache.Delete(ctx, recordID); err != nil {
		return fmt.Errorf("failed to invalidate cached config for %s: %w", recordID, err)
	}
	return nil
}

// PurgeExpired removes stale cache entries and returns how many were removed.
func (r *Resolver) PurgeExpired(ctx context.Context) (int64, error) {
	return r.cache.PurgeExpired(ctx, r.now())
}
