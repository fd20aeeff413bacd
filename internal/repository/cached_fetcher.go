package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"PriceScout/internal/domain/models"
	domrepo "PriceScout/internal/domain/repository"
	"PriceScout/pkg/cache"
	applogger "PriceScout/pkg/logger"
)

// CachedFetcher decorates a ListingFetcher with a read-through cache so
// repeated strategy trials against the same query do not hammer the
// upstream source. Empty results are not cached: they may be transient
// fetch failures in disguise.
type CachedFetcher struct {
	inner  domrepo.ListingFetcher
	cache  cache.Service
	ttl    time.Duration
	logger *applogger.Logger
}

func NewCachedFetcher(inner domrepo.ListingFetcher, c cache.Service, ttl time.Duration, logger *applogger.Logger) *CachedFetcher {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &CachedFetcher{inner: inner, cache: c, ttl: ttl, logger: logger}
}

func (f *CachedFetcher) Name() string { return f.inner.Name() }

func (f *CachedFetcher) Fetch(ctx context.Context, query string, opts domrepo.FetchOptions) ([]models.ComparableListing, error) {
	key := f.key(query, opts)

	var raw string
	if err := f.cache.Get(ctx, key, &raw); err == nil {
		var comps []models.ComparableListing
		if jerr := json.Unmarshal([]byte(raw), &comps); jerr == nil {
			return comps, nil
		}
		// stale or corrupt entry: fall through to the source
		_ = f.cache.Delete(ctx, key)
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		f.logger.Warn("fetch cache read failed", applogger.String("key", key), applogger.Error(err))
	}

	comps, err := f.inner.Fetch(ctx, query, opts)
	if err != nil {
		return comps, err
	}

	if len(comps) > 0 {
		if b, jerr := json.Marshal(comps); jerr == nil {
			if cerr := f.cache.Set(ctx, key, string(b), f.ttl); cerr != nil {
				f.logger.Warn("fetch cache write failed", applogger.String("key", key), applogger.Error(cerr))
			}
		}
	}
	return comps, nil
}

func (f *CachedFetcher) key(query string, opts domrepo.FetchOptions) string {
	raw := cache.GenerateKeyWithParams("fetch", f.inner.Name(), query, opts.MaxResults, opts.LookbackDays, opts.Condition, opts.SoldOnly)
	return cache.GenerateKey("pricescout", cache.HashKey(raw))
}
