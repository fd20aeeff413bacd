package repository

import (
	"context"
	"testing"
	"time"

	"PriceScout/internal/domain/models"
	domrepo "PriceScout/internal/domain/repository"
	"PriceScout/pkg/cache"
	applogger "PriceScout/pkg/logger"
)

type fakeFetcher struct {
	comps []models.ComparableListing
	calls int
}

func (f *fakeFetcher) Fetch(ctx context.Context, query string, opts domrepo.FetchOptions) ([]models.ComparableListing, error) {
	f.calls++
	return f.comps, nil
}

func (f *fakeFetcher) Name() string { return "fake" }

func newCachedTestLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func TestCachedFetcherHitsSourceOnce(t *testing.T) {
	inner := &fakeFetcher{comps: []models.ComparableListing{{ItemID: "1", Title: "w", Price: 10}}}
	f := NewCachedFetcher(inner, cache.NewMemoryCache(), time.Minute, newCachedTestLogger(t))

	opts := domrepo.FetchOptions{MaxResults: 20, LookbackDays: 90, SoldOnly: true}
	ctx := context.Background()

	first, err := f.Fetch(ctx, "widget", opts)
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := f.Fetch(ctx, "widget", opts)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if inner.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", inner.calls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].ItemID != "1" {
		t.Fatalf("cache returned wrong data: %+v", second)
	}
}

func TestCachedFetcherKeyVariesWithOptions(t *testing.T) {
	inner := &fakeFetcher{comps: []models.ComparableListing{{ItemID: "1", Title: "w", Price: 10}}}
	f := NewCachedFetcher(inner, cache.NewMemoryCache(), time.Minute, newCachedTestLogger(t))

	ctx := context.Background()
	if _, err := f.Fetch(ctx, "widget", domrepo.FetchOptions{SoldOnly: true}); err != nil {
		t.Fatalf("sold fetch: %v", err)
	}
	if _, err := f.Fetch(ctx, "widget", domrepo.FetchOptions{SoldOnly: false}); err != nil {
		t.Fatalf("active fetch: %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("sold and active must cache separately, calls = %d", inner.calls)
	}
}

func TestCachedFetcherSkipsEmptyResults(t *testing.T) {
	inner := &fakeFetcher{}
	f := NewCachedFetcher(inner, cache.NewMemoryCache(), time.Minute, newCachedTestLogger(t))

	ctx := context.Background()
	opts := domrepo.FetchOptions{SoldOnly: true}
	if _, err := f.Fetch(ctx, "widget", opts); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := f.Fetch(ctx, "widget", opts); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("empty results must not be cached, calls = %d", inner.calls)
	}
}
