package repository

import (
	"context"
	"time"

	"PriceScout/internal/domain/models"
)

// FetchOptions narrows a comparable-listings fetch.
type FetchOptions struct {
	MaxResults   int
	LookbackDays int
	Condition    string
	SoldOnly     bool
}

// ListingFetcher returns comparable listings for a query. Implementations
// own rate limiting, retries, and deduplication by item id, and surface
// transport failures as an empty list plus a logged warning. Zero results
// is a normal outcome, not an error.
type ListingFetcher interface {
	Fetch(ctx context.Context, query string, opts FetchOptions) ([]models.ComparableListing, error)
	Name() string
}

// AnalysisStore persists analysis results for pricing history.
type AnalysisStore interface {
	Init(ctx context.Context) error
	Store(ctx context.Context, res *models.PriceAnalysisResult) error
	History(ctx context.Context, terms string, from, to time.Time, limit int) ([]*models.PriceAnalysisResult, error)
	Health(ctx context.Context) error
	Close() error
}

// ResultPublisher publishes completed analysis results to downstream consumers.
type ResultPublisher interface {
	Publish(ctx context.Context, res *models.PriceAnalysisResult) error
	Close() error
}

// Metrics records operational counters for the pricing pipeline.
type Metrics interface {
	RecordAnalysis(outcome string, strategy string)
	RecordFetch(source, outcome string)
	RecordError(kind string)
	RecordSuggestedPrice(strategy string, price float64)
	RecordLatency(op string, seconds float64)
}
