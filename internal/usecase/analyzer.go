package usecase

import (
	"context"
	"errors"
	"time"

	"PriceScout/internal/domain/models"
	domrepo "PriceScout/internal/domain/repository"
	"PriceScout/internal/services/extract"
	"PriceScout/internal/services/pricing"
	"PriceScout/internal/services/research"
	applogger "PriceScout/pkg/logger"
)

// ErrNoSearchTerms is the only hard failure the analyzer raises: neither
// explicit terms nor a usable item record were supplied. Everything else
// degrades to a manual-pricing result.
var ErrNoSearchTerms = errors.New("no search terms and no usable item record")

// AnalyzeInput carries one analysis request. Terms takes precedence over
// Item when both are set.
type AnalyzeInput struct {
	Terms         string
	Item          *models.ItemRecord
	MarkupPercent *float64
	SampleLimit   *int
}

// Analyzer derives a market-price recommendation from comparable sold
// listings, trying successively less specific search strategies until one
// yields enough data.
type Analyzer struct {
	fetcher   domrepo.ListingFetcher
	extractor *extract.Extractor
	research  *research.Generator
	metrics   domrepo.Metrics
	logger    *applogger.Logger
	opts      pricing.Options
}

func NewAnalyzer(
	fetcher domrepo.ListingFetcher,
	extractor *extract.Extractor,
	gen *research.Generator,
	metrics domrepo.Metrics,
	logger *applogger.Logger,
	opts pricing.Options,
) *Analyzer {
	return &Analyzer{
		fetcher:   fetcher,
		extractor: extractor,
		research:  gen,
		metrics:   metrics,
		logger:    logger,
		opts:      opts,
	}
}

// Options returns the analyzer's base engine configuration.
func (a *Analyzer) Options() pricing.Options { return a.opts }

// Analyze runs the full strategy trial loop and always returns a result
// object unless no search terms could be derived at all. The result's
// AnalysisID and AnalyzedAt are left for the caller to assign, so identical
// inputs against identical fetch data produce identical results.
func (a *Analyzer) Analyze(ctx context.Context, in AnalyzeInput) (*models.PriceAnalysisResult, error) {
	start := time.Now()
	opts := a.opts
	if in.MarkupPercent != nil {
		opts.MarkupPercent = *in.MarkupPercent
	}
	if in.SampleLimit != nil {
		opts.MaxResults = *in.SampleLimit
	}

	strategies := a.resolveStrategies(in)
	if len(strategies) == 0 {
		a.metrics.RecordError("no_search_terms")
		return nil, ErrNoSearchTerms
	}

	tried := make([]models.SearchStrategy, 0, len(strategies))
	for _, st := range strategies {
		tried = append(tried, st)

		comps := a.fetch(ctx, st.Terms, domrepo.FetchOptions{
			MaxResults:   opts.MaxResults,
			LookbackDays: opts.LookbackDays,
			SoldOnly:     true,
		})
		comps = pricing.Filter(comps, opts)
		comps = pricing.RejectOutliers(comps, opts.OutlierIQRMultiplier)

		if len(comps) < opts.MinResults {
			a.logger.Debug("strategy insufficient",
				applogger.String("terms", st.Terms),
				applogger.String("kind", string(st.Kind)),
				applogger.Int("sample", len(comps)),
			)
			continue
		}

		summary := pricing.Summarize(comps)
		suggested := pricing.SuggestedPrice(summary.Median, opts.MarkupPercent)
		confidence := pricing.ConfidenceScore(summary.SampleCount, opts.ConfidenceFullSample, summary.StdDev, summary.Median)

		a.metrics.RecordAnalysis("priced", string(st.Kind))
		a.metrics.RecordSuggestedPrice(string(st.Kind), suggested)
		a.metrics.RecordLatency("analyze", time.Since(start).Seconds())

		return &models.PriceAnalysisResult{
			Success:         true,
			SearchTermsUsed: st.Terms,
			Summary:         summary,
			SuggestedPrice:  suggested,
			ConfidenceScore: confidence,
			Comparables:     comps,
			StrategiesTried: tried,
		}, nil
	}

	// All strategies exhausted: fetch active listings with the most specific
	// strategy's terms for manual inspection. Never produces a price.
	first := strategies[0]
	active := a.fetch(ctx, first.Terms, domrepo.FetchOptions{
		MaxResults:   opts.MaxResults,
		LookbackDays: opts.LookbackDays,
		SoldOnly:     false,
	})

	a.metrics.RecordAnalysis("manual", string(first.Kind))
	a.metrics.RecordLatency("analyze", time.Since(start).Seconds())

	return &models.PriceAnalysisResult{
		Success:         false,
		SearchTermsUsed: first.Terms,
		Comparables:     active,
		StrategiesTried: tried,
		ResearchAids:    a.research.Aids(first.Terms, research.Params{}),
	}, nil
}

func (a *Analyzer) resolveStrategies(in AnalyzeInput) []models.SearchStrategy {
	if in.Terms != "" {
		return []models.SearchStrategy{{
			Terms:      in.Terms,
			Kind:       models.StrategyManual,
			Confidence: models.ConfidenceHigh,
		}}
	}
	if in.Item != nil {
		return a.extractor.Strategies(in.Item)
	}
	return nil
}

// fetch wraps the collaborator call: a fetch error for one strategy is
// logged and treated as zero results so the trial loop can continue.
func (a *Analyzer) fetch(ctx context.Context, terms string, opts domrepo.FetchOptions) []models.ComparableListing {
	comps, err := a.fetcher.Fetch(ctx, terms, opts)
	if err != nil {
		a.logger.Warn("fetch failed, treating as empty",
			applogger.String("terms", terms),
			applogger.Bool("sold_only", opts.SoldOnly),
			applogger.Error(err),
		)
		a.metrics.RecordFetch(a.fetcher.Name(), "error")
		return nil
	}
	outcome := "ok"
	if len(comps) == 0 {
		outcome = "empty"
	}
	a.metrics.RecordFetch(a.fetcher.Name(), outcome)
	return comps
}
