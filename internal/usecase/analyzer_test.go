package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"PriceScout/internal/domain/models"
	domrepo "PriceScout/internal/domain/repository"
	"PriceScout/internal/services/extract"
	"PriceScout/internal/services/pricing"
	"PriceScout/internal/services/research"
	applogger "PriceScout/pkg/logger"
)

// stubFetcher serves canned listings keyed by query; active fetches
// (SoldOnly=false) read from a separate map.
type stubFetcher struct {
	sold   map[string][]models.ComparableListing
	active map[string][]models.ComparableListing
	err    error
	calls  []string
}

func (f *stubFetcher) Fetch(ctx context.Context, query string, opts domrepo.FetchOptions) ([]models.ComparableListing, error) {
	f.calls = append(f.calls, query)
	if f.err != nil {
		return nil, f.err
	}
	if opts.SoldOnly {
		return f.sold[query], nil
	}
	return f.active[query], nil
}

func (f *stubFetcher) Name() string { return "stub" }

type nopMetrics struct{}

func (nopMetrics) RecordAnalysis(outcome, strategy string)        {}
func (nopMetrics) RecordFetch(source, outcome string)             {}
func (nopMetrics) RecordError(kind string)                        {}
func (nopMetrics) RecordSuggestedPrice(strategy string, p float64) {}
func (nopMetrics) RecordLatency(op string, seconds float64)       {}

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func soldComps(prices ...float64) []models.ComparableListing {
	out := make([]models.ComparableListing, len(prices))
	for i, p := range prices {
		out[i] = models.ComparableListing{ItemID: "c", Title: "widget", Price: p, Source: models.SourceAPI}
	}
	return out
}

func newTestAnalyzer(t *testing.T, f domrepo.ListingFetcher) *Analyzer {
	t.Helper()
	return NewAnalyzer(f, extract.New(), research.New(), nopMetrics{}, testLogger(t), pricing.DefaultOptions())
}

func TestAnalyzeManualTermsSuccess(t *testing.T) {
	f := &stubFetcher{sold: map[string][]models.ComparableListing{
		"garden gnome": soldComps(100, 110, 105, 108, 102),
	}}
	a := newTestAnalyzer(t, f)

	res, err := a.Analyze(context.Background(), AnalyzeInput{Terms: "garden gnome"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.SearchTermsUsed != "garden gnome" {
		t.Fatalf("terms = %q", res.SearchTermsUsed)
	}
	if len(res.StrategiesTried) != 1 || res.StrategiesTried[0].Kind != models.StrategyManual {
		t.Fatalf("unexpected strategies %+v", res.StrategiesTried)
	}
	if res.Summary.SampleCount != 5 {
		t.Fatalf("sample = %d", res.Summary.SampleCount)
	}
	if res.SuggestedPrice <= res.Summary.Median {
		t.Fatalf("suggested %v not above median %v", res.SuggestedPrice, res.Summary.Median)
	}
	if res.AnalysisID != "" || !res.AnalyzedAt.IsZero() {
		t.Fatalf("identity fields must be left for the caller: %+v", res)
	}
}

func TestAnalyzeStrategyFallback(t *testing.T) {
	item := &models.ItemRecord{Title: "Apple iPhone 13 Pro Max 256GB Unlocked"}
	strategies := extract.New().Strategies(item)
	if len(strategies) < 2 {
		t.Fatalf("need at least two strategies, got %d", len(strategies))
	}

	// only the second strategy finds enough sold data
	f := &stubFetcher{sold: map[string][]models.ComparableListing{
		strategies[1].Terms: soldComps(200, 210, 205, 202, 208),
	}}
	a := newTestAnalyzer(t, f)

	res, err := a.Analyze(context.Background(), AnalyzeInput{Item: item})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success via fallback")
	}
	if res.SearchTermsUsed != strategies[1].Terms {
		t.Fatalf("terms = %q, want %q", res.SearchTermsUsed, strategies[1].Terms)
	}
	if len(res.StrategiesTried) != 2 {
		t.Fatalf("tried = %+v", res.StrategiesTried)
	}
}

func TestAnalyzeNoSearchTerms(t *testing.T) {
	a := newTestAnalyzer(t, &stubFetcher{})

	if _, err := a.Analyze(context.Background(), AnalyzeInput{}); !errors.Is(err, ErrNoSearchTerms) {
		t.Fatalf("expected ErrNoSearchTerms, got %v", err)
	}
	if _, err := a.Analyze(context.Background(), AnalyzeInput{Item: &models.ItemRecord{}}); !errors.Is(err, ErrNoSearchTerms) {
		t.Fatalf("expected ErrNoSearchTerms for empty item, got %v", err)
	}
}

func TestAnalyzeExhaustedFallsBackToActive(t *testing.T) {
	f := &stubFetcher{active: map[string][]models.ComparableListing{
		"garden gnome": {{ItemID: "a1", Title: "garden gnome", Price: 25, Source: models.SourceAPI}},
	}}
	a := newTestAnalyzer(t, f)

	res, err := a.Analyze(context.Background(), AnalyzeInput{Terms: "garden gnome"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Success {
		t.Fatalf("expected manual-research outcome")
	}
	if res.SuggestedPrice != 0 {
		t.Fatalf("no price may be suggested, got %v", res.SuggestedPrice)
	}
	if len(res.Comparables) != 1 {
		t.Fatalf("expected active listings attached, got %d", len(res.Comparables))
	}
	if res.ResearchAids == nil {
		t.Fatalf("expected research aids")
	}
	if !strings.Contains(res.ResearchAids.VerificationURLs.SoldListings, "garden+gnome") {
		t.Fatalf("sold URL missing terms: %q", res.ResearchAids.VerificationURLs.SoldListings)
	}
}

func TestAnalyzeFetchErrorTreatedAsEmpty(t *testing.T) {
	f := &stubFetcher{err: errors.New("boom")}
	a := newTestAnalyzer(t, f)

	res, err := a.Analyze(context.Background(), AnalyzeInput{Terms: "garden gnome"})
	if err != nil {
		t.Fatalf("fetch errors must not fail the analysis: %v", err)
	}
	if res.Success {
		t.Fatalf("expected manual-research outcome")
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	f := &stubFetcher{sold: map[string][]models.ComparableListing{
		"garden gnome": soldComps(100, 110, 105, 108, 102),
	}}
	a := newTestAnalyzer(t, f)

	in := AnalyzeInput{Terms: "garden gnome"}
	r1, err := a.Analyze(context.Background(), in)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	r2, err := a.Analyze(context.Background(), in)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Fatalf("identical inputs produced different results")
	}
}

func TestAnalyzeOverrides(t *testing.T) {
	f := &stubFetcher{sold: map[string][]models.ComparableListing{
		"garden gnome": soldComps(100, 100, 100, 100),
	}}
	a := newTestAnalyzer(t, f)

	markup := 50.0
	res, err := a.Analyze(context.Background(), AnalyzeInput{Terms: "garden gnome", MarkupPercent: &markup})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SuggestedPrice != 150.99 {
		t.Fatalf("suggested = %v, want 150.99", res.SuggestedPrice)
	}
}
