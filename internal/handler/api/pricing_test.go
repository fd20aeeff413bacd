package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"PriceScout/internal/domain/models"
	domrepo "PriceScout/internal/domain/repository"
	mid "PriceScout/internal/middleware"
	"PriceScout/internal/services/extract"
	"PriceScout/internal/services/pricing"
	"PriceScout/internal/services/research"
	"PriceScout/internal/usecase"
	applogger "PriceScout/pkg/logger"

	"github.com/labstack/echo/v4"
)

type fixedFetcher struct {
	comps []models.ComparableListing
}

func (f *fixedFetcher) Fetch(ctx context.Context, query string, opts domrepo.FetchOptions) ([]models.ComparableListing, error) {
	if opts.SoldOnly {
		return f.comps, nil
	}
	return nil, nil
}

func (f *fixedFetcher) Name() string { return "fixed" }

type apiNopMetrics struct{}

func (apiNopMetrics) RecordAnalysis(outcome, strategy string)         {}
func (apiNopMetrics) RecordFetch(source, outcome string)              {}
func (apiNopMetrics) RecordError(kind string)                         {}
func (apiNopMetrics) RecordSuggestedPrice(strategy string, p float64) {}
func (apiNopMetrics) RecordLatency(op string, seconds float64)        {}

func newTestHandler(t *testing.T, comps []models.ComparableListing) *PricingHandler {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	analyzer := usecase.NewAnalyzer(
		&fixedFetcher{comps: comps},
		extract.New(),
		research.New(),
		apiNopMetrics{},
		l,
		pricing.DefaultOptions(),
	)
	return NewPricingHandler(l, analyzer, research.New(), nil, mid.NewProgressHub(apiNopMetrics{}))
}

func doRequest(t *testing.T, h *PricingHandler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h.RegisterRoutes(e)

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestAnalyzeEndpointSuccess(t *testing.T) {
	comps := []models.ComparableListing{
		{ItemID: "1", Title: "gnome", Price: 100},
		{ItemID: "2", Title: "gnome", Price: 105},
		{ItemID: "3", Title: "gnome", Price: 108},
		{ItemID: "4", Title: "gnome", Price: 110},
	}
	h := newTestHandler(t, comps)

	rec := doRequest(t, h, http.MethodPost, "/api/analyze", `{"terms": "garden gnome"}`)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d: %s", env.Status, rec.Body.String())
	}

	var res models.PriceAnalysisResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if !res.Success {
		t.Fatalf("expected success: %+v", res)
	}
	if res.AnalysisID == "" || res.AnalyzedAt.IsZero() {
		t.Fatalf("handler must assign identity fields: %+v", res)
	}
	if res.Summary.SampleCount != 4 {
		t.Fatalf("sample = %d", res.Summary.SampleCount)
	}
}

func TestAnalyzeEndpointNoTerms(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := doRequest(t, h, http.MethodPost, "/api/analyze", `{}`)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusBadRequest {
		t.Fatalf("status = %d: %s", env.Status, rec.Body.String())
	}
}

func TestAnalyzeEndpointManualFallback(t *testing.T) {
	h := newTestHandler(t, nil) // no sold data at all

	rec := doRequest(t, h, http.MethodPost, "/api/analyze", `{"terms": "garden gnome"}`)
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d: %s", env.Status, rec.Body.String())
	}

	var res models.PriceAnalysisResult
	if err := json.Unmarshal(env.Data, &res); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if res.Success {
		t.Fatalf("expected manual-research outcome")
	}
	if res.ResearchAids == nil {
		t.Fatalf("expected research aids attached")
	}
}

func TestResearchAidsEndpoint(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := doRequest(t, h, http.MethodGet, "/api/research-aids?terms=barbie+doll&condition=new", "")
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("status = %d: %s", env.Status, rec.Body.String())
	}

	var aids models.ResearchAids
	if err := json.Unmarshal(env.Data, &aids); err != nil {
		t.Fatalf("decode aids: %v", err)
	}
	if !strings.Contains(aids.VerificationURLs.SoldListings, "barbie+doll") {
		t.Fatalf("sold URL missing terms: %q", aids.VerificationURLs.SoldListings)
	}
	if !strings.Contains(aids.VerificationURLs.SoldListings, "LH_ItemCondition=1000") {
		t.Fatalf("condition filter missing: %q", aids.VerificationURLs.SoldListings)
	}
}

func TestResearchAidsEndpointRequiresTerms(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := doRequest(t, h, http.MethodGet, "/api/research-aids", "")
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusBadRequest {
		t.Fatalf("status = %d: %s", env.Status, rec.Body.String())
	}
}

func TestHistoryEndpointWithoutStore(t *testing.T) {
	h := newTestHandler(t, nil)

	rec := doRequest(t, h, http.MethodGet, "/api/history", "")
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusNotFound {
		t.Fatalf("status = %d: %s", env.Status, rec.Body.String())
	}
}
