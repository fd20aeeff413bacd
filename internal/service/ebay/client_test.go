package ebay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domrepo "PriceScout/internal/domain/repository"
	applogger "PriceScout/pkg/logger"
)

func newEbayTestLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

const soldPayload = `{
  "total": 4,
  "itemSummaries": [
    {"itemId": "v1|111|0", "title": "widget", "condition": "USED",
     "price": {"value": "100.00"},
     "shippingOptions": [{"shippingCost": {"value": "5.50"}}],
     "lastSoldDate": "2026-08-01T00:00:00Z", "itemWebUrl": "https://ebay.com/itm/111"},
    {"itemId": "v1|111|0", "title": "widget duplicate", "price": {"value": "100.00"}},
    {"itemId": "", "title": "no id", "price": {"value": "50.00"}},
    {"itemId": "v1|222|0", "title": "no price"},
    {"itemId": "v1|333|0", "title": "widget b", "price": {"value": "90.00"}}
  ]
}`

func TestFetchSoldParsesAndDedupes(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer auth, got %q", r.Header.Get("Authorization"))
		}
		if r.URL.Query().Get("q") != "widget" {
			t.Errorf("q = %q", r.URL.Query().Get("q"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(soldPayload))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", 5*time.Second, newEbayTestLogger(t), WithRate(1000, 1000))

	got, err := c.Fetch(context.Background(), "widget", domrepo.FetchOptions{
		MaxResults: 20, LookbackDays: 90, SoldOnly: true,
	})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotPath != soldSearchPath {
		t.Fatalf("path = %q, want %q", gotPath, soldSearchPath)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 listings after dedup and row drops, got %d", len(got))
	}
	first := got[0]
	if first.ItemID != "v1|111|0" || first.Price != 100 || first.Shipping != 5.5 {
		t.Fatalf("unexpected first listing %+v", first)
	}
	if first.Total() != 105.5 {
		t.Fatalf("total = %v", first.Total())
	}
	if first.SoldDate.IsZero() {
		t.Fatalf("sold date not parsed")
	}
}

func TestFetchActiveUsesSummaryPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.URL.Query().Get("lookback_days") != "" {
			t.Errorf("lookback_days must not be sent for active searches")
		}
		w.Write([]byte(`{"total": 0, "itemSummaries": []}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", 5*time.Second, newEbayTestLogger(t), WithRate(1000, 1000))

	got, err := c.Fetch(context.Background(), "widget", domrepo.FetchOptions{MaxResults: 20, LookbackDays: 90})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotPath != activeSearchPath {
		t.Fatalf("path = %q, want %q", gotPath, activeSearchPath)
	}
	if len(got) != 0 {
		t.Fatalf("expected no listings, got %d", len(got))
	}
}

func TestFetchUpstreamErrorIsSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "k", 5*time.Second, newEbayTestLogger(t), WithRate(1000, 1000))

	got, err := c.Fetch(context.Background(), "widget", domrepo.FetchOptions{SoldOnly: true})
	if err != nil {
		t.Fatalf("upstream failure must not be an error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil listings, got %v", got)
	}
}

func TestFetchEmptyQuery(t *testing.T) {
	c := New("http://unused", "k", time.Second, newEbayTestLogger(t))
	got, err := c.Fetch(context.Background(), "", domrepo.FetchOptions{})
	if err != nil || got != nil {
		t.Fatalf("empty query should be a no-op, got %v %v", got, err)
	}
}

func TestFetchHonorsMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total": 3, "itemSummaries": [
            {"itemId": "1", "title": "a", "price": {"value": "10"}},
            {"itemId": "2", "title": "b", "price": {"value": "11"}},
            {"itemId": "3", "title": "c", "price": {"value": "12"}}
        ]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", 5*time.Second, newEbayTestLogger(t), WithRate(1000, 1000))

	got, err := c.Fetch(context.Background(), "widget", domrepo.FetchOptions{MaxResults: 2, SoldOnly: true})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected cap at 2, got %d", len(got))
	}
}
