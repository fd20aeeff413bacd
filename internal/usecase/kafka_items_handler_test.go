package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"PriceScout/internal/domain/models"
	mid "PriceScout/internal/middleware"
)

type memStore struct {
	stored []*models.PriceAnalysisResult
	err    error
}

func (s *memStore) Init(ctx context.Context) error { return nil }
func (s *memStore) Store(ctx context.Context, res *models.PriceAnalysisResult) error {
	if s.err != nil {
		return s.err
	}
	s.stored = append(s.stored, res)
	return nil
}
func (s *memStore) History(ctx context.Context, terms string, from, to time.Time, limit int) ([]*models.PriceAnalysisResult, error) {
	return s.stored, nil
}
func (s *memStore) Health(ctx context.Context) error { return nil }
func (s *memStore) Close() error                     { return nil }

type memPublisher struct {
	published []*models.PriceAnalysisResult
}

func (p *memPublisher) Publish(ctx context.Context, res *models.PriceAnalysisResult) error {
	p.published = append(p.published, res)
	return nil
}
func (p *memPublisher) Close() error { return nil }

func TestHandleStoresAndPublishes(t *testing.T) {
	f := &stubFetcher{sold: map[string][]models.ComparableListing{
		"garden gnome": soldComps(100, 110, 105, 108, 102),
	}}
	store := &memStore{}
	pub := &memPublisher{}
	hub := mid.NewProgressHub(nopMetrics{})
	events := hub.Subscribe()

	h := NewKafkaItemsHandler("items", newTestAnalyzer(t, f), store, pub, hub, nopMetrics{})
	if h.Topic() != "items" {
		t.Fatalf("topic = %q", h.Topic())
	}

	err := h.Handle(context.Background(), []byte(`{"terms": "garden gnome"}`))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(store.stored) != 1 || len(pub.published) != 1 {
		t.Fatalf("stored=%d published=%d", len(store.stored), len(pub.published))
	}
	res := store.stored[0]
	if res.AnalysisID == "" || res.AnalyzedAt.IsZero() {
		t.Fatalf("identity fields not assigned: %+v", res)
	}
	if res != pub.published[0] {
		t.Fatalf("store and publish must see the same result")
	}

	// strategy_started, one strategy_result, then analysis_done
	first := <-events
	if first.Stage != mid.StageStrategyStarted {
		t.Fatalf("first event = %q", first.Stage)
	}
	second := <-events
	if second.Stage != mid.StageStrategyResult || !second.Success {
		t.Fatalf("second event = %+v", second)
	}
	third := <-events
	if third.Stage != mid.StageAnalysisDone || third.AnalysisID != res.AnalysisID {
		t.Fatalf("third event = %+v", third)
	}
}

func TestHandleBadPayload(t *testing.T) {
	h := NewKafkaItemsHandler("items", newTestAnalyzer(t, &stubFetcher{}), nil, nil, nil, nopMetrics{})
	if err := h.Handle(context.Background(), []byte(`{not json`)); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

func TestHandleNoTermsIsError(t *testing.T) {
	h := NewKafkaItemsHandler("items", newTestAnalyzer(t, &stubFetcher{}), nil, nil, nil, nopMetrics{})
	err := h.Handle(context.Background(), []byte(`{}`))
	if !errors.Is(err, ErrNoSearchTerms) {
		t.Fatalf("expected ErrNoSearchTerms, got %v", err)
	}
}

func TestHandleStoreFailureReturned(t *testing.T) {
	f := &stubFetcher{sold: map[string][]models.ComparableListing{
		"garden gnome": soldComps(100, 110, 105, 108, 102),
	}}
	store := &memStore{err: errors.New("clickhouse down")}

	h := NewKafkaItemsHandler("items", newTestAnalyzer(t, f), store, nil, nil, nopMetrics{})
	if err := h.Handle(context.Background(), []byte(`{"terms": "garden gnome"}`)); err == nil {
		t.Fatalf("store failures must propagate for retry")
	}
}
