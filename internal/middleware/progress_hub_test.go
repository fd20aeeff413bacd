package middleware

import (
	"testing"
	"time"
)

type countingMetrics struct {
	errors []string
}

func (m *countingMetrics) RecordAnalysis(outcome, strategy string)         {}
func (m *countingMetrics) RecordFetch(source, outcome string)              {}
func (m *countingMetrics) RecordError(kind string)                         { m.errors = append(m.errors, kind) }
func (m *countingMetrics) RecordSuggestedPrice(strategy string, p float64) {}
func (m *countingMetrics) RecordLatency(op string, seconds float64)        {}

func TestHubDeliversToAllSubscribers(t *testing.T) {
	h := NewProgressHub(&countingMetrics{})

	a := h.Subscribe()
	b := h.Subscribe()
	if h.SubscriberCount() != 2 {
		t.Fatalf("subscribers = %d", h.SubscriberCount())
	}

	h.Publish(ProgressEvent{Stage: StageAnalysisDone, AnalysisID: "x"})

	for _, ch := range []chan ProgressEvent{a, b} {
		select {
		case ev := <-ch:
			if ev.Stage != StageAnalysisDone || ev.AnalysisID != "x" {
				t.Fatalf("unexpected event %+v", ev)
			}
			if ev.Timestamp.IsZero() {
				t.Fatalf("timestamp not stamped")
			}
		case <-time.After(time.Second):
			t.Fatalf("event not delivered")
		}
	}
}

func TestHubDropsOnBackpressure(t *testing.T) {
	m := &countingMetrics{}
	h := NewProgressHub(m, WithHubBufferSize(1))

	ch := h.Subscribe()
	h.Publish(ProgressEvent{Stage: StageStrategyStarted})
	h.Publish(ProgressEvent{Stage: StageStrategyStarted}) // buffer full, dropped

	if len(m.errors) != 1 || m.errors[0] != "progress_drop" {
		t.Fatalf("expected one drop recorded, got %v", m.errors)
	}
	h.Unsubscribe(ch)
	if h.SubscriberCount() != 0 {
		t.Fatalf("unsubscribe failed")
	}
}

func TestHubUnsubscribeIdempotent(t *testing.T) {
	h := NewProgressHub(nil)
	ch := h.Subscribe()
	h.Unsubscribe(ch)
	h.Unsubscribe(ch) // second call must not panic on closed channel
}
