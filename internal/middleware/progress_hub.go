package middleware

import (
	"sync"
	"time"

	domrepo "PriceScout/internal/domain/repository"
)

// Event stages emitted during an analysis run.
const (
	StageStrategyStarted = "strategy_started"
	StageStrategyResult  = "strategy_result"
	StageAnalysisDone    = "analysis_done"
)

// ProgressEvent is one analysis lifecycle notification fanned out to
// subscribers (WebSocket clients, batch monitors).
type ProgressEvent struct {
	Stage       string    `json:"stage"`
	ItemID      string    `json:"item_id,omitempty"`
	AnalysisID  string    `json:"analysis_id,omitempty"`
	Terms       string    `json:"terms,omitempty"`
	Kind        string    `json:"kind,omitempty"`
	SampleCount int       `json:"sample_count,omitempty"`
	Success     bool      `json:"success"`
	Timestamp   time.Time `json:"timestamp"`
}

// ProgressHub sits between the analysis pipeline and its observers. Slow
// subscribers never block the pipeline: events are dropped per subscriber
// when its buffer is full.
type ProgressHub struct {
	mu      sync.Mutex
	subs    map[chan ProgressEvent]struct{}
	bufSize int
	metrics domrepo.Metrics
}

type HubOption func(*ProgressHub)

// WithHubBufferSize sets the per-subscriber channel buffer.
func WithHubBufferSize(n int) HubOption {
	return func(h *ProgressHub) {
		if n > 0 {
			h.bufSize = n
		}
	}
}

// NewProgressHub creates a hub with the given metrics recorder.
func NewProgressHub(metrics domrepo.Metrics, opts ...HubOption) *ProgressHub {
	h := &ProgressHub{
		subs:    make(map[chan ProgressEvent]struct{}),
		bufSize: 64,
		metrics: metrics,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Subscribe registers a new observer channel.
func (h *ProgressHub) Subscribe() chan ProgressEvent {
	ch := make(chan ProgressEvent, h.bufSize)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes an observer channel.
func (h *ProgressHub) Unsubscribe(ch chan ProgressEvent) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Publish fans an event out to all subscribers, dropping per subscriber
// on backpressure.
func (h *ProgressHub) Publish(ev ProgressEvent) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			if h.metrics != nil {
				h.metrics.RecordError("progress_drop")
			}
		}
	}
	h.mu.Unlock()
}

// SubscriberCount returns the number of active subscribers.
func (h *ProgressHub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
