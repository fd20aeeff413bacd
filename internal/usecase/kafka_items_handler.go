package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"PriceScout/internal/domain/models"
	domrepo "PriceScout/internal/domain/repository"
	mid "PriceScout/internal/middleware"
	pkgkafka "PriceScout/pkg/kafka"

	"github.com/oklog/ulid/v2"
)

// KafkaItemsHandler consumes item-analysis jobs, runs the analyzer, and
// persists/publishes the result.
type KafkaItemsHandler struct {
	topic    string
	analyzer *Analyzer
	store    domrepo.AnalysisStore
	pub      domrepo.ResultPublisher
	hub      *mid.ProgressHub
	metrics  domrepo.Metrics
}

func NewKafkaItemsHandler(
	topic string,
	analyzer *Analyzer,
	store domrepo.AnalysisStore,
	pub domrepo.ResultPublisher,
	hub *mid.ProgressHub,
	metrics domrepo.Metrics,
) *KafkaItemsHandler {
	return &KafkaItemsHandler{
		topic:    topic,
		analyzer: analyzer,
		store:    store,
		pub:      pub,
		hub:      hub,
		metrics:  metrics,
	}
}

func (h *KafkaItemsHandler) Topic() string { return h.topic }

// incoming message schema: {item: ItemRecord, terms?, markup_percent?, sample_limit?}
func (h *KafkaItemsHandler) Handle(ctx context.Context, b []byte) error {
	var job struct {
		Item          *models.ItemRecord `json:"item"`
		Terms         string             `json:"terms"`
		MarkupPercent *float64           `json:"markup_percent"`
		SampleLimit   *int               `json:"sample_limit"`
	}
	if err := json.Unmarshal(b, &job); err != nil {
		h.metrics.RecordError("items_unmarshal")
		return err
	}

	itemID := ""
	if job.Item != nil {
		itemID = job.Item.ItemID
	}
	if h.hub != nil {
		h.hub.Publish(mid.ProgressEvent{Stage: mid.StageStrategyStarted, ItemID: itemID, Terms: job.Terms})
	}

	start := time.Now()
	res, err := h.analyzer.Analyze(ctx, AnalyzeInput{
		Terms:         job.Terms,
		Item:          job.Item,
		MarkupPercent: job.MarkupPercent,
		SampleLimit:   job.SampleLimit,
	})
	h.metrics.RecordLatency("batch_analyze", time.Since(start).Seconds())
	if err != nil {
		// a job with no derivable terms is a bad message, not a transient
		// failure; returning it lets the consumer's retry/DLQ machinery decide
		if errors.Is(err, ErrNoSearchTerms) {
			h.metrics.RecordError("items_no_terms")
		}
		return err
	}

	if h.hub != nil {
		for _, st := range res.StrategiesTried {
			h.hub.Publish(mid.ProgressEvent{
				Stage:   mid.StageStrategyResult,
				ItemID:  itemID,
				Terms:   st.Terms,
				Kind:    string(st.Kind),
				Success: res.Success && st.Terms == res.SearchTermsUsed,
			})
		}
	}

	res.AnalysisID = ulid.Make().String()
	res.AnalyzedAt = time.Now().UTC()

	if h.store != nil {
		if err := h.store.Store(ctx, res); err != nil {
			h.metrics.RecordError("items_store")
			return err
		}
	}
	if h.pub != nil {
		if err := h.pub.Publish(ctx, res); err != nil {
			h.metrics.RecordError("items_publish")
			return err
		}
	}

	if h.hub != nil {
		h.hub.Publish(mid.ProgressEvent{
			Stage:       mid.StageAnalysisDone,
			ItemID:      itemID,
			AnalysisID:  res.AnalysisID,
			Terms:       res.SearchTermsUsed,
			SampleCount: res.Summary.SampleCount,
			Success:     res.Success,
		})
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaItemsHandler)(nil)
