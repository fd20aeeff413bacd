package repository

import (
	"context"
	"fmt"

	"PriceScout/internal/domain/models"
	domrepo "PriceScout/internal/domain/repository"
	pkgkafka "PriceScout/pkg/kafka"
)

// KafkaResultPublisher publishes completed analysis results, keyed by
// analysis id so consumers see per-analysis ordering.
type KafkaResultPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaResultPublisher creates the Kafka-backed result publisher.
func NewKafkaResultPublisher(producer *pkgkafka.Producer, topic string) domrepo.ResultPublisher {
	return &KafkaResultPublisher{producer: producer, topic: topic}
}

func (p *KafkaResultPublisher) Publish(ctx context.Context, res *models.PriceAnalysisResult) error {
	if res == nil {
		return fmt.Errorf("result is nil")
	}
	return p.producer.Publish(ctx, p.topic, []byte(res.AnalysisID), res)
}

func (p *KafkaResultPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
