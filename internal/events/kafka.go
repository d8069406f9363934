package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaPublisher produces decision events to a Kafka topic, keyed by
// session so per-session ordering survives partitioning.
type KafkaPublisher struct {
	client *kgo.Client
	logger *slog.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaPublisher{client: client, logger: logger}, nil
}

func (p *KafkaPublisher) Publish(ctx context.Context, event DecisionEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode decision event: %w", err)
	}
	record := &kgo.Record{
		Key:   []byte(event.SessionID),
		Value: value,
	}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Error("decision event delivery failed",
				"session_id", event.SessionID,
				"error", err)
		}
	})
	return nil
}

// Close flushes buffered records before releasing the client.
func (p *KafkaPublisher) Close() {
	if err := p.client.Flush(context.Background()); err != nil {
		p.logger.Error("flush decision events", "error", err)
	}
	p.client.Close()
}
