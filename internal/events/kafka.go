package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/YusovID/bloodbank-service/internal/config"
	"github.com/YusovID/bloodbank-service/internal/domain"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Producer is the part of *kgo.Client the Kafka sink uses.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

func NewKafkaClient(cfg config.Kafka) (*kgo.Client, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.Topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	return client, nil
}

// KafkaPublisher produces one record per event, keyed by aggregate id so events of one
// request or donor stay ordered within a partition.
type KafkaPublisher struct {
	producer Producer
	topic    string
}

func NewKafkaPublisher(producer Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
	}
}

func (p *KafkaPublisher) Name() string { return "kafka" }

func (p *KafkaPublisher) Publish(ctx context.Context, events []domain.Event) error {
	const op = "internal.events.kafka.Publish"

	records := make([]*kgo.Record, 0, len(events))

	for _, e := range events {
		data, err := encode(e)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		records = append(records, &kgo.Record{
			Topic: p.topic,
			Key:   []byte(e.AggregateID),
			Value: data,
			Headers: []kgo.RecordHeader{
				{Key: "event_type", Value: []byte(e.Type)},
				{Key: "event_id", Value: []byte(e.ID)},
			},
		})
	}

	if err := p.producer.ProduceSync(ctx, records...).FirstErr(); err != nil {
		if errors.Is(err, kerr.MessageTooLarge) || errors.Is(err, kerr.InvalidRecord) {
			return fmt.Errorf("%s: %w: topic '%s' refused the record: %w", op, ErrPermanent, p.topic, err)
		}

		return fmt.Errorf("%s: failed to produce to '%s': %w", op, p.topic, err)
	}

	return nil
}
