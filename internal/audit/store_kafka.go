package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaStore publishes audit events to a Kafka topic. Writes are synchronous;
// callers that tolerate audit loss should treat the error as a warning.
// Events are keyed by subject so per-subject ordering survives partitioning.
type KafkaStore struct {
	client *kgo.Client
	topic  string
}

func NewKafkaStore(client *kgo.Client, topic string) *KafkaStore {
	return &KafkaStore{client: client, topic: topic}
}

func (s *KafkaStore) Append(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.Subject),
		Value: payload,
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce audit event: %w", err)
	}
	return nil
}
