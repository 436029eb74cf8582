// Package kafka owns the franz-go client used by the audit publisher. Topic
// creation happens here at startup so the publisher can assume the topic
// exists.
package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kgo"

	"crossverify/internal/platform/config"
)

// Client wraps a kgo producer client.
type Client struct {
	*kgo.Client
}

// New connects to the configured brokers. Returns nil if no brokers are
// configured (Kafka optional in dev).
func New(cfg config.KafkaConfig) (*Client, error) {
	if len(cfg.Brokers) == 0 {
		return nil, nil
	}

	kc, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.ProduceRequestTimeout(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := kc.Ping(ctx); err != nil {
		kc.Close()
		return nil, fmt.Errorf("kafka ping failed: %w", err)
	}

	return &Client{Client: kc}, nil
}

// EnsureTopic creates the topic if it does not already exist. Existing topics
// are left untouched.
func (c *Client) EnsureTopic(ctx context.Context, topic string, partitions int32) error {
	adm := kadm.NewClient(c.Client)

	topics, err := adm.ListTopics(ctx, topic)
	if err != nil {
		return fmt.Errorf("list topics: %w", err)
	}
	if topics.Has(topic) {
		return nil
	}

	if _, err := adm.CreateTopic(ctx, partitions, 1, nil, topic); err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	return nil
}
