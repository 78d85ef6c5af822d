package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TopicLoanDecided                = "compensation.loan.decided.v1"
	TopicContributionBatchProcessed = "compensation.contribution.batch_processed.v1"
	TopicContributionsPaid          = "compensation.contribution.paid.v1"
	TopicPayRunRecorded             = "compensation.payroll.run_recorded.v1"
)

// Event is a domain fact published after a successful write.
type Event struct {
	Topic      string    `json:"-"`
	Key        string    `json:"-"`
	Type       string    `json:"event_type"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
}

// NoopPublisher drops every event. It stands in when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ...Event) error {
	return nil
}

type KafkaPublisher struct {
	writer      *kafka.Writer
	topicPrefix string
}

// NewKafkaPublisher writes to brokers, keying messages so events of one entity stay ordered.
// topicPrefix is prepended to every topic, e.g. "staging.". Writes are synchronous but retry at
// most 3 times, so a broker outage costs the caller a bounded delay.
func NewKafkaPublisher(brokers []string, topicPrefix string) *KafkaPublisher {
	return &KafkaPublisher{
		topicPrefix: topicPrefix,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           50 * time.Millisecond,
			MaxAttempts:            3,
			WriteTimeout:           2 * time.Second,
		},
	}
}

// NewKafkaPublisherWithWriter wraps an existing writer.
func NewKafkaPublisherWithWriter(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, events ...Event) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to encode %s event: %w", e.Type, err)
		}
		msgs = append(msgs, kafka.Message{
			Topic: p.topicPrefix + e.Topic,
			Key:   []byte(e.Key),
			Value: payload,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(e.Type)},
			},
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("failed to publish events: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
