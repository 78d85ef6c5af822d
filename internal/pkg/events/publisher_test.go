package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), Event{Topic: TopicLoanDecided}))
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	require.NoError(t, rec.Publish(context.Background(),
		Event{Topic: TopicPayRunRecorded, Key: "e-1"},
		Event{Topic: TopicContributionsPaid, Key: "2026-09"},
	))
	assert.Equal(t, []string{TopicPayRunRecorded, TopicContributionsPaid}, rec.Topics())
	assert.Len(t, rec.Events(), 2)

	rec.Err = errors.New("broker down")
	assert.Error(t, rec.Publish(context.Background(), Event{Topic: TopicLoanDecided}))
	assert.Len(t, rec.Events(), 2)
}

func TestKafkaPublisher_Empty(t *testing.T) {
	p := NewKafkaPublisher([]string{"127.0.0.1:1"}, "test.")
	defer p.Close()
	assert.NoError(t, p.Publish(context.Background()))
}

func TestKafkaPublisher_Unreachable(t *testing.T) {
	p := NewKafkaPublisherWithWriter(&kafka.Writer{
		Addr:        kafka.TCP("127.0.0.1:1"),
		MaxAttempts: 1,
	})
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	err := p.Publish(ctx, Event{Topic: TopicLoanDecided, Key: "l-1", Type: "loan.approved", Payload: map[string]string{"id": "l-1"}})
	assert.ErrorContains(t, err, "failed to publish events")
}

func TestNewKafkaPublisher_BoundsRetries(t *testing.T) {
	p := NewKafkaPublisher([]string{"kafka-1:9092"}, "")
	defer p.Close()

	assert.Equal(t, 3, p.writer.MaxAttempts)
	assert.Equal(t, 2*time.Second, p.writer.WriteTimeout)
	assert.False(t, p.writer.Async, "publish errors must reach the caller to be logged")
}
