package kafka_middleware

import (
	"context"
	"sync/atomic"
	"time"

	"sitterhub/pkg/kafka"
	"sitterhub/pkg/logger"
)

// Metrics holds Kafka operation counters for one process
type Metrics struct {
	messagesPublished       atomic.Int64
	messagesPublishedFailed atomic.Int64
	publishDurationTotal    atomic.Int64 // Nanoseconds

	messagesConsumed       atomic.Int64
	messagesConsumedFailed atomic.Int64
	consumeDurationTotal   atomic.Int64 // Nanoseconds
}

type Snapshot struct {
	Published          int64
	PublishFailed      int64
	AvgPublishDuration time.Duration
	Consumed           int64
	ConsumeFailed      int64
	AvgConsumeDuration time.Duration
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) Snapshot() Snapshot {
	published := m.messagesPublished.Load()
	publishFailed := m.messagesPublishedFailed.Load()
	consumed := m.messagesConsumed.Load()
	consumeFailed := m.messagesConsumedFailed.Load()

	return Snapshot{
		Published:          published,
		PublishFailed:      publishFailed,
		AvgPublishDuration: average(m.publishDurationTotal.Load(), published+publishFailed),
		Consumed:           consumed,
		ConsumeFailed:      consumeFailed,
		AvgConsumeDuration: average(m.consumeDurationTotal.Load(), consumed+consumeFailed),
	}
}

func average(total, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return time.Duration(total / count)
}

// LogSnapshot writes the current counters, typically once at shutdown
func (m *Metrics) LogSnapshot(log *logger.Logger) {
	s := m.Snapshot()
	log.Info("kafka metrics",
		"published", s.Published,
		"publish_failed", s.PublishFailed,
		"avg_publish_duration", s.AvgPublishDuration,
		"consumed", s.Consumed,
		"consume_failed", s.ConsumeFailed,
		"avg_consume_duration", s.AvgConsumeDuration,
	)
}

// ProducerMiddleware tracks producer metrics
func (m *Metrics) ProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		m.publishDurationTotal.Add(int64(time.Since(start)))
		if err != nil {
			m.messagesPublishedFailed.Add(1)
		} else {
			m.messagesPublished.Add(1)
		}

		return err
	}
}

// ConsumerMiddleware tracks consumer metrics
func (m *Metrics) ConsumerMiddleware() kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()

		err := next(ctx, msg)

		m.consumeDurationTotal.Add(int64(time.Since(start)))
		if err != nil {
			m.messagesConsumedFailed.Add(1)
		} else {
			m.messagesConsumed.Add(1)
		}

		return err
	}
}
