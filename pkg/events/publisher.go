package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sitterhub/pkg/kafka"
	kafka_config "sitterhub/pkg/kafka/config"
	kafka_middleware "sitterhub/pkg/kafka/middleware"
	"sitterhub/pkg/logger"
	"sitterhub/pkg/middleware"
)

const publishTimeout = 5 * time.Second

// Publisher emits domain events. Publishing is best effort: failures are
// logged and never surfaced to the caller.
type Publisher interface {
	Publish(ctx context.Context, event Event)
	Close() error
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) {}

func (NoopPublisher) Close() error { return nil }

type producer interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	reservations producer
	reviews      producer
	source       string
	metrics      *kafka_middleware.Metrics
	log          *logger.Logger
}

// NewPublisher returns a Kafka-backed publisher when Kafka is enabled and a
// no-op publisher otherwise.
func NewPublisher(cfg *kafka_config.Config, source string, log *logger.Logger) (Publisher, error) {
	if cfg == nil || !cfg.Enabled {
		log.Info("Kafka disabled, using no-op event publisher")
		return NoopPublisher{}, nil
	}
	return NewKafkaPublisher(cfg, source, log)
}

func NewKafkaPublisher(cfg *kafka_config.Config, source string, log *logger.Logger) (*KafkaPublisher, error) {
	reservations, err := kafka.NewProducer(cfg, cfg.ReservationsTopic, cfg.DLQTopic, log)
	if err != nil {
		return nil, fmt.Errorf("reservations producer: %w", err)
	}
	reviews, err := kafka.NewProducer(cfg, cfg.ReviewsTopic, cfg.DLQTopic, log)
	if err != nil {
		_ = reservations.Close()
		return nil, fmt.Errorf("reviews producer: %w", err)
	}

	metrics := kafka_middleware.NewMetrics()
	if cfg.EnableMiddleware {
		for _, p := range []*kafka.Producer{reservations, reviews} {
			p.Use(kafka_middleware.LoggingProducerMiddleware(log))
			p.Use(metrics.ProducerMiddleware())
		}
	}

	log.Info("Kafka event publisher configured",
		"reservations_topic", cfg.ReservationsTopic,
		"reviews_topic", cfg.ReviewsTopic,
	)

	return &KafkaPublisher{
		reservations: reservations,
		reviews:      reviews,
		source:       source,
		metrics:      metrics,
		log:          log,
	}, nil
}

func (p *KafkaPublisher) producerFor(t Type) producer {
	if strings.HasPrefix(string(t), "review.") {
		return p.reviews
	}
	return p.reservations
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	requestID := middleware.RequestIDFromContext(ctx)

	msg, err := kafka.NewMessage().
		WithKey(event.Key).
		WithValue(event.Payload).
		WithEventID("").
		WithEventType(string(event.Type)).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		WithCorrelationID(requestID).
		Build()
	if err != nil {
		p.log.Error("failed to build event", "event_type", event.Type, "key", event.Key, "error", err)
		return
	}

	// The request may finish before the broker acknowledges.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.producerFor(event.Type).Publish(pubCtx, msg); err != nil {
		p.log.Error("failed to publish event",
			"event_type", event.Type,
			"key", event.Key,
			"event_id", msg.GetEventID(),
			"request_id", requestID,
			"error", err,
		)
		return
	}

	p.log.Debug("event published", "event_type", event.Type, "key", event.Key, "event_id", msg.GetEventID())
}

func (p *KafkaPublisher) Close() error {
	err := p.reservations.Close()
	if reviewsErr := p.reviews.Close(); err == nil {
		err = reviewsErr
	}
	p.metrics.LogSnapshot(p.log)
	return err
}
