package ratings

import (
	"context"
	"errors"
	"fmt"

	"sitterhub/pkg/kafka"
	kafka_config "sitterhub/pkg/kafka/config"
	kafkamw "sitterhub/pkg/kafka/middleware"
	"sitterhub/pkg/logger"
)

var ErrKafkaDisabled = errors.New("kafka is disabled")

type Worker struct {
	consumer *kafka.Consumer
	metrics  *kafkamw.Metrics
	log      *logger.Logger
}

// NewWorker subscribes the handler to the reviews topic under the ratings
// consumer group.
func NewWorker(cfg *kafka_config.Config, handler *Handler, log *logger.Logger) (*Worker, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, ErrKafkaDisabled
	}

	consumer, err := kafka.NewConsumer(cfg, cfg.ReviewsTopic, cfg.RatingsGroupID, cfg.DLQTopic, handler.Handle, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create ratings consumer: %w", err)
	}

	w := &Worker{consumer: consumer, log: log}
	if cfg.EnableMiddleware {
		w.metrics = kafkamw.NewMetrics()
		consumer.Use(kafkamw.LoggingConsumerMiddleware(log))
		consumer.Use(w.metrics.ConsumerMiddleware())
	}
	return w, nil
}

// Run blocks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	return w.consumer.Start(ctx)
}

func (w *Worker) Close() error {
	if w.metrics != nil {
		w.metrics.LogSnapshot(w.log)
	}
	return w.consumer.Close()
}
