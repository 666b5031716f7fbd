package kafka_middleware

import (
	"context"
	"time"

	"sitterhub/pkg/kafka"
	"sitterhub/pkg/logger"
)

// LoggingProducerMiddleware logs message publishing operations
func LoggingProducerMiddleware(log *logger.Logger) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		attrs := []any{
			"topic", msg.Topic,
			"key", msg.Key,
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"correlation_id", msg.GetCorrelationID(),
			"duration", time.Since(start),
		}

		if err != nil {
			log.ErrorContext(ctx, "failed to publish message", append(attrs, "error", err)...)
		} else {
			log.DebugContext(ctx, "message published", attrs...)
		}

		return err
	}
}

// LoggingConsumerMiddleware logs message consumption operations
func LoggingConsumerMiddleware(log *logger.Logger) kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()

		err := next(ctx, msg)

		attrs := []any{
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"key", msg.Key,
			"event_id", msg.GetEventID(),
			"event_type", msg.GetEventType(),
			"correlation_id", msg.GetCorrelationID(),
			"duration", time.Since(start),
		}

		if err != nil {
			log.WarnContext(ctx, "failed to process message", append(attrs, "error", err)...)
		} else {
			log.DebugContext(ctx, "message processed", attrs...)
		}

		return err
	}
}
