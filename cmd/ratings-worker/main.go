package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"sitterhub/internal/directory"
	"sitterhub/internal/ratings"
	"sitterhub/internal/reviews/repository"
	"sitterhub/internal/reviews/service"
	"sitterhub/internal/reviews/validator"
	"sitterhub/pkg/config"
	"sitterhub/pkg/events"
	kafka_config "sitterhub/pkg/kafka/config"
)

const ServiceName = "ratings-worker"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	// The worker only recomputes; it never publishes.
	reviewService := service.NewReviewService(
		repository.NewMongoReviewRepository(cfg),
		directory.NewMongoDirectory(cfg),
		validator.NewReviewValidator(cfg.Log),
		events.NoopPublisher{},
		cfg,
	)

	worker, err := ratings.NewWorker(kafkaCfg, ratings.NewHandler(reviewService, cfg.Log), cfg.Log)
	if errors.Is(err, ratings.ErrKafkaDisabled) {
		cfg.Log.Info("Kafka disabled, ratings worker has nothing to consume")
		return
	}
	if err != nil {
		cfg.Log.Fatal("Failed to start ratings worker", "error", err)
	}
	cfg.Client.RegisterCloser("ratings-consumer", worker)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Starting ratings worker",
		"topic", kafkaCfg.ReviewsTopic,
		"group_id", kafkaCfg.RatingsGroupID,
	)
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Ratings worker stopped with error", "error", err)
		return
	}
	cfg.Log.Info("Ratings worker stopped")
}
