package main

import (
	"sitterhub/internal/directory"
	"sitterhub/internal/reviews/handler"
	"sitterhub/internal/reviews/repository"
	"sitterhub/internal/reviews/service"
	"sitterhub/internal/reviews/validator"
	"sitterhub/pkg/app"
	"sitterhub/pkg/config"
	"sitterhub/pkg/events"
	kafka_config "sitterhub/pkg/kafka/config"
)

const ServiceName = "reviews"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Reviews service")
	reviewService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewReviewHandler(reviewService, serverApp.Authenticator(), cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ReviewService {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	publisher, err := events.NewPublisher(kafkaCfg, ServiceName, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create event publisher", "error", err)
	}
	cfg.Client.RegisterCloser("event-publisher", publisher)

	reviewService := service.NewReviewService(
		repository.NewMongoReviewRepository(cfg),
		directory.NewMongoDirectory(cfg),
		validator.NewReviewValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Review service initialized", "database", cfg.MongoDatabaseName)
	return reviewService
}
