package main

import (
	"sitterhub/internal/directory"
	"sitterhub/internal/reservations/handler"
	"sitterhub/internal/reservations/repository"
	"sitterhub/internal/reservations/service"
	"sitterhub/internal/reservations/validator"
	"sitterhub/pkg/app"
	"sitterhub/pkg/config"
	"sitterhub/pkg/events"
	kafka_config "sitterhub/pkg/kafka/config"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Reservations service")
	reservationService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewReservationHandler(reservationService, serverApp.Authenticator(), cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ReservationService {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	publisher, err := events.NewPublisher(kafkaCfg, ServiceName, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create event publisher", "error", err)
	}
	cfg.Client.RegisterCloser("event-publisher", publisher)

	reservationService := service.NewReservationService(
		repository.NewMongoReservationRepository(cfg),
		directory.NewMongoDirectory(cfg),
		validator.NewReservationValidator(cfg.Log),
		publisher,
		cfg,
	)

	cfg.Log.Info("Reservation service initialized", "database", cfg.MongoDatabaseName)
	return reservationService
}
