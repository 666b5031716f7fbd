package main

import (
	accountshandler "sitterhub/internal/accounts/handler"
	accountsrepo "sitterhub/internal/accounts/repository"
	accountsservice "sitterhub/internal/accounts/service"
	accountsvalidator "sitterhub/internal/accounts/validator"
	babysittershandler "sitterhub/internal/babysitters/handler"
	babysittersrepo "sitterhub/internal/babysitters/repository"
	babysittersservice "sitterhub/internal/babysitters/service"
	babysittersvalidator "sitterhub/internal/babysitters/validator"
	"sitterhub/internal/directory"
	reservationsrepo "sitterhub/internal/reservations/repository"
	reviewsrepo "sitterhub/internal/reviews/repository"
	"sitterhub/pkg/app"
	"sitterhub/pkg/config"
)

const ServiceName = "accounts"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Accounts service")
	serverApp := app.NewApplication(cfg)

	reservations := reservationsrepo.NewMongoReservationRepository(cfg)
	dir := directory.NewMongoDirectory(cfg)

	accountService := accountsservice.NewAccountService(
		accountsrepo.NewMongoAccountRepository(cfg),
		reservations,
		dir,
		serverApp.Tokens(),
		serverApp.Revocations(),
		accountsvalidator.NewAccountValidator(cfg.Log),
		cfg,
	)
	babysitterService := babysittersservice.NewBabysitterService(
		babysittersrepo.NewMongoBabysitterRepository(cfg),
		reservations,
		reviewsrepo.NewMongoReviewRepository(cfg),
		dir,
		babysittersvalidator.NewBabysitterValidator(cfg.Log),
		cfg,
	)
	cfg.Log.Info("Account services initialized", "database", cfg.MongoDatabaseName)

	serverApp.SetApp(
		accountshandler.NewAccountHandler(accountService, serverApp.Authenticator(), cfg.Log),
		babysittershandler.NewBabysitterHandler(babysitterService, serverApp.Authenticator(), cfg.Log),
	)
	serverApp.Run()
}
