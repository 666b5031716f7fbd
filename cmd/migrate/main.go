package main

import (
	"context"
	"time"

	mongoMigration "sitterhub/internal/migrations/mongo"
	"sitterhub/pkg/config"
)

const JobName = "mongo-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Mongo migration job")
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
		cfg.Log.Error("Migration failed", "error", err)
		return
	}
	cfg.Log.Info("Migration completed successfully")
}
