package mongo

import (
	"context"
	"fmt"

	"sitterhub/internal/migrations/mongo/validators"
	mongotx "sitterhub/pkg/db/mongo"
	"sitterhub/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	BabysittersIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_babysitter_email"),
		},
		{Keys: bson.D{{Key: "rating", Value: -1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "hourly_rate", Value: 1}}},
		{Keys: bson.D{{Key: "skills", Value: 1}}},
	}

	ParentsIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_parent_email"),
		},
	}

	ReservationsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "parent_id", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "babysitter_id", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "parent_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "babysitter_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	ReviewsIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "babysitter_id", Value: 1}, {Key: "parent_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_review_per_parent"),
		},
		{Keys: bson.D{{Key: "babysitter_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
)

type collectionDef struct {
	name      string
	indexes   []mongo.IndexModel
	validator bson.M
}

// collections lists every collection the services rely on, in creation order.
func collections() []collectionDef {
	return []collectionDef{
		{mongotx.BabysittersCollection, BabysittersIndexes, validators.BabysitterValidator},
		{mongotx.ParentsCollection, ParentsIndexes, validators.ParentValidator},
		{mongotx.ReservationsCollection, ReservationsIndexes, validators.ReservationValidator},
		{mongotx.ReviewsCollection, ReviewsIndexes, validators.ReviewValidator},
	}
}

func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for _, def := range collections() {
		if err := ensureCollection(ctx, db, def.name, def.validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.name, err)
		}
		if err := ensureIndexes(ctx, db, def.name, def.indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.name, err)
		}
	}

	log.Info("All migrations applied successfully")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection already exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	names, err := db.Collection(name).Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "indexes", names)
	return nil
}
