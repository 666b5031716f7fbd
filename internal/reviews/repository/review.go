package repository

import (
	"context"
	"fmt"
	"time"

	reviewserrors "sitterhub/internal/reviews/errors"
	"sitterhub/pkg/config"
	mongotx "sitterhub/pkg/db/mongo"
	"sitterhub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoReviewRepository struct {
	cfg         *config.Config
	db          *mongo.Database
	collection  *mongo.Collection
	babysitters *mongo.Collection
}

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	HasReviewed(ctx context.Context, babysitterID, parentID string) (bool, error)
	// FindByBabysitter returns reviews newest first. A limit of 0 returns all.
	FindByBabysitter(ctx context.Context, babysitterID string, limit int) ([]*model.Review, error)
	RatingTotals(ctx context.Context, babysitterID string) (sum int, count int, err error)
	SaveAggregate(ctx context.Context, babysitterID string, aggregate model.RatingAggregate) error
}

func NewMongoReviewRepository(cfg *config.Config) ReviewRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReviewRepository{
		cfg:         cfg,
		db:          db,
		collection:  db.Collection(mongotx.ReviewsCollection),
		babysitters: db.Collection(mongotx.BabysittersCollection),
	}
}

func (r *mongoReviewRepository) Create(ctx context.Context, review *model.Review) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	review.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		if mongotx.IsDuplicateKey(err) {
			return fmt.Errorf("%w: parent %s, babysitter %s", reviewserrors.ErrDuplicate, review.ParentID, review.BabysitterID)
		}
		return fmt.Errorf("failed to create review: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid.Hex()
	}

	return nil
}

func (r *mongoReviewRepository) HasReviewed(ctx context.Context, babysitterID, parentID string) (bool, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"babysitter_id": babysitterID, "parent_id": parentID}
	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check existing review: %w", err)
	}
	return count > 0, nil
}

func (r *mongoReviewRepository) FindByBabysitter(ctx context.Context, babysitterID string, limit int) ([]*model.Review, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"babysitter_id": babysitterID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := make([]*model.Review, 0)
	if err = cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, nil
}

// RatingTotals sums the ratings of every review of the babysitter.
func (r *mongoReviewRepository) RatingTotals(ctx context.Context, babysitterID string) (int, int, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"babysitter_id": babysitterID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"sum":   bson.M{"$sum": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var totals struct {
		Sum   int `bson:"sum"`
		Count int `bson:"count"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&totals); err != nil {
			return 0, 0, fmt.Errorf("failed to decode rating totals: %w", err)
		}
	}
	if err := cursor.Err(); err != nil {
		return 0, 0, fmt.Errorf("failed to read rating totals: %w", err)
	}
	return totals.Sum, totals.Count, nil
}

func (r *mongoReviewRepository) SaveAggregate(ctx context.Context, babysitterID string, aggregate model.RatingAggregate) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(babysitterID)
	if err != nil {
		return fmt.Errorf("%w: %s", reviewserrors.ErrInvalidID, babysitterID)
	}

	update := bson.M{
		"$set": bson.M{
			"rating":        aggregate.Rating,
			"total_reviews": aggregate.TotalReviews,
			"updated_at":    time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.babysitters.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to save rating aggregate: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: %s", reviewserrors.ErrBabysitterNotFound, babysitterID)
	}

	return nil
}
