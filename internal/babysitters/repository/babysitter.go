package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	babysitterserrors "sitterhub/internal/babysitters/errors"
	"sitterhub/pkg/config"
	mongotx "sitterhub/pkg/db/mongo"
	"sitterhub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoBabysitterRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
}

type BabysitterRepository interface {
	FindByID(ctx context.Context, id string) (*model.Babysitter, error)
	// FindByAddress lists babysitters by rating descending. An empty address matches all.
	FindByAddress(ctx context.Context, address string, exact bool) ([]*model.Babysitter, error)
	Search(ctx context.Context, search *model.BabysitterSearch, limit int, offset int) ([]*model.Babysitter, error)
	CountSearch(ctx context.Context, search *model.BabysitterSearch) (int64, error)
	SetAvailable(ctx context.Context, id string, available bool) (*model.Babysitter, error)
}

var (
	byRating      = bson.D{{Key: "rating", Value: -1}, {Key: "_id", Value: 1}}
	withoutSecret = bson.M{"password_hash": 0}
)

func NewMongoBabysitterRepository(cfg *config.Config) BabysitterRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBabysitterRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(mongotx.BabysittersCollection),
	}
}

func (r *mongoBabysitterRepository) FindByID(ctx context.Context, id string) (*model.Babysitter, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", babysitterserrors.ErrInvalidID, id)
	}

	var babysitter model.Babysitter
	opts := options.FindOne().SetProjection(withoutSecret)
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}, opts).Decode(&babysitter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", babysitterserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find babysitter: %w", err)
	}
	return &babysitter, nil
}

func (r *mongoBabysitterRepository) FindByAddress(ctx context.Context, address string, exact bool) ([]*model.Babysitter, error) {
	filter := bson.M{}
	if address != "" {
		if exact {
			filter["address"] = mongotx.ExactMatch(address)
		} else {
			filter["address"] = mongotx.PartialMatch(address)
		}
	}
	return r.find(ctx, filter, options.Find().SetSort(byRating))
}

func (r *mongoBabysitterRepository) Search(ctx context.Context, search *model.BabysitterSearch, limit int, offset int) ([]*model.Babysitter, error) {
	opts := options.Find().
		SetSort(byRating).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	return r.find(ctx, SearchFilter(search), opts)
}

func (r *mongoBabysitterRepository) CountSearch(ctx context.Context, search *model.BabysitterSearch) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, SearchFilter(search))
	if err != nil {
		return 0, fmt.Errorf("failed to count babysitters: %w", err)
	}
	return count, nil
}

func (r *mongoBabysitterRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Babysitter, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, opts.SetProjection(withoutSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to query babysitters: %w", err)
	}
	defer cursor.Close(ctx)

	babysitters := make([]*model.Babysitter, 0)
	if err = cursor.All(ctx, &babysitters); err != nil {
		return nil, fmt.Errorf("failed to decode babysitters: %w", err)
	}
	return babysitters, nil
}

// SearchFilter translates the directory filters into a query document.
func SearchFilter(search *model.BabysitterSearch) bson.M {
	filter := bson.M{}
	if search == nil {
		return filter
	}

	if search.Location != "" {
		filter["address"] = mongotx.PartialMatch(search.Location)
	}

	if search.MinPrice != nil || search.MaxPrice != nil {
		price := bson.M{}
		if search.MinPrice != nil {
			price["$gte"] = *search.MinPrice
		}
		if search.MaxPrice != nil {
			price["$lte"] = *search.MaxPrice
		}
		filter["hourly_rate"] = price
	}

	if search.Experience != nil {
		filter["experience"] = bson.M{"$gte": *search.Experience}
	}
	if search.Available != nil {
		filter["available"] = *search.Available
	}
	if len(search.Skills) > 0 {
		filter["skills"] = bson.M{"$in": search.Skills}
	}
	if search.MinRating != nil {
		filter["rating"] = bson.M{"$gte": *search.MinRating}
	}

	return filter
}

func (r *mongoBabysitterRepository) SetAvailable(ctx context.Context, id string, available bool) (*model.Babysitter, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", babysitterserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"available":  available,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutSecret)

	var babysitter model.Babysitter
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&babysitter); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", babysitterserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to update babysitter availability: %w", err)
	}
	return &babysitter, nil
}
