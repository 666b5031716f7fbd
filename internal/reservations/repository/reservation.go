package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	reservationserrors "sitterhub/internal/reservations/errors"
	"sitterhub/pkg/config"
	mongotx "sitterhub/pkg/db/mongo"
	"sitterhub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoReservationRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
}

type ReservationRepository interface {
	Create(ctx context.Context, r *model.Reservation) error
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	// FindByParty returns the party's reservations sorted by sort. A limit of 0 returns all.
	FindByParty(ctx context.Context, role model.Role, partyID string, sort SortOrder, limit int) ([]*model.Reservation, error)
	Stats(ctx context.Context, role model.Role, partyID string) (*model.ReservationStats, error)
	UpdateStatus(ctx context.Context, id string, from, to model.ReservationStatus) (*model.Reservation, error)
	Delete(ctx context.Context, id string) error
}

type SortOrder int

const (
	// SortByDate orders by date descending, then created_at descending.
	SortByDate SortOrder = iota
	// SortByCreated orders by created_at descending.
	SortByCreated
)

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(mongotx.ReservationsCollection),
	}
}

func partyField(role model.Role) string {
	if role == model.RoleBabysitter {
		return "babysitter_id"
	}
	return "parent_id"
}

func (s SortOrder) bson() bson.D {
	if s == SortByCreated {
		return bson.D{{Key: "created_at", Value: -1}}
	}
	return bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}}
}

func (r *mongoReservationRepository) Create(ctx context.Context, res *model.Reservation) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	res.CreatedAt = now
	res.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, res)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		res.ID = oid.Hex()
	}

	return nil
}

func (r *mongoReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", reservationserrors.ErrInvalidID, id)
	}

	var res model.Reservation
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&res)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", reservationserrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}
	return &res, nil
}

func (r *mongoReservationRepository) FindByParty(ctx context.Context, role model.Role, partyID string, sort SortOrder, limit int) ([]*model.Reservation, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(sort.bson())
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{partyField(role): partyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer cursor.Close(ctx)

	reservations := make([]*model.Reservation, 0)
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

func (r *mongoReservationRepository) Stats(ctx context.Context, role model.Role, partyID string) (*model.ReservationStats, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{partyField(role): partyID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": 1},
			"hours": bson.M{"$sum": "$duration"},
			"earnings": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$eq": bson.A{"$status", model.StatusCompleted}}, "$total", 0},
			}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reservation stats: %w", err)
	}
	defer cursor.Close(ctx)

	stats := &model.ReservationStats{}
	if cursor.Next(ctx) {
		if err := cursor.Decode(stats); err != nil {
			return nil, fmt.Errorf("failed to decode reservation stats: %w", err)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reservation stats: %w", err)
	}
	return stats, nil
}

// UpdateStatus applies the transition only if the stored status is still from.
func (r *mongoReservationRepository) UpdateStatus(ctx context.Context, id string, from, to model.ReservationStatus) (*model.Reservation, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", reservationserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "status": from}
	update := bson.M{
		"$set": bson.M{
			"status":     to,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var res model.Reservation
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&res); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", reservationserrors.ErrStatusChanged, id)
		}
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}
	return &res, nil
}

func (r *mongoReservationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", reservationserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", reservationserrors.ErrNotFound, id)
	}

	return nil
}
