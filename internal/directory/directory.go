package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sitterhub/pkg/config"
	mongotx "sitterhub/pkg/db/mongo"
	"sitterhub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound = errors.New("babysitter not found")

	ErrInvalidID = errors.New("invalid account ID format")
)

// Directory resolves party summaries and babysitter rates across the
// account collections. Missing parties are left unattached, since
// accounts are weak references.
type Directory interface {
	BabysitterRate(ctx context.Context, babysitterID string) (float64, error)
	BabysitterExists(ctx context.Context, babysitterID string) error
	Summaries(ctx context.Context, role model.Role, ids []string) (map[string]*model.PartySummary, error)
	AttachReservationParties(ctx context.Context, reservations ...*model.Reservation) error
	AttachReviewParents(ctx context.Context, reviews ...*model.Review) error
}

type mongoDirectory struct {
	cfg         *config.Config
	babysitters *mongo.Collection
	parents     *mongo.Collection
}

func NewMongoDirectory(cfg *config.Config) Directory {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDirectory{
		cfg:         cfg,
		babysitters: db.Collection(mongotx.BabysittersCollection),
		parents:     db.Collection(mongotx.ParentsCollection),
	}
}

func (d *mongoDirectory) BabysitterRate(ctx context.Context, babysitterID string) (float64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, d.cfg.ReadTimeout)
	defer cancel()

	objectID, err := mongotx.ObjectID(babysitterID)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidID, babysitterID)
	}

	var doc struct {
		HourlyRate float64 `bson:"hourly_rate"`
	}
	opts := options.FindOne().SetProjection(bson.M{"hourly_rate": 1})
	if err := d.babysitters.FindOne(ctx, bson.M{"_id": objectID}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, babysitterID)
		}
		return 0, fmt.Errorf("failed to read babysitter rate: %w", err)
	}
	return doc.HourlyRate, nil
}

func (d *mongoDirectory) BabysitterExists(ctx context.Context, babysitterID string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, d.cfg.ReadTimeout)
	defer cancel()

	objectID, err := mongotx.ObjectID(babysitterID)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, babysitterID)
	}

	count, err := d.babysitters.CountDocuments(ctx, bson.M{"_id": objectID}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("failed to check babysitter existence: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, babysitterID)
	}
	return nil
}

func (d *mongoDirectory) collectionFor(role model.Role) *mongo.Collection {
	if role == model.RoleBabysitter {
		return d.babysitters
	}
	return d.parents
}

func (d *mongoDirectory) Summaries(ctx context.Context, role model.Role, ids []string) (map[string]*model.PartySummary, error) {
	out := make(map[string]*model.PartySummary, len(ids))
	objectIDs := mongotx.ObjectIDs(unique(ids))
	if len(objectIDs) == 0 {
		return out, nil
	}

	ctx, cancel := mongotx.WithTimeout(ctx, d.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"name": 1, "photo": 1})
	cursor, err := d.collectionFor(role).Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s summaries: %w", role, err)
	}
	defer cursor.Close(ctx)

	var summaries []*model.PartySummary
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, fmt.Errorf("failed to decode %s summaries: %w", role, err)
	}
	for _, s := range summaries {
		out[s.ID] = s
	}
	return out, nil
}

func (d *mongoDirectory) AttachReservationParties(ctx context.Context, reservations ...*model.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}

	babysitterIDs := make([]string, 0, len(reservations))
	parentIDs := make([]string, 0, len(reservations))
	for _, r := range reservations {
		babysitterIDs = append(babysitterIDs, r.BabysitterID)
		parentIDs = append(parentIDs, r.ParentID)
	}

	var babysitters, parents map[string]*model.PartySummary
	var errBabysitters, errParents error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		babysitters, errBabysitters = d.Summaries(ctx, model.RoleBabysitter, babysitterIDs)
	}()
	go func() {
		defer wg.Done()
		parents, errParents = d.Summaries(ctx, model.RoleParent, parentIDs)
	}()
	wg.Wait()

	if errBabysitters != nil {
		return errBabysitters
	}
	if errParents != nil {
		return errParents
	}

	for _, r := range reservations {
		r.Babysitter = babysitters[r.BabysitterID]
		r.Parent = parents[r.ParentID]
	}
	return nil
}

func (d *mongoDirectory) AttachReviewParents(ctx context.Context, reviews ...*model.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	parentIDs := make([]string, 0, len(reviews))
	for _, r := range reviews {
		parentIDs = append(parentIDs, r.ParentID)
	}

	parents, err := d.Summaries(ctx, model.RoleParent, parentIDs)
	if err != nil {
		return err
	}
	for _, r := range reviews {
		r.Parent = parents[r.ParentID]
	}
	return nil
}

func unique(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
