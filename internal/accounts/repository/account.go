package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	accountserrors "sitterhub/internal/accounts/errors"
	"sitterhub/pkg/config"
	mongotx "sitterhub/pkg/db/mongo"
	"sitterhub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Credentials is the login view of either account kind.
type Credentials struct {
	ID           string     `bson:"_id"`
	Name         string     `bson:"name"`
	Email        string     `bson:"email"`
	PasswordHash string     `bson:"password_hash"`
	Role         model.Role `bson:"-"`
}

type mongoAccountRepository struct {
	cfg         *config.Config
	db          *mongo.Database
	parents     *mongo.Collection
	babysitters *mongo.Collection
}

type AccountRepository interface {
	// EmailTaken reports whether either account collection holds email.
	EmailTaken(ctx context.Context, email string) (bool, error)
	CreateParent(ctx context.Context, parent *model.Parent) error
	CreateBabysitter(ctx context.Context, babysitter *model.Babysitter) error
	// FindCredentials looks among parents first, then babysitters.
	FindCredentials(ctx context.Context, email string) (*Credentials, error)

	FindParent(ctx context.Context, id string) (*model.Parent, error)
	FindBabysitter(ctx context.Context, id string) (*model.Babysitter, error)
	UpdateParent(ctx context.Context, id string, update *model.ProfileUpdate) (*model.Parent, error)
	UpdateBabysitter(ctx context.Context, id string, update *model.BabysitterUpdate) (*model.Babysitter, error)

	AddFavorite(ctx context.Context, parentID, babysitterID string) ([]string, error)
	BabysitterCards(ctx context.Context, ids []string) ([]*model.BabysitterCard, error)
}

var withoutSecret = bson.M{"password_hash": 0}

func NewMongoAccountRepository(cfg *config.Config) AccountRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAccountRepository{
		cfg:         cfg,
		db:          db,
		parents:     db.Collection(mongotx.ParentsCollection),
		babysitters: db.Collection(mongotx.BabysittersCollection),
	}
}

func (r *mongoAccountRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	for _, collection := range []*mongo.Collection{r.parents, r.babysitters} {
		count, err := collection.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
		if err != nil {
			return false, fmt.Errorf("failed to check email: %w", err)
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (r *mongoAccountRepository) insert(ctx context.Context, collection *mongo.Collection, doc any, email string) (string, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := collection.InsertOne(ctx, doc)
	if err != nil {
		if mongotx.IsDuplicateKey(err) {
			return "", fmt.Errorf("%w: %s", accountserrors.ErrDuplicateEmail, email)
		}
		return "", fmt.Errorf("failed to create account: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return "", nil
}

func (r *mongoAccountRepository) CreateParent(ctx context.Context, parent *model.Parent) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	parent.CreatedAt = now
	parent.UpdatedAt = now
	if parent.Favorites == nil {
		parent.Favorites = []string{}
	}

	id, err := r.insert(ctx, r.parents, parent, parent.Email)
	if err != nil {
		return err
	}
	parent.ID = id
	return nil
}

func (r *mongoAccountRepository) CreateBabysitter(ctx context.Context, babysitter *model.Babysitter) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	babysitter.CreatedAt = now
	babysitter.UpdatedAt = now

	id, err := r.insert(ctx, r.babysitters, babysitter, babysitter.Email)
	if err != nil {
		return err
	}
	babysitter.ID = id
	return nil
}

func (r *mongoAccountRepository) FindCredentials(ctx context.Context, email string) (*Credentials, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	lookups := []struct {
		role       model.Role
		collection *mongo.Collection
	}{
		{model.RoleParent, r.parents},
		{model.RoleBabysitter, r.babysitters},
	}

	opts := options.FindOne().SetProjection(bson.M{"name": 1, "email": 1, "password_hash": 1})
	for _, lookup := range lookups {
		var creds Credentials
		err := lookup.collection.FindOne(ctx, bson.M{"email": email}, opts).Decode(&creds)
		if err == nil {
			creds.Role = lookup.role
			return &creds, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("failed to find account: %w", err)
		}
	}
	return nil, fmt.Errorf("%w: %s", accountserrors.ErrNotFound, email)
}

func (r *mongoAccountRepository) findOne(ctx context.Context, collection *mongo.Collection, id string, out any) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", accountserrors.ErrInvalidID, id)
	}

	opts := options.FindOne().SetProjection(withoutSecret)
	if err := collection.FindOne(ctx, bson.M{"_id": objectID}, opts).Decode(out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("%w: %s", accountserrors.ErrNotFound, id)
		}
		return fmt.Errorf("failed to find account: %w", err)
	}
	return nil
}

func (r *mongoAccountRepository) FindParent(ctx context.Context, id string) (*model.Parent, error) {
	var parent model.Parent
	if err := r.findOne(ctx, r.parents, id, &parent); err != nil {
		return nil, err
	}
	return &parent, nil
}

func (r *mongoAccountRepository) FindBabysitter(ctx context.Context, id string) (*model.Babysitter, error) {
	var babysitter model.Babysitter
	if err := r.findOne(ctx, r.babysitters, id, &babysitter); err != nil {
		return nil, err
	}
	return &babysitter, nil
}

func (r *mongoAccountRepository) updateOne(ctx context.Context, collection *mongo.Collection, id string, set bson.M, out any) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", accountserrors.ErrInvalidID, id)
	}

	set["updated_at"] = time.Now().UTC().Truncate(time.Millisecond)
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutSecret)

	err = collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("%w: %s", accountserrors.ErrNotFound, id)
		}
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

func (r *mongoAccountRepository) UpdateParent(ctx context.Context, id string, update *model.ProfileUpdate) (*model.Parent, error) {
	var parent model.Parent
	if err := r.updateOne(ctx, r.parents, id, ProfileSet(update), &parent); err != nil {
		return nil, err
	}
	return &parent, nil
}

func (r *mongoAccountRepository) UpdateBabysitter(ctx context.Context, id string, update *model.BabysitterUpdate) (*model.Babysitter, error) {
	var babysitter model.Babysitter
	if err := r.updateOne(ctx, r.babysitters, id, BabysitterSet(update), &babysitter); err != nil {
		return nil, err
	}
	return &babysitter, nil
}

// ProfileSet collects the provided common fields into a $set document.
func ProfileSet(update *model.ProfileUpdate) bson.M {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Age != nil {
		set["age"] = *update.Age
	}
	if update.Contact != nil {
		set["contact"] = *update.Contact
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}
	if update.Photo != nil {
		set["photo"] = *update.Photo
	}
	return set
}

// BabysitterSet extends ProfileSet with the babysitter-only fields. Rating
// aggregates are never part of it.
func BabysitterSet(update *model.BabysitterUpdate) bson.M {
	set := ProfileSet(&update.ProfileUpdate)
	if update.HourlyRate != nil {
		set["hourly_rate"] = *update.HourlyRate
	}
	if update.Experience != nil {
		set["experience"] = *update.Experience
	}
	if update.Skills != nil {
		set["skills"] = *update.Skills
	}
	if update.Languages != nil {
		set["languages"] = *update.Languages
	}
	if update.Certifications != nil {
		set["certifications"] = *update.Certifications
	}
	if update.Availability != nil {
		set["availability"] = *update.Availability
	}
	if update.Bio != nil {
		set["bio"] = *update.Bio
	}
	if update.Available != nil {
		set["available"] = *update.Available
	}
	return set
}

func (r *mongoAccountRepository) AddFavorite(ctx context.Context, parentID, babysitterID string) ([]string, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(parentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", accountserrors.ErrInvalidID, parentID)
	}

	update := bson.M{
		"$addToSet": bson.M{"favorites": babysitterID},
		"$set":      bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"favorites": 1})

	var doc struct {
		Favorites []string `bson:"favorites"`
	}
	if err := r.parents.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", accountserrors.ErrNotFound, parentID)
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}
	return doc.Favorites, nil
}

// BabysitterCards returns cards in the order of ids, skipping babysitters
// that no longer exist.
func (r *mongoAccountRepository) BabysitterCards(ctx context.Context, ids []string) ([]*model.BabysitterCard, error) {
	cards := make([]*model.BabysitterCard, 0, len(ids))
	objectIDs := mongotx.ObjectIDs(ids)
	if len(objectIDs) == 0 {
		return cards, nil
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{
		"name":        1,
		"photo":       1,
		"address":     1,
		"hourly_rate": 1,
		"rating":      1,
	})
	cursor, err := r.babysitters.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer cursor.Close(ctx)

	var found []*model.BabysitterCard
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}

	byID := make(map[string]*model.BabysitterCard, len(found))
	for _, card := range found {
		byID[card.ID] = card
	}
	for _, id := range ids {
		if card, ok := byID[id]; ok {
			cards = append(cards, card)
		}
	}
	return cards, nil
}
