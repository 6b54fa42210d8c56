package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storefront/identity-system/internal/core/domain"
)

type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(collectionUsers)}
}

func (r *ProfileRepository) FindByID(ctx context.Context, userID string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return profileFromDocument(&doc), nil
}

func (r *ProfileRepository) FindByRole(ctx context.Context, role string) ([]*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"roles": role})
	if err != nil {
		return nil, fmt.Errorf("find profiles by role: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*domain.Profile
	for cursor.Next(ctx) {
		var doc userDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode profile: %w", err)
		}
		profiles = append(profiles, profileFromDocument(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return profiles, nil
}

// UpdateFields applies the patch as a single conditional multi-field write
// guarded by the record version. The filter matches both user_id and the
// version the caller read; a matched-zero result with an existing record
// means a concurrent writer got there first.
func (r *ProfileRepository) UpdateFields(ctx context.Context, userID string, version int64, patch domain.ProfilePatch) (*domain.Profile, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, userID)
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC().Unix()}
	if patch.Email != nil {
		set["email"] = *patch.Email
		// a changed address must be re-verified
		set["email_confirmed"] = false
	}
	if patch.FirstName != nil {
		set["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["last_name"] = *patch.LastName
	}
	if patch.ImageURL != nil {
		set["image_url"] = *patch.ImageURL
	}
	if patch.ImageThumbnailURL != nil {
		set["image_thumbnail_url"] = *patch.ImageThumbnailURL
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID, "version": version},
		bson.M{"$set": set, "$inc": bson.M{"version": 1}},
	)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a vanished record from a stale version.
		if _, findErr := r.FindByID(ctx, userID); findErr != nil {
			return nil, findErr
		}
		return nil, domain.ErrConcurrentModification
	}

	return r.FindByID(ctx, userID)
}

func (r *ProfileRepository) SetEmailConfirmed(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$set": bson.M{"email_confirmed": true, "updated_at": time.Now().UTC().Unix()},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("confirm email: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the repositories rely on.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "roles", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func profileFromDocument(doc *userDocument) *domain.Profile {
	return &domain.Profile{
		UserID:            doc.UserID,
		Username:          doc.Username,
		Email:             doc.Email,
		FirstName:         doc.FirstName,
		LastName:          doc.LastName,
		EmailConfirmed:    doc.EmailConfirmed,
		ImageURL:          doc.ImageURL,
		ImageThumbnailURL: doc.ImageThumbnailURL,
		Roles:             doc.Roles,
		Version:           doc.Version,
		CreatedAt:         unixToTime(doc.CreatedAt),
		UpdatedAt:         unixToTime(doc.UpdatedAt),
	}
}
