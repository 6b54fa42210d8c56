package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/storefront/identity-system/internal/core/domain"
)

// collectionUsers holds both the credential and profile sides of a user
// record; the account and profile repositories are two views over it.
const collectionUsers = "users"

// userDocument is the full persisted shape shared by both repositories.
type userDocument struct {
	UserID            string   `bson:"user_id"`
	Username          string   `bson:"username"`
	Email             string   `bson:"email"`
	PasswordHash      string   `bson:"password_hash"`
	FirstName         string   `bson:"first_name,omitempty"`
	LastName          string   `bson:"last_name,omitempty"`
	EmailConfirmed    bool     `bson:"email_confirmed"`
	ImageURL          string   `bson:"image_url,omitempty"`
	ImageThumbnailURL string   `bson:"image_thumbnail_url,omitempty"`
	Roles             []string `bson:"roles"`
	Version           int64    `bson:"version"`
	CreatedAt         int64    `bson:"created_at"`
	UpdatedAt         int64    `bson:"updated_at"`
}

type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(collectionUsers)}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDocument{
		UserID:       account.UserID,
		Username:     account.Username,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		Roles:        account.Roles,
		Version:      1,
		CreatedAt:    account.CreatedAt.Unix(),
		UpdatedAt:    account.UpdatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	return &domain.Account{
		UserID:       doc.UserID,
		Username:     doc.Username,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Roles:        doc.Roles,
		CreatedAt:    unixToTime(doc.CreatedAt),
		UpdatedAt:    unixToTime(doc.UpdatedAt),
	}, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
