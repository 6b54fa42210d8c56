package ports

import (
	"context"
	"time"

	"github.com/storefront/identity-system/internal/core/domain"
)

// ImageUpload carries raw image bytes handed to the image store. The
// repository never sees bytes, only the returned references.
type ImageUpload struct {
	FileName string
	Data     []byte
}

// UpdateProfileInput holds the fields a caller wants changed. Nil pointers
// mean "keep the stored value".
type UpdateProfileInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Image     *ImageUpload
}

// ProfileView is the outward-facing projection of a profile. StatusMessage is
// a one-shot message set per response, never persisted.
type ProfileView struct {
	UserID            string    `json:"user_id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	EmailConfirmed    bool      `json:"email_confirmed"`
	ImageURL          string    `json:"image_url,omitempty"`
	ImageThumbnailURL string    `json:"image_thumbnail_url,omitempty"`
	StatusMessage     string    `json:"status_message,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProfileService defines the use-case operations over profiles. Every
// operation authorizes the supplied claims before touching the repository.
type ProfileService interface {
	Get(ctx context.Context, claims *domain.Claims) (*ProfileView, error)
	Update(ctx context.Context, claims *domain.Claims, input UpdateProfileInput) (*ProfileView, error)
	// List returns all profiles holding the given role. Admin only.
	List(ctx context.Context, claims *domain.Claims, role string) ([]ProfileView, error)
	SendVerificationEmail(ctx context.Context, claims *domain.Claims) error
	ConfirmEmail(ctx context.Context, token string) error
}
