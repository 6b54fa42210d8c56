package ports

import (
	"context"

	"github.com/storefront/identity-system/internal/core/domain"
)

// ProfileRepository owns persisted user profiles.
type ProfileRepository interface {
	// FindByID returns the profile for the given user id or
	// domain.ErrProfileNotFound.
	FindByID(ctx context.Context, userID string) (*domain.Profile, error)

	// FindByRole returns all profiles holding the given role.
	FindByRole(ctx context.Context, role string) ([]*domain.Profile, error)

	// UpdateFields applies the patch as one atomic conditional write against
	// the given record version. Only fields present in the patch are written;
	// each is validated before the write. Fails with
	// domain.ErrProfileNotFound, a *domain.ValidationError, or
	// domain.ErrConcurrentModification when the version is stale.
	UpdateFields(ctx context.Context, userID string, version int64, patch domain.ProfilePatch) (*domain.Profile, error)

	// SetEmailConfirmed marks the user's email address as verified.
	SetEmailConfirmed(ctx context.Context, userID string) error
}
