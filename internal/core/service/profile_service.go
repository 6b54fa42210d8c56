package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/storefront/identity-system/internal/api/metrics"
	"github.com/storefront/identity-system/internal/core/domain"
	"github.com/storefront/identity-system/internal/core/ports"
)

const (
	verificationTTL = 24 * time.Hour
	imageTimeout    = 15 * time.Second
)

// ProfileService orchestrates profile reads and updates end-to-end:
// authorize the caller, talk to the image store when bytes are attached,
// apply one atomic diff-and-patch against the repository.
type ProfileService struct {
	guard         ports.AuthorizationGuard
	profiles      ports.ProfileRepository
	images        ports.ImageStore
	mail          ports.MailDispatcher
	verifications ports.VerificationStore
	baseURL       string
	logger        zerolog.Logger
}

func NewProfileService(
	guard ports.AuthorizationGuard,
	profiles ports.ProfileRepository,
	images ports.ImageStore,
	mail ports.MailDispatcher,
	verifications ports.VerificationStore,
	baseURL string,
	logger zerolog.Logger,
) *ProfileService {
	return &ProfileService{
		guard:         guard,
		profiles:      profiles,
		images:        images,
		mail:          mail,
		verifications: verifications,
		baseURL:       baseURL,
		logger:        logger,
	}
}

// Get returns the authenticated caller's own profile. An authenticated
// subject without a stored profile is a data inconsistency and is surfaced as
// ErrProfileNotFound rather than silently defaulted.
func (s *ProfileService) Get(ctx context.Context, claims *domain.Claims) (*ports.ProfileView, error) {
	if err := s.guard.Authorize(claims, domain.CapabilityAuthenticated); err != nil {
		return nil, err
	}

	profile, err := s.profiles.FindByID(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			s.logger.Error().Str("user_id", claims.SubjectID).Msg("authenticated subject has no profile record")
		}
		return nil, err
	}
	return profileView(profile, ""), nil
}

// Update applies a partial profile change. The image upload, when present,
// runs first under its own timeout so a failed upload aborts the whole patch
// before anything is written. The patch itself is one conditional write; a
// stale version is retried exactly once against a fresh read.
func (s *ProfileService) Update(ctx context.Context, claims *domain.Claims, input ports.UpdateProfileInput) (*ports.ProfileView, error) {
	if err := s.guard.Authorize(claims, domain.CapabilityAuthenticated); err != nil {
		return nil, err
	}

	var imageURL, thumbnailURL *string
	if input.Image != nil {
		stored, err := s.storeImage(ctx, input.Image)
		if err != nil {
			metrics.ProfileUpdatesTotal.WithLabelValues("image_store_error").Inc()
			return nil, fmt.Errorf("store profile image: %w", err)
		}
		imageURL = &stored.URL
		thumbnailURL = &stored.ThumbnailURL
	}

	updated, err := s.applyPatch(ctx, claims.SubjectID, input, imageURL, thumbnailURL)
	if errors.Is(err, domain.ErrConcurrentModification) {
		metrics.ProfileUpdateConflictsTotal.Inc()
		s.logger.Warn().Str("user_id", claims.SubjectID).Msg("stale profile version, retrying with fresh read")
		updated, err = s.applyPatch(ctx, claims.SubjectID, input, imageURL, thumbnailURL)
	}
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			metrics.ProfileUpdatesTotal.WithLabelValues("validation_failed").Inc()
		case errors.Is(err, domain.ErrConcurrentModification):
			metrics.ProfileUpdatesTotal.WithLabelValues("conflict").Inc()
		default:
			metrics.ProfileUpdatesTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	metrics.ProfileUpdatesTotal.WithLabelValues("ok").Inc()
	s.logger.Info().Str("user_id", claims.SubjectID).Msg("profile updated")
	return profileView(updated, "Your profile has been updated"), nil
}

// applyPatch reads the current record, diffs the requested changes against
// it, and issues a single conditional multi-field write.
func (s *ProfileService) applyPatch(ctx context.Context, userID string, input ports.UpdateProfileInput, imageURL, thumbnailURL *string) (*domain.Profile, error) {
	current, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	patch := current.Diff(input.Email, input.FirstName, input.LastName, imageURL, thumbnailURL)
	if patch.IsEmpty() {
		return current, nil
	}
	return s.profiles.UpdateFields(ctx, userID, current.Version, patch)
}

func (s *ProfileService) storeImage(ctx context.Context, upload *ports.ImageUpload) (*ports.StoredImage, error) {
	ctx, cancel := context.WithTimeout(ctx, imageTimeout)
	defer cancel()
	return s.images.Store(ctx, upload.FileName, upload.Data)
}

// List returns all profiles holding the given role. Requires the Admin
// capability; the check happens before any repository access.
func (s *ProfileService) List(ctx context.Context, claims *domain.Claims, role string) ([]ports.ProfileView, error) {
	if err := s.guard.Authorize(claims, domain.CapabilityAdmin); err != nil {
		return nil, err
	}
	if role == "" {
		role = domain.RoleUser
	}

	profiles, err := s.profiles.FindByRole(ctx, role)
	if err != nil {
		return nil, err
	}

	views := make([]ports.ProfileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, *profileView(p, ""))
	}
	return views, nil
}

// SendVerificationEmail issues a one-shot confirmation token and queues the
// mail. Delivery is asynchronous: a mail failure is logged by the dispatcher
// and never fails the triggering request.
func (s *ProfileService) SendVerificationEmail(ctx context.Context, claims *domain.Claims) error {
	if err := s.guard.Authorize(claims, domain.CapabilityAuthenticated); err != nil {
		return err
	}

	profile, err := s.profiles.FindByID(ctx, claims.SubjectID)
	if err != nil {
		return err
	}

	token := uuid.NewString()
	if err := s.verifications.Create(ctx, token, profile.UserID, verificationTTL); err != nil {
		return fmt.Errorf("store verification token: %w", err)
	}

	s.mail.Enqueue(ports.VerificationMail{
		Email:            profile.Email,
		ConfirmationLink: fmt.Sprintf("%s/profile/confirm-email?token=%s", s.baseURL, token),
	})

	s.logger.Info().Str("user_id", profile.UserID).Msg("verification email queued")
	return nil
}

// ConfirmEmail consumes a verification token and marks the email confirmed.
func (s *ProfileService) ConfirmEmail(ctx context.Context, token string) error {
	if token == "" {
		return domain.ErrVerificationNotFound
	}

	userID, err := s.verifications.Consume(ctx, token)
	if err != nil {
		return err
	}

	if err := s.profiles.SetEmailConfirmed(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("email confirmed")
	return nil
}

func profileView(p *domain.Profile, statusMessage string) *ports.ProfileView {
	return &ports.ProfileView{
		UserID:            p.UserID,
		Username:          p.Username,
		Email:             p.Email,
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		EmailConfirmed:    p.EmailConfirmed,
		ImageURL:          p.ImageURL,
		ImageThumbnailURL: p.ImageThumbnailURL,
		StatusMessage:     statusMessage,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
