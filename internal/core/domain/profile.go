package domain

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Profile is the externally visible state of a user record. It is owned by
// the profile repository and only ever mutated through field-level patches.
type Profile struct {
	UserID            string    `json:"user_id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	EmailConfirmed    bool      `json:"email_confirmed"`
	ImageURL          string    `json:"image_url"`
	ImageThumbnailURL string    `json:"image_thumbnail_url"`
	StatusMessage     string    `json:"status_message"`
	Roles             []string  `json:"roles"`
	Version           int64     `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProfilePatch carries only the fields a caller intends to change. A nil
// pointer means "leave the stored value alone".
type ProfilePatch struct {
	Email             *string
	FirstName         *string
	LastName          *string
	ImageURL          *string
	ImageThumbnailURL *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil &&
		p.ImageURL == nil && p.ImageThumbnailURL == nil
}

var patchValidator = validator.New()

// Validate checks each present field independently and returns a
// ValidationError naming the first field that rejects its new value.
func (p ProfilePatch) Validate() error {
	if p.Email != nil {
		if err := patchValidator.Var(*p.Email, "required,email"); err != nil {
			return NewValidationError("email", "must be a valid email address")
		}
	}
	if p.FirstName != nil {
		if err := patchValidator.Var(*p.FirstName, "max=100"); err != nil {
			return NewValidationError("first_name", "must be at most 100 characters")
		}
	}
	if p.LastName != nil {
		if err := patchValidator.Var(*p.LastName, "max=100"); err != nil {
			return NewValidationError("last_name", "must be at most 100 characters")
		}
	}
	if p.ImageURL != nil && *p.ImageURL != "" {
		if err := patchValidator.Var(*p.ImageURL, "url"); err != nil {
			return NewValidationError("image_url", "must be a valid URL")
		}
	}
	if p.ImageThumbnailURL != nil && *p.ImageThumbnailURL != "" {
		if err := patchValidator.Var(*p.ImageThumbnailURL, "url"); err != nil {
			return NewValidationError("image_thumbnail_url", "must be a valid URL")
		}
	}
	return nil
}

// Diff builds a patch holding only the given desired values that differ from
// the current profile. Nil desired values are ignored.
func (p *Profile) Diff(email, firstName, lastName, imageURL, thumbnailURL *string) ProfilePatch {
	var patch ProfilePatch
	if email != nil && *email != p.Email {
		patch.Email = email
	}
	if firstName != nil && *firstName != p.FirstName {
		patch.FirstName = firstName
	}
	if lastName != nil && *lastName != p.LastName {
		patch.LastName = lastName
	}
	if imageURL != nil && *imageURL != p.ImageURL {
		patch.ImageURL = imageURL
	}
	if thumbnailURL != nil && *thumbnailURL != p.ImageThumbnailURL {
		patch.ImageThumbnailURL = thumbnailURL
	}
	return patch
}
