package domain

import "time"

// Account models the credential side of a user: what is needed to
// authenticate and to mint claims. Profile carries the visible state of the
// same underlying record.
type Account struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
