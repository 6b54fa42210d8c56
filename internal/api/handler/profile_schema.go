package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses. Field is set only for field-scoped validation failures.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// --- Request types ---

// imageUploadRequest carries image bytes inline as base64. The server hands
// them to the image store and persists only the returned references.
type imageUploadRequest struct {
	FileName string `json:"file_name" validate:"required"`
	Data     string `json:"data"      validate:"required,base64"`
}

// updateProfileRequest is a partial payload: absent fields keep their stored
// values. Field-level content checks (email format etc.) happen at the
// repository boundary so the same rules hold for every caller.
type updateProfileRequest struct {
	Email     *string             `json:"email"`
	FirstName *string             `json:"first_name"`
	LastName  *string             `json:"last_name"`
	Image     *imageUploadRequest `json:"image"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type profileResponse struct {
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

type profileListResponse struct {
	Items []profileResponse `json:"items"`
	Total int               `json:"total"`
}

type registerResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	SubjectID string    `json:"subject_id"`
	Roles     []string  `json:"roles"`
	ExpiresAt time.Time `json:"expires_at"`
}

type statusResponse struct {
	Status string `json:"status"`
}
