package ports

import (
	"context"
	"time"
)

// StoredImage is the reference pair returned by the image store.
type StoredImage struct {
	URL          string
	ThumbnailURL string
}

// ImageStore is the collaborating service that persists image bytes and
// returns opaque URL references. Blob mechanics are its problem, not ours.
type ImageStore interface {
	Store(ctx context.Context, fileName string, data []byte) (*StoredImage, error)
}

// MailSender delivers transactional mail. Failures are reported to the
// caller; whether they are fatal is the caller's decision.
type MailSender interface {
	SendVerification(ctx context.Context, email, confirmationLink string) error
}

// VerificationStore keeps one-shot email verification tokens with a TTL.
type VerificationStore interface {
	// Create records the token for the user, valid for ttl.
	Create(ctx context.Context, token, userID string, ttl time.Duration) error
	// Consume resolves and atomically deletes the token, returning the user
	// id it was issued for, or domain.ErrVerificationNotFound.
	Consume(ctx context.Context, token string) (string, error)
}

// VerificationMail is the unit of work handed to the mail dispatcher.
type VerificationMail struct {
	Email            string
	ConfirmationLink string
}

// MailDispatcher queues verification mail for asynchronous delivery.
type MailDispatcher interface {
	Enqueue(mail VerificationMail)
}
