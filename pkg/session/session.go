// Package session holds the client side of the credential lifecycle: the
// current token, the claims derived from it, and change notification for UI
// state that depends on them (an admin menu, a signed-in badge).
//
// Claims are derived by decoding the token without signature verification —
// the client has no signing key and the server revalidates every request.
// The derived claims drive nothing but local presentation.
package session

import (
	"sync"
	"time"

	"github.com/storefront/identity-system/internal/core/domain"
	"github.com/storefront/identity-system/internal/core/service"
)

// Snapshot is the immutable state handed to subscribers: the raw token and
// the claims derived from it. Claims is nil iff Token is absent, unparsable,
// or locally expired.
type Snapshot struct {
	Token  string
	Claims *domain.Claims
}

// Authenticated reports whether the snapshot carries derived claims.
func (s Snapshot) Authenticated() bool {
	return s.Claims != nil
}

// HasRole reports whether the derived claims include the role. Total: an
// absent or empty role set simply has no roles.
func (s Snapshot) HasRole(role string) bool {
	return s.Claims != nil && s.Claims.Roles.Has(role)
}

// Subscriber receives the new snapshot synchronously on every change.
type Subscriber func(Snapshot)

// Synchronizer owns the current credential and keeps derived claims in sync
// with it. Recomputation happens inside SetToken/Clear before they return,
// so a synchronous caller never observes a stale claims window.
type Synchronizer struct {
	mu      sync.RWMutex
	storage Storage
	now     func() time.Time

	token  string
	claims *domain.Claims

	nextSubID int
	subs      map[int]Subscriber
}

// New builds a Synchronizer over the given storage and restores any
// persisted token. A stored token that no longer decodes (or has expired)
// yields an unauthenticated session, not an error.
func New(storage Storage) (*Synchronizer, error) {
	s := &Synchronizer{
		storage: storage,
		now:     func() time.Time { return time.Now().UTC() },
		subs:    make(map[int]Subscriber),
	}

	token, err := storage.Load()
	if err != nil {
		return nil, err
	}
	s.token = token
	s.claims = deriveClaims(token, s.now())
	if s.claims == nil {
		s.token = ""
	}
	return s, nil
}

// WithClock overrides the time source. Intended for tests.
func (s *Synchronizer) WithClock(now func() time.Time) *Synchronizer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

// SetToken installs a new credential, recomputes derived claims, persists
// the token, and notifies subscribers — all before returning. A token that
// fails to decode clears the session.
func (s *Synchronizer) SetToken(token string) error {
	s.mu.Lock()
	claims := deriveClaims(token, s.now())
	if claims == nil {
		token = ""
	}
	s.token = token
	s.claims = claims

	var saveErr error
	if token == "" {
		saveErr = s.storage.Clear()
	} else {
		saveErr = s.storage.Save(token)
	}

	snapshot := Snapshot{Token: token, Claims: claims}
	subs := s.subscribersLocked()
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snapshot)
	}
	return saveErr
}

// Clear drops the credential and derived claims.
func (s *Synchronizer) Clear() error {
	return s.SetToken("")
}

// Snapshot returns the current session state. When the stored token has
// expired since it was installed, the returned claims are nil even though
// the token text is still held — the server is the authority either way.
func (s *Synchronizer) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claims := s.claims
	if claims != nil && claims.ExpiredAt(s.now()) {
		claims = nil
	}
	return Snapshot{Token: s.token, Claims: claims}
}

// Subscribe registers a subscriber and immediately delivers the current
// snapshot so the caller starts consistent. Returns an unsubscribe func.
func (s *Synchronizer) Subscribe(sub Subscriber) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = sub
	current := Snapshot{Token: s.token, Claims: s.claims}
	s.mu.Unlock()

	sub(current)

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Synchronizer) subscribersLocked() []Subscriber {
	subs := make([]Subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	return subs
}

func deriveClaims(token string, now time.Time) *domain.Claims {
	if token == "" {
		return nil
	}
	claims, err := service.DecodeUnverified(token, now)
	if err != nil {
		return nil
	}
	return claims
}
