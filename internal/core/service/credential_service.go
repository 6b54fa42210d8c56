package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storefront/identity-system/internal/core/domain"
)

// credentialClaims is the wire shape of the token payload: a role array plus
// the registered subject and validity fields.
type credentialClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// CredentialService issues and validates HS256-signed bearer credentials.
// The signing key is injected configuration; the clock is injectable so that
// expiry behaviour is testable without sleeping.
type CredentialService struct {
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewCredentialService(secret string, tokenTTL time.Duration) *CredentialService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &CredentialService{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *CredentialService) WithClock(now func() time.Time) *CredentialService {
	s.now = now
	return s
}

// Issue creates claims valid from now until now+TTL and signs them.
func (s *CredentialService) Issue(subjectID string, roles domain.RoleSet) (string, *domain.Claims, error) {
	if subjectID == "" {
		return "", nil, domain.ErrInvalidInput
	}

	now := s.now()
	claims := &domain.Claims{
		SubjectID: subjectID,
		Roles:     roles,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.tokenTTL),
	}

	payload := credentialClaims{
		Roles: roles.Values(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// Validate verifies signature and expiry against the server clock and
// returns the embedded claims. Expiry is always recomputed here: a client
// opinion about its own clock never extends trust.
func (s *CredentialService) Validate(token string) (*domain.Claims, error) {
	var payload credentialClaims
	parsed, err := jwt.ParseWithClaims(token, &payload, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrCredentialExpired
		}
		return nil, domain.ErrCredentialMalformed
	}
	if !parsed.Valid {
		return nil, domain.ErrCredentialMalformed
	}

	claims := claimsFromPayload(&payload)
	if !claims.Valid() {
		return nil, domain.ErrCredentialMalformed
	}
	if claims.ExpiredAt(s.now()) {
		return nil, domain.ErrCredentialExpired
	}
	return claims, nil
}

func claimsFromPayload(p *credentialClaims) *domain.Claims {
	claims := &domain.Claims{
		SubjectID: p.Subject,
		Roles:     domain.NewRoleSet(p.Roles...),
	}
	if p.IssuedAt != nil {
		claims.IssuedAt = p.IssuedAt.Time.UTC()
	}
	if p.ExpiresAt != nil {
		claims.ExpiresAt = p.ExpiresAt.Time.UTC()
	}
	return claims
}

// DecodeUnverified extracts claims from a token without checking the
// signature. Client-side session code uses it to derive UI facts; the server
// is always the authority on trust.
func DecodeUnverified(token string, now time.Time) (*domain.Claims, error) {
	var payload credentialClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &payload); err != nil {
		return nil, domain.ErrCredentialMalformed
	}
	claims := claimsFromPayload(&payload)
	if !claims.Valid() {
		return nil, domain.ErrCredentialMalformed
	}
	if claims.ExpiredAt(now) {
		return nil, domain.ErrCredentialExpired
	}
	return claims, nil
}
