package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/storefront/identity-system/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCredentialService_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewCredentialService("secret", time.Hour).WithClock(fixedClock(now))

	token, issued, err := svc.Issue("u1", domain.NewRoleSet(domain.RoleUser, domain.RoleAdmin))
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if !issued.IssuedAt.Equal(now) || !issued.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected validity window: %v – %v", issued.IssuedAt, issued.ExpiresAt)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if claims.SubjectID != "u1" {
		t.Fatalf("unexpected subject: %s", claims.SubjectID)
	}
	if !claims.Roles.Has(domain.RoleAdmin) || !claims.Roles.Has(domain.RoleUser) {
		t.Fatalf("roles lost in round trip: %v", claims.Roles.Values())
	}
	if !claims.IssuedAt.Equal(issued.IssuedAt) || !claims.ExpiresAt.Equal(issued.ExpiresAt) {
		t.Fatalf("timestamps lost in round trip")
	}
}

func TestCredentialService_Issue_EmptySubject(t *testing.T) {
	svc := NewCredentialService("secret", time.Hour)
	if _, _, err := svc.Issue("", domain.NewRoleSet(domain.RoleUser)); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCredentialService_Validate_Expired(t *testing.T) {
	issueTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewCredentialService("secret", time.Hour).WithClock(fixedClock(issueTime))

	token, _, err := svc.Issue("u1", domain.NewRoleSet(domain.RoleUser))
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Exactly at expiry counts as expired: now >= expiresAt.
	svc.WithClock(fixedClock(issueTime.Add(time.Hour)))
	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrCredentialExpired) {
		t.Fatalf("expected ErrCredentialExpired at boundary, got %v", err)
	}

	svc.WithClock(fixedClock(issueTime.Add(2 * time.Hour)))
	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrCredentialExpired) {
		t.Fatalf("expected ErrCredentialExpired, got %v", err)
	}
}

func TestCredentialService_Validate_WrongKey(t *testing.T) {
	issuer := NewCredentialService("secret-a", time.Hour)
	verifier := NewCredentialService("secret-b", time.Hour)

	token, _, err := issuer.Issue("u1", domain.NewRoleSet(domain.RoleUser))
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := verifier.Validate(token); !errors.Is(err, domain.ErrCredentialMalformed) {
		t.Fatalf("expected ErrCredentialMalformed, got %v", err)
	}
}

func TestCredentialService_Validate_Garbage(t *testing.T) {
	svc := NewCredentialService("secret", time.Hour)
	if _, err := svc.Validate("not-a-token"); !errors.Is(err, domain.ErrCredentialMalformed) {
		t.Fatalf("expected ErrCredentialMalformed, got %v", err)
	}
}

func TestCredentialService_Validate_RejectsUnexpectedAlg(t *testing.T) {
	svc := NewCredentialService("secret", time.Hour)

	// "none" algorithm must never validate regardless of payload shape.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":   "u1",
		"roles": []string{domain.RoleAdmin},
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := svc.Validate(unsigned); !errors.Is(err, domain.ErrCredentialMalformed) {
		t.Fatalf("expected ErrCredentialMalformed for alg=none, got %v", err)
	}
}

func TestCredentialService_Validate_MissingSubject(t *testing.T) {
	now := time.Now().UTC()
	svc := NewCredentialService("secret", time.Hour)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, credentialClaims{
		Roles: []string{domain.RoleUser},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrCredentialMalformed) {
		t.Fatalf("expected ErrCredentialMalformed for empty subject, got %v", err)
	}
}

func TestDecodeUnverified(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewCredentialService("secret", time.Hour).WithClock(fixedClock(now))

	token, _, err := svc.Issue("u1", domain.NewRoleSet(domain.RoleAdmin))
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := DecodeUnverified(token, now)
	if err != nil {
		t.Fatalf("DecodeUnverified returned error: %v", err)
	}
	if claims.SubjectID != "u1" || !claims.Roles.Has(domain.RoleAdmin) {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := DecodeUnverified(token, now.Add(2*time.Hour)); !errors.Is(err, domain.ErrCredentialExpired) {
		t.Fatalf("expected ErrCredentialExpired, got %v", err)
	}
	if _, err := DecodeUnverified("garbage", now); !errors.Is(err, domain.ErrCredentialMalformed) {
		t.Fatalf("expected ErrCredentialMalformed, got %v", err)
	}
}
