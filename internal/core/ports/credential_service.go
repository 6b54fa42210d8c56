package ports

import "github.com/storefront/identity-system/internal/core/domain"

// CredentialService issues and validates the signed bearer credential that
// encodes a claims set with an expiry. Tokens are stateless: issuance is a
// pure computation and validation never touches storage.
type CredentialService interface {
	// Issue creates claims for the subject with the configured lifetime and
	// returns them alongside the signed opaque token.
	Issue(subjectID string, roles domain.RoleSet) (string, *domain.Claims, error)

	// Validate verifies signature and expiry and returns the embedded claims.
	// Fails with domain.ErrCredentialMalformed or domain.ErrCredentialExpired.
	Validate(token string) (*domain.Claims, error)
}

// AuthorizationGuard decides whether resolved claims satisfy a capability.
// The decision is total: every (claims, capability) pair yields either nil or
// a specific domain error, never a panic.
type AuthorizationGuard interface {
	Authorize(claims *domain.Claims, capability domain.Capability) error
}
