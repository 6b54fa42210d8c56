package service

import (
	"time"

	"github.com/storefront/identity-system/internal/core/domain"
)

// Guard evaluates capabilities against resolved claims. The decision is a
// total function: absent or empty role sets mean "no privileges", never a
// crash on malformed claim data.
type Guard struct {
	now func() time.Time
}

func NewGuard() *Guard {
	return &Guard{now: func() time.Time { return time.Now().UTC() }}
}

// WithClock overrides the time source. Intended for tests.
func (g *Guard) WithClock(now func() time.Time) *Guard {
	g.now = now
	return g
}

// Authorize returns nil when the claims satisfy the capability,
// domain.ErrUnauthenticated when no valid unexpired claims were resolved, and
// domain.ErrForbidden when the claims lack the required role.
func (g *Guard) Authorize(claims *domain.Claims, capability domain.Capability) error {
	if !claims.Valid() || claims.ExpiredAt(g.now()) {
		return domain.ErrUnauthenticated
	}

	switch capability {
	case domain.CapabilityAuthenticated:
		return nil
	case domain.CapabilityAdmin:
		if !claims.Roles.Has(domain.RoleAdmin) {
			return domain.ErrForbidden
		}
		return nil
	default:
		// Unknown capability grants nothing.
		return domain.ErrForbidden
	}
}
