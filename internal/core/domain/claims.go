package domain

import (
	"sort"
	"time"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// RoleSet is a set of role names. Duplicates collapse and ordering is
// irrelevant. A nil RoleSet is valid and grants nothing.
type RoleSet map[string]struct{}

// NewRoleSet builds a RoleSet from the given role names, skipping empties.
func NewRoleSet(roles ...string) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		if r == "" {
			continue
		}
		set[r] = struct{}{}
	}
	return set
}

// Has reports whether the role is present. Safe on a nil set.
func (s RoleSet) Has(role string) bool {
	_, ok := s[role]
	return ok
}

// Values returns the roles sorted alphabetically for stable encoding.
func (s RoleSet) Values() []string {
	out := make([]string, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// Claims is the immutable identity and authorization facts embedded in a
// credential: who the principal is, which roles it holds, and the validity
// window of the credential that carried it.
type Claims struct {
	SubjectID string
	Roles     RoleSet
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Valid reports whether the claims satisfy the structural invariants:
// non-empty subject and an expiry strictly after issuance.
func (c *Claims) Valid() bool {
	return c != nil && c.SubjectID != "" && c.ExpiresAt.After(c.IssuedAt)
}

// ExpiredAt reports whether the claims are expired at the given instant.
func (c *Claims) ExpiredAt(now time.Time) bool {
	return c == nil || !now.Before(c.ExpiresAt)
}

// Capability is a named authorization requirement checked against resolved
// claims. The set is closed: the guard handles every member exhaustively.
type Capability int

const (
	// CapabilityAuthenticated requires valid, unexpired claims.
	CapabilityAuthenticated Capability = iota
	// CapabilityAdmin additionally requires the Admin role.
	CapabilityAdmin
)

func (c Capability) String() string {
	switch c {
	case CapabilityAuthenticated:
		return "authenticated"
	case CapabilityAdmin:
		return "admin"
	default:
		return "unknown"
	}
}
