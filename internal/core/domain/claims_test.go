package domain

import (
	"reflect"
	"testing"
	"time"
)

func TestNewRoleSet(t *testing.T) {
	set := NewRoleSet(RoleUser, RoleAdmin, RoleUser, "")

	if len(set) != 2 {
		t.Fatalf("expected duplicates and empties to collapse, got %v", set)
	}
	if !set.Has(RoleAdmin) || !set.Has(RoleUser) {
		t.Fatalf("missing roles: %v", set)
	}
	if got := set.Values(); !reflect.DeepEqual(got, []string{RoleAdmin, RoleUser}) {
		t.Fatalf("Values() = %v, want sorted roles", got)
	}
}

func TestRoleSet_NilIsEmpty(t *testing.T) {
	var set RoleSet
	if set.Has(RoleAdmin) {
		t.Fatalf("nil set should grant nothing")
	}
	if got := set.Values(); len(got) != 0 {
		t.Fatalf("nil set Values() = %v", got)
	}
}

func TestClaims_Valid(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name   string
		claims *Claims
		want   bool
	}{
		{"ok", &Claims{SubjectID: "u1", IssuedAt: now, ExpiresAt: now.Add(time.Hour)}, true},
		{"nil", nil, false},
		{"empty subject", &Claims{IssuedAt: now, ExpiresAt: now.Add(time.Hour)}, false},
		{"expiry equals issuance", &Claims{SubjectID: "u1", IssuedAt: now, ExpiresAt: now}, false},
		{"expiry before issuance", &Claims{SubjectID: "u1", IssuedAt: now, ExpiresAt: now.Add(-time.Hour)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.claims.Valid(); got != tt.want {
				t.Fatalf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClaims_ExpiredAt(t *testing.T) {
	now := time.Now().UTC()
	claims := &Claims{SubjectID: "u1", IssuedAt: now, ExpiresAt: now.Add(time.Hour)}

	if claims.ExpiredAt(now) {
		t.Fatalf("fresh claims should not be expired")
	}
	// Exactly at expiry counts as expired.
	if !claims.ExpiredAt(now.Add(time.Hour)) {
		t.Fatalf("claims at the expiry instant should be expired")
	}
	var missing *Claims
	if !missing.ExpiredAt(now) {
		t.Fatalf("nil claims should read as expired")
	}
}
