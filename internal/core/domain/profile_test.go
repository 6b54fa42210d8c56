package domain

import (
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestProfileDiff_OnlyChangedFields(t *testing.T) {
	profile := &Profile{
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Smith",
	}

	patch := profile.Diff(strPtr("new@example.com"), strPtr("Alice"), nil, nil, nil)

	if patch.Email == nil || *patch.Email != "new@example.com" {
		t.Fatalf("expected email in patch, got %+v", patch)
	}
	if patch.FirstName != nil {
		t.Fatalf("unchanged first name ended up in the patch")
	}
	if patch.LastName != nil {
		t.Fatalf("absent last name ended up in the patch")
	}
}

func TestProfileDiff_NoChangesIsEmpty(t *testing.T) {
	profile := &Profile{Email: "alice@example.com", FirstName: "Alice"}

	patch := profile.Diff(strPtr("alice@example.com"), strPtr("Alice"), nil, nil, nil)
	if !patch.IsEmpty() {
		t.Fatalf("identical desired values should produce an empty patch: %+v", patch)
	}
}

func TestProfilePatch_Validate(t *testing.T) {
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name      string
		patch     ProfilePatch
		wantField string
	}{
		{"empty patch", ProfilePatch{}, ""},
		{"valid email", ProfilePatch{Email: strPtr("ok@example.com")}, ""},
		{"invalid email", ProfilePatch{Email: strPtr("not-an-email")}, "email"},
		{"empty email", ProfilePatch{Email: strPtr("")}, "email"},
		{"long first name", ProfilePatch{FirstName: strPtr(string(long))}, "first_name"},
		{"long last name", ProfilePatch{LastName: strPtr(string(long))}, "last_name"},
		{"bad image url", ProfilePatch{ImageURL: strPtr("::nope")}, "image_url"},
		{"empty image url clears", ProfilePatch{ImageURL: strPtr("")}, ""},
		{"valid image url", ProfilePatch{ImageURL: strPtr("https://img.example.com/a.png")}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tt.wantField {
				t.Fatalf("field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}
