package ports

import (
	"context"

	"github.com/storefront/identity-system/internal/core/domain"
)

// AccountService implements registration and login.
type AccountService interface {
	Register(ctx context.Context, username, email, password string) (*domain.Account, error)
	// Login verifies the password and returns a freshly issued credential
	// alongside the derived claims.
	Login(ctx context.Context, username, password string) (string, *domain.Claims, error)
}
