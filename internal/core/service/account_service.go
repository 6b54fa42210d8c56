package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/storefront/identity-system/internal/core/domain"
	"github.com/storefront/identity-system/internal/core/ports"
)

// AccountService implements registration and login.
type AccountService struct {
	repo        ports.AccountRepository
	credentials ports.CredentialService
}

func NewAccountService(repo ports.AccountRepository, credentials ports.CredentialService) *AccountService {
	return &AccountService{repo: repo, credentials: credentials}
}

func (s *AccountService) Register(ctx context.Context, username, email, password string) (*domain.Account, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		UserID:       uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []string{domain.RoleUser},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, account)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login verifies the password and mints a fresh credential for the account's
// current role set. A refreshed credential is always a new instance.
func (s *AccountService) Login(ctx context.Context, username, password string) (string, *domain.Claims, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	return s.credentials.Issue(account.UserID, domain.NewRoleSet(account.Roles...))
}
