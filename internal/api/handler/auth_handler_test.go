package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/storefront/identity-system/internal/core/domain"
)

type stubAccountService struct {
	registerErr error
	loginErr    error

	registeredUsername string
	registeredEmail    string
}

func (s *stubAccountService) Register(_ context.Context, username, email, _ string) (*domain.Account, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	s.registeredUsername = username
	s.registeredEmail = email
	return &domain.Account{UserID: "u1", Username: username, Email: email}, nil
}

func (s *stubAccountService) Login(_ context.Context, username, _ string) (string, *domain.Claims, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	now := time.Now().UTC()
	return "a.b.c", &domain.Claims{
		SubjectID: "u1",
		Roles:     domain.NewRoleSet(domain.RoleUser),
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}, nil
}

func newAuthServer(accounts *stubAccountService) *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = testErrorHandler()

	h := NewAuthHandler(accounts)
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	return e
}

func TestRegister_CreatesAccount(t *testing.T) {
	accounts := &stubAccountService{}
	srv := &testServer{echo: newAuthServer(accounts)}

	body := `{"username":"alice","email":"alice@example.com","password":"hunter2hunter2"}`
	rec := srv.do(http.MethodPost, "/auth/register", "", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp registerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Username != "alice" || resp.UserID == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if accounts.registeredEmail != "alice@example.com" {
		t.Fatalf("service received %q", accounts.registeredEmail)
	}
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	accounts := &stubAccountService{}
	srv := &testServer{echo: newAuthServer(accounts)}

	body := `{"username":"alice","email":"alice@example.com","password":"short"}`
	rec := srv.do(http.MethodPost, "/auth/register", "", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if accounts.registeredUsername != "" {
		t.Fatalf("invalid request reached the service")
	}
}

func TestLogin_ReturnsCredential(t *testing.T) {
	srv := &testServer{echo: newAuthServer(&stubAccountService{})}

	body := `{"username":"alice","password":"hunter2hunter2"}`
	rec := srv.do(http.MethodPost, "/auth/login", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" || resp.SubjectID != "u1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(resp.Roles) != 1 || resp.Roles[0] != domain.RoleUser {
		t.Fatalf("unexpected roles: %v", resp.Roles)
	}
}

func TestLogin_InvalidPassword(t *testing.T) {
	srv := &testServer{echo: newAuthServer(&stubAccountService{loginErr: domain.ErrInvalidCredentials})}

	body := `{"username":"alice","password":"wrong-password"}`
	rec := srv.do(http.MethodPost, "/auth/login", "", body)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}
