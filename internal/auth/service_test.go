package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/pundit-agent/internal/storage/sqlite"
	"github.com/pundit-agent/pkg/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("sqlite.New: %v", err)
	}
	if err := repo.Migrate(); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return New(repo, logger.Default())
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Pat", "Pat@Example.COM ", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "pat@example.com" {
		t.Errorf("email = %s, want normalized", user.Email)
	}
	if user.PasswordHash == "secret1" {
		t.Error("password stored in plain text")
	}
	if user.ID == "" {
		t.Error("user missing ID")
	}

	got, err := svc.Login(ctx, "pat@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("login returned %s, want %s", got.ID, user.ID)
	}
}

func TestRegisterDefaultsName(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Register(context.Background(), "  ", "anon@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Name != "The Pundit" {
		t.Errorf("name = %q, want default", user.Name)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"missing at", "notanemail", "secret1", ErrInvalidEmail},
		{"missing domain dot", "a@host", "secret1", ErrInvalidEmail},
		{"short password", "ok@example.com", "12345", ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, "", tt.email, tt.password); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "dup@example.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "", "DUP@example.com", "another1"); !errors.Is(err, ErrEmailInUse) {
		t.Errorf("err = %v, want ErrEmailInUse", err)
	}
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "pat@example.com", "secret1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Login(ctx, "pat@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user err = %v, want ErrInvalidCredentials", err)
	}
}
