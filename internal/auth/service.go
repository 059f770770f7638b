package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pundit-agent/internal/models"
	"github.com/pundit-agent/internal/storage"
	"github.com/pundit-agent/pkg/logger"
)

var (
	// ErrEmailInUse is returned when registering an already-known email
	ErrEmailInUse = errors.New("this email is already registered")
	// ErrInvalidCredentials is returned on any login failure; the cause is
	// deliberately not distinguished
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrWeakPassword is returned for passwords under six characters
	ErrWeakPassword = errors.New("password is too weak, use at least 6 characters")
	// ErrInvalidEmail is returned for malformed email input
	ErrInvalidEmail = errors.New("invalid email format")
)

// Service implements the identity boundary: register, login and lookup
// keyed by email and password. Auth errors are surfaced verbatim to the
// user, never retried.
type Service struct {
	repo storage.Repository
	log  *logger.Logger
}

// New creates an auth service
func New(repo storage.Repository, log *logger.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.WithComponent("auth"),
	}
}

// Register creates a new account and returns its stable user record
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < 6 {
		return nil, ErrWeakPassword
	}
	if name = strings.TrimSpace(name); name == "" {
		name = "The Pundit"
	}

	if existing, err := s.repo.GetUserByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailInUse
	} else if err != nil && !errors.Is(err, storage.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup failed: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("User registered")
	return user, nil
}

// Login verifies credentials and returns the account
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup failed: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	s.log.Info().Str("user_id", user.ID).Msg("User logged in")
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}
