package storage

import (
	"context"
	"errors"

	"github.com/pundit-agent/internal/models"
)

// ErrUserNotFound is returned when no account matches the lookup
var ErrUserNotFound = errors.New("user not found")

// Repository defines the interface for the remote document store. Snapshots
// mirror the in-memory workspace and are keyed by user identity; a missing
// snapshot is reported as (nil, nil), not an error.
type Repository interface {
	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Snapshot operations
	WriteSnapshot(ctx context.Context, userID string, snap *models.Snapshot) error
	ReadSnapshot(ctx context.Context, userID string) (*models.Snapshot, error)

	// Maintenance
	Close() error
	Migrate() error
}
