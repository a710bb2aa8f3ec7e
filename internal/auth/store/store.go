package store

import (
	"context"
	"errors"

	"github.com/coffeelux/auth/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the credential store root interface. Concrete drivers (sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Settings() Settings

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	// GetUserByEmail returns a user by email regardless of active flag.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetActiveUserByEmail returns a user by email only if the account is
	// active. Used by the login path.
	GetActiveUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ExistsAndActive reports whether an active account owns the email.
	ExistsAndActive(ctx context.Context, email string) (bool, error)

	// CreateUser inserts a new user and returns the assigned id.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// UpdatePasswordHash replaces the stored password hash.
	UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error

	// SetActive flips the account's active flag. Accounts are deactivated,
	// never deleted.
	SetActive(ctx context.Context, userID int64, active bool) error
}

type Settings interface {
	// RoleName resolves a role id to its display string via the settings
	// lookup table (type="Role").
	RoleName(ctx context.Context, roleID int64) (string, error)

	// ListByType returns all active settings rows of the given type.
	ListByType(ctx context.Context, settingType string) ([]domain.Setting, error)
}
