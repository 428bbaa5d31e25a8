package interfaces

import (
	"context"

	"github.com/campus-lab/rostersync/pkg/domain/model"
)

// UserRepository defines the interface for User data access.
// All lookups are parameterized by the store; callers never build query
// strings from feed values.
type UserRepository interface {
	// GetByIDNumber retrieves a user by the external idnumber key.
	// Returns nil, nil when no user carries the idnumber.
	GetByIDNumber(ctx context.Context, idNumber string) (*model.User, error)

	// GetByUsername retrieves a user by username regardless of its idnumber.
	// Returns nil, nil when the username is free.
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// Create creates a new user with auto-generated ID
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// Update persists changed fields of an existing user, matched by ID
	Update(ctx context.Context, u *model.User) error

	// SetDeletedByUsername flips the soft-delete flag on the account holding
	// the username. A miss is not an error.
	SetDeletedByUsername(ctx context.Context, username string, deleted bool) error

	// SetDeletedByIDNumber flips the soft-delete flag on the account holding
	// the idnumber. A miss is not an error.
	SetDeletedByIDNumber(ctx context.Context, idNumber string, deleted bool) error
}
