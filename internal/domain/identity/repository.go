package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// Update updates an existing user
	Update(ctx context.Context, user *User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindActiveByTypes returns all active, non-deleted users whose type is
	// in the given set. This is the candidate list for a reconciliation run.
	FindActiveByTypes(ctx context.Context, types []UserType) ([]*User, error)

	// Count returns the total number of non-deleted users
	Count(ctx context.Context) (int64, error)
}

// DirectoryBindingRepository defines persistence for directory bindings
type DirectoryBindingRepository interface {
	Create(ctx context.Context, binding *DirectoryBinding) error
	Update(ctx context.Context, binding *DirectoryBinding) error

	// FindByUserID finds the binding for a user; shared.ErrNotFound when absent
	FindByUserID(ctx context.Context, userID uuid.UUID) (*DirectoryBinding, error)

	// FindByObjectUUID finds the binding holding a directory object UUID
	FindByObjectUUID(ctx context.Context, objectUUID string) (*DirectoryBinding, error)

	// DeleteByUserID removes the binding for a user. Removing an absent
	// binding is not an error.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// MembershipBindingRepository defines persistence for membership bindings
type MembershipBindingRepository interface {
	Create(ctx context.Context, binding *MembershipBinding) error
	Update(ctx context.Context, binding *MembershipBinding) error

	// FindByUserID finds the binding for a user; shared.ErrNotFound when absent
	FindByUserID(ctx context.Context, userID uuid.UUID) (*MembershipBinding, error)

	// FindByMemberNumber finds the binding holding a member number
	FindByMemberNumber(ctx context.Context, memberNumber uint32) (*MembershipBinding, error)

	// DeleteByUserID removes the binding for a user. Removing an absent
	// binding is not an error.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
