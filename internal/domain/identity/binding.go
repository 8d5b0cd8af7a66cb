package identity

import (
	"time"

	"github.com/gewis/sudosos-syncd/internal/domain/shared"
	"github.com/google/uuid"
)

// DirectoryBinding links a user to a directory entry by its object UUID.
// Its presence is what makes the directory responsible for the user.
type DirectoryBinding struct {
	shared.BaseEntity
	UserID     uuid.UUID
	ObjectUUID string
	LastSyncAt *time.Time
}

// NewDirectoryBinding creates a binding between a user and a directory entry
func NewDirectoryBinding(userID uuid.UUID, objectUUID string) (*DirectoryBinding, error) {
	if objectUUID == "" {
		return nil, shared.NewDomainError("INVALID_BINDING", "Directory object UUID cannot be empty")
	}
	return &DirectoryBinding{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ObjectUUID: objectUUID,
	}, nil
}

// MarkSynced records a successful reconciliation against the directory
func (b *DirectoryBinding) MarkSynced(at time.Time) {
	b.LastSyncAt = &at
	b.Touch()
}

// MembershipBinding links a user to an external membership record.
type MembershipBinding struct {
	shared.BaseEntity
	UserID       uuid.UUID
	MemberNumber uint32
	LastSyncAt   *time.Time
}

// NewMembershipBinding creates a binding between a user and a membership record
func NewMembershipBinding(userID uuid.UUID, memberNumber uint32) (*MembershipBinding, error) {
	if memberNumber == 0 {
		return nil, shared.NewDomainError("INVALID_BINDING", "Member number cannot be zero")
	}
	return &MembershipBinding{
		BaseEntity:   shared.NewBaseEntity(),
		UserID:       userID,
		MemberNumber: memberNumber,
	}, nil
}

// MarkSynced records a successful reconciliation against the membership registry
func (b *MembershipBinding) MarkSynced(at time.Time) {
	b.LastSyncAt = &at
	b.Touch()
}
