package identity

import (
	"time"

	"github.com/gewis/sudosos-syncd/internal/domain/shared"
)

// Aggregate type constant for User
const AggregateTypeUser = "User"

// User domain event types
const (
	EventTypeUserCreated     = "UserCreated"
	EventTypeUserDeactivated = "UserDeactivated"
	EventTypeUserSynced      = "UserSynced"
)

// UserCreatedEvent is published when a user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	UserType UserType `json:"user_type"`
	FullName string   `json:"full_name"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID),
		UserType:        user.Type,
		FullName:        user.FullName(),
	}
}

// UserDeactivatedEvent is published when a user is deactivated
type UserDeactivatedEvent struct {
	shared.BaseDomainEvent
	FullName string `json:"full_name"`
}

// NewUserDeactivatedEvent creates a new UserDeactivatedEvent
func NewUserDeactivatedEvent(user *User) *UserDeactivatedEvent {
	return &UserDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserDeactivated, AggregateTypeUser, user.ID),
		FullName:        user.FullName(),
	}
}

// UserSyncedEvent is published when an external source updates a user's profile
type UserSyncedEvent struct {
	shared.BaseDomainEvent
	SyncedAt time.Time `json:"synced_at"`
}

// NewUserSyncedEvent creates a new UserSyncedEvent
func NewUserSyncedEvent(user *User, syncedAt time.Time) *UserSyncedEvent {
	return &UserSyncedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserSynced, AggregateTypeUser, user.ID),
		SyncedAt:        syncedAt,
	}
}
