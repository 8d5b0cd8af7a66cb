package models

import (
	"time"

	"github.com/gewis/sudosos-syncd/internal/domain/identity"
	"github.com/gewis/sudosos-syncd/internal/domain/shared"
	"github.com/google/uuid"
)

// UserModel is the persistence model for users
type UserModel struct {
	AggregateModel
	Type            identity.UserType `gorm:"type:varchar(20);not null;index"`
	FirstName       string            `gorm:"type:varchar(100);not null"`
	LastName        string            `gorm:"type:varchar(100)"`
	Email           string            `gorm:"type:varchar(200)"`
	Active          bool              `gorm:"not null;default:true;index"`
	Deleted         bool              `gorm:"not null;default:false;index"`
	OfAge           bool              `gorm:"not null;default:false"`
	CanGoIntoDebt   bool              `gorm:"not null;default:false"`
	ClosureNotified bool              `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: m.BaseModel.ToDomain(),
			Version:    m.Version,
		},
		Type:            m.Type,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Email:           m.Email,
		Active:          m.Active,
		Deleted:         m.Deleted,
		OfAge:           m.OfAge,
		CanGoIntoDebt:   m.CanGoIntoDebt,
		ClosureNotified: m.ClosureNotified,
	}
}

// UserModelFromDomain converts a domain User entity to a persistence model
func UserModelFromDomain(user *identity.User) *UserModel {
	model := &UserModel{
		Type:            user.Type,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Email:           user.Email,
		Active:          user.Active,
		Deleted:         user.Deleted,
		OfAge:           user.OfAge,
		CanGoIntoDebt:   user.CanGoIntoDebt,
		ClosureNotified: user.ClosureNotified,
	}
	model.FromDomainAggregateRoot(user.BaseAggregateRoot)
	return model
}

// DirectoryBindingModel is the persistence model for directory bindings
type DirectoryBindingModel struct {
	BaseModel
	UserID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	ObjectUUID string     `gorm:"type:varchar(36);not null;uniqueIndex"`
	LastSyncAt *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (DirectoryBindingModel) TableName() string {
	return "directory_bindings"
}

// ToDomain converts the persistence model to a domain DirectoryBinding
func (m *DirectoryBindingModel) ToDomain() *identity.DirectoryBinding {
	return &identity.DirectoryBinding{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		ObjectUUID: m.ObjectUUID,
		LastSyncAt: m.LastSyncAt,
	}
}

// DirectoryBindingModelFromDomain converts a domain DirectoryBinding to a model
func DirectoryBindingModelFromDomain(binding *identity.DirectoryBinding) *DirectoryBindingModel {
	model := &DirectoryBindingModel{
		UserID:     binding.UserID,
		ObjectUUID: binding.ObjectUUID,
		LastSyncAt: binding.LastSyncAt,
	}
	model.FromDomainBaseEntity(binding.BaseEntity)
	return model
}

// MembershipBindingModel is the persistence model for membership bindings
type MembershipBindingModel struct {
	BaseModel
	UserID       uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	MemberNumber uint32     `gorm:"not null;uniqueIndex"`
	LastSyncAt   *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (MembershipBindingModel) TableName() string {
	return "membership_bindings"
}

// ToDomain converts the persistence model to a domain MembershipBinding
func (m *MembershipBindingModel) ToDomain() *identity.MembershipBinding {
	return &identity.MembershipBinding{
		BaseEntity:   m.BaseModel.ToDomain(),
		UserID:       m.UserID,
		MemberNumber: m.MemberNumber,
		LastSyncAt:   m.LastSyncAt,
	}
}

// MembershipBindingModelFromDomain converts a domain MembershipBinding to a model
func MembershipBindingModelFromDomain(binding *identity.MembershipBinding) *MembershipBindingModel {
	model := &MembershipBindingModel{
		UserID:       binding.UserID,
		MemberNumber: binding.MemberNumber,
		LastSyncAt:   binding.LastSyncAt,
	}
	model.FromDomainBaseEntity(binding.BaseEntity)
	return model
}
