package persistence

import (
	"context"
	"errors"

	"github.com/gewis/sudosos-syncd/internal/domain/identity"
	"github.com/gewis/sudosos-syncd/internal/domain/shared"
	"github.com/gewis/sudosos-syncd/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDirectoryBindingRepository implements identity.DirectoryBindingRepository using GORM
type GormDirectoryBindingRepository struct {
	db *gorm.DB
}

// NewGormDirectoryBindingRepository creates a new GormDirectoryBindingRepository
func NewGormDirectoryBindingRepository(db *gorm.DB) *GormDirectoryBindingRepository {
	return &GormDirectoryBindingRepository{db: db}
}

// Create creates a new directory binding
func (r *GormDirectoryBindingRepository) Create(ctx context.Context, binding *identity.DirectoryBinding) error {
	model := models.DirectoryBindingModelFromDomain(binding)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing directory binding
func (r *GormDirectoryBindingRepository) Update(ctx context.Context, binding *identity.DirectoryBinding) error {
	model := models.DirectoryBindingModelFromDomain(binding)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByUserID finds the binding for a user
func (r *GormDirectoryBindingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.DirectoryBinding, error) {
	var model models.DirectoryBindingModel
	if err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByObjectUUID finds the binding holding a directory object UUID
func (r *GormDirectoryBindingRepository) FindByObjectUUID(ctx context.Context, objectUUID string) (*identity.DirectoryBinding, error) {
	var model models.DirectoryBindingModel
	if err := r.db.WithContext(ctx).First(&model, "object_uuid = ?", objectUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// DeleteByUserID removes the binding for a user if present
func (r *GormDirectoryBindingRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.DirectoryBindingModel{}).Error
}

// GormMembershipBindingRepository implements identity.MembershipBindingRepository using GORM
type GormMembershipBindingRepository struct {
	db *gorm.DB
}

// NewGormMembershipBindingRepository creates a new GormMembershipBindingRepository
func NewGormMembershipBindingRepository(db *gorm.DB) *GormMembershipBindingRepository {
	return &GormMembershipBindingRepository{db: db}
}

// Create creates a new membership binding
func (r *GormMembershipBindingRepository) Create(ctx context.Context, binding *identity.MembershipBinding) error {
	model := models.MembershipBindingModelFromDomain(binding)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing membership binding
func (r *GormMembershipBindingRepository) Update(ctx context.Context, binding *identity.MembershipBinding) error {
	model := models.MembershipBindingModelFromDomain(binding)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByUserID finds the binding for a user
func (r *GormMembershipBindingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.MembershipBinding, error) {
	var model models.MembershipBindingModel
	if err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByMemberNumber finds the binding holding a member number
func (r *GormMembershipBindingRepository) FindByMemberNumber(ctx context.Context, memberNumber uint32) (*identity.MembershipBinding, error) {
	var model models.MembershipBindingModel
	if err := r.db.WithContext(ctx).First(&model, "member_number = ?", memberNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// DeleteByUserID removes the binding for a user if present
func (r *GormMembershipBindingRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.MembershipBindingModel{}).Error
}
