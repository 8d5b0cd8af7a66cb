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

// GormUserRepository implements identity.UserRepository using GORM
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing user
func (r *GormUserRepository) Update(ctx context.Context, user *identity.User) error {
	model := models.UserModelFromDomain(user)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByTypes returns all active, non-deleted users of the given types
func (r *GormUserRepository) FindActiveByTypes(ctx context.Context, types []identity.UserType) ([]*identity.User, error) {
	if len(types) == 0 {
		return []*identity.User{}, nil
	}

	var rows []models.UserModel
	err := r.db.WithContext(ctx).
		Where("active = ? AND deleted = ? AND type IN ?", true, false, types).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	users := make([]*identity.User, len(rows))
	for i := range rows {
		users[i] = rows[i].ToDomain()
	}
	return users, nil
}

// Count returns the total number of non-deleted users
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("deleted = ?", false).
		Count(&count).Error
	return count, err
}
