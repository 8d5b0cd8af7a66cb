package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gewis/sudosos-syncd/internal/domain/shared"
	"github.com/gewis/sudosos-syncd/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingRepository implements settings.Repository using GORM
type GormSettingRepository struct {
	db *gorm.DB
}

// NewGormSettingRepository creates a new GormSettingRepository
func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// Get returns the raw value for a key
func (r *GormSettingRepository) Get(ctx context.Context, key string) (string, error) {
	var model models.ServerSettingModel
	if err := r.db.WithContext(ctx).First(&model, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return model.Value, nil
}

// Set stores the raw value for a key, creating it when absent
func (r *GormSettingRepository) Set(ctx context.Context, key, value string) error {
	model := models.ServerSettingModel{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&model).Error
}
