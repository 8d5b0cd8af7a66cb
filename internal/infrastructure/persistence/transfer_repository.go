package persistence

import (
	"context"

	"github.com/gewis/sudosos-syncd/internal/domain/finance"
	"github.com/gewis/sudosos-syncd/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTransferRepository implements finance.TransferRepository and
// finance.BalanceReader using GORM
type GormTransferRepository struct {
	db *gorm.DB
}

// NewGormTransferRepository creates a new GormTransferRepository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

// Create books a single transfer
func (r *GormTransferRepository) Create(ctx context.Context, transfer *finance.Transfer) error {
	model := models.TransferModelFromDomain(transfer)
	return r.db.WithContext(ctx).Create(model).Error
}

// Import upserts a batch of transfers keyed by ID
func (r *GormTransferRepository) Import(ctx context.Context, transfers []*finance.Transfer) error {
	if len(transfers) == 0 {
		return nil
	}

	rows := make([]*models.TransferModel, len(transfers))
	for i, transfer := range transfers {
		rows[i] = models.TransferModelFromDomain(transfer)
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(rows).Error
}

// FindByAccount returns all transfers touching an account
func (r *GormTransferRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) ([]*finance.Transfer, error) {
	var rows []models.TransferModel
	err := r.db.WithContext(ctx).
		Where("from_id = ? OR to_id = ?", accountID, accountID).
		Order("booked_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	transfers := make([]*finance.Transfer, len(rows))
	for i := range rows {
		transfers[i] = rows[i].ToDomain()
	}
	return transfers, nil
}

// BalanceOf returns credits minus debits for the account
func (r *GormTransferRepository) BalanceOf(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	type row struct {
		Credit decimal.Decimal
		Debit  decimal.Decimal
	}
	var sums row

	err := r.db.WithContext(ctx).
		Model(&models.TransferModel{}).
		Select(
			"COALESCE(SUM(CASE WHEN to_id = ? THEN amount ELSE 0 END), 0) AS credit, "+
				"COALESCE(SUM(CASE WHEN from_id = ? THEN amount ELSE 0 END), 0) AS debit",
			accountID, accountID).
		Scan(&sums).Error
	if err != nil {
		return decimal.Zero, err
	}

	return sums.Credit.Sub(sums.Debit), nil
}
