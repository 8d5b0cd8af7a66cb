package models

import (
	"time"

	"github.com/gewis/sudosos-syncd/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferModel is the persistence model for ledger transfers
type TransferModel struct {
	BaseModel
	FromID      *uuid.UUID      `gorm:"type:uuid;index"`
	ToID        *uuid.UUID      `gorm:"type:uuid;index"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description string          `gorm:"type:varchar(255)"`
	BookedAt    time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (TransferModel) TableName() string {
	return "transfers"
}

// ToDomain converts the persistence model to a domain Transfer
func (m *TransferModel) ToDomain() *finance.Transfer {
	return &finance.Transfer{
		BaseEntity:  m.BaseModel.ToDomain(),
		FromID:      m.FromID,
		ToID:        m.ToID,
		Amount:      m.Amount,
		Description: m.Description,
		BookedAt:    m.BookedAt,
	}
}

// TransferModelFromDomain converts a domain Transfer to a persistence model
func TransferModelFromDomain(transfer *finance.Transfer) *TransferModel {
	model := &TransferModel{
		FromID:      transfer.FromID,
		ToID:        transfer.ToID,
		Amount:      transfer.Amount,
		Description: transfer.Description,
		BookedAt:    transfer.BookedAt,
	}
	model.FromDomainBaseEntity(transfer.BaseEntity)
	return model
}
