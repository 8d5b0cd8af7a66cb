package finance

import (
	"time"

	"github.com/gewis/sudosos-syncd/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transfer is a single ledger movement between accounts. A nil FromID is a
// deposit, a nil ToID a withdrawal. The reconciliation subsystem only reads
// transfers to compute balances; it never books them.
type Transfer struct {
	shared.BaseEntity
	FromID      *uuid.UUID
	ToID        *uuid.UUID
	Amount      decimal.Decimal
	Description string
	BookedAt    time.Time
}

// NewTransfer creates a transfer between two accounts
func NewTransfer(fromID, toID *uuid.UUID, amount decimal.Decimal, description string, bookedAt time.Time) (*Transfer, error) {
	if fromID == nil && toID == nil {
		return nil, shared.NewDomainError("INVALID_TRANSFER", "Transfer needs at least one account")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TRANSFER", "Transfer amount cannot be negative")
	}
	return &Transfer{
		BaseEntity:  shared.NewBaseEntity(),
		FromID:      fromID,
		ToID:        toID,
		Amount:      amount,
		Description: description,
		BookedAt:    bookedAt,
	}, nil
}
