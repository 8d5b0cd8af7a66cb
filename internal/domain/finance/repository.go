package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferRepository defines persistence for ledger transfers
type TransferRepository interface {
	// Create books a single transfer
	Create(ctx context.Context, transfer *Transfer) error

	// Import upserts a batch of transfers, keyed by ID. Used when loading
	// ledger rows exported from the legacy system.
	Import(ctx context.Context, transfers []*Transfer) error

	// FindByAccount returns all transfers touching an account
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]*Transfer, error)
}

// BalanceReader resolves the current balance of an account from the ledger
type BalanceReader interface {
	// BalanceOf returns credits minus debits for the account. An account
	// without transfers has a zero balance.
	BalanceOf(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)
}
