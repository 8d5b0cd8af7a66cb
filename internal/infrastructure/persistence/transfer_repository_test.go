package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/gewis/sudosos-syncd/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookTransfer(t *testing.T, repo *GormTransferRepository, from, to *uuid.UUID, amount string) *finance.Transfer {
	t.Helper()
	transfer, err := finance.NewTransfer(from, to, decimal.RequireFromString(amount), "test booking", time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), transfer))
	return transfer
}

func TestGormTransferRepository_BalanceOf(t *testing.T) {
	repo := NewGormTransferRepository(setupTestDB(t))
	ctx := context.Background()

	account := uuid.New()
	other := uuid.New()

	t.Run("an account without transfers has a zero balance", func(t *testing.T) {
		balance, err := repo.BalanceOf(ctx, account)
		require.NoError(t, err)
		assert.True(t, balance.IsZero())
	})

	t.Run("balance is credits minus debits", func(t *testing.T) {
		bookTransfer(t, repo, nil, &account, "25.00")   // deposit
		bookTransfer(t, repo, &account, &other, "7.50") // paid to other
		bookTransfer(t, repo, &other, &account, "2.50") // received from other
		bookTransfer(t, repo, &account, nil, "5.00")    // withdrawal
		bookTransfer(t, repo, &other, nil, "100.00")    // unrelated

		balance, err := repo.BalanceOf(ctx, account)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.RequireFromString("15.00")),
			"expected 15.00, got %s", balance)
	})
}

func TestGormTransferRepository_FindByAccount(t *testing.T) {
	repo := NewGormTransferRepository(setupTestDB(t))
	ctx := context.Background()

	account := uuid.New()
	other := uuid.New()
	bookTransfer(t, repo, nil, &account, "10.00")
	bookTransfer(t, repo, &account, &other, "4.00")
	bookTransfer(t, repo, &other, nil, "1.00")

	transfers, err := repo.FindByAccount(ctx, account)

	require.NoError(t, err)
	assert.Len(t, transfers, 2)
}

func TestGormTransferRepository_Import(t *testing.T) {
	repo := NewGormTransferRepository(setupTestDB(t))
	ctx := context.Background()

	account := uuid.New()
	transfer, err := finance.NewTransfer(nil, &account, decimal.RequireFromString("10.00"), "legacy row", time.Now())
	require.NoError(t, err)

	require.NoError(t, repo.Import(ctx, []*finance.Transfer{transfer}))

	t.Run("import is an upsert keyed by id", func(t *testing.T) {
		transfer.Amount = decimal.RequireFromString("12.00")
		require.NoError(t, repo.Import(ctx, []*finance.Transfer{transfer}))

		balance, err := repo.BalanceOf(ctx, account)
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.RequireFromString("12.00")),
			"expected 12.00, got %s", balance)
	})

	t.Run("empty batches are a no-op", func(t *testing.T) {
		assert.NoError(t, repo.Import(ctx, nil))
	})
}
