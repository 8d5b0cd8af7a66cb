package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gewis/sudosos-syncd/internal/domain/identity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB creates a GORM connection backed by sqlmock, so tests can pin
// down the SQL the repositories emit against the production dialect
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormUserRepository_FindActiveByTypes_Query(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormUserRepository(db)

	userID := uuid.New()
	rows := sqlmock.NewRows([]string{
		"id", "version", "type", "first_name", "last_name", "email",
		"active", "deleted", "of_age", "can_go_into_debt", "closure_notified",
	}).AddRow(userID, 1, "member", "Sam", "de Vries", "sam@example.com",
		true, false, true, false, false)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE active = \$1 AND deleted = \$2 AND type IN \(\$3,\$4\) ORDER BY created_at`).
		WithArgs(true, false, "member", "organ").
		WillReturnRows(rows)

	users, err := repo.FindActiveByTypes(context.Background(), []identity.UserType{
		identity.UserTypeMember,
		identity.UserTypeOrgan,
	})

	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, userID, users[0].ID)
	assert.Equal(t, identity.UserTypeMember, users[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTransferRepository_BalanceOf_Query(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()
	repo := NewGormTransferRepository(db)

	accountID := uuid.New()
	rows := sqlmock.NewRows([]string{"credit", "debit"}).
		AddRow(decimal.RequireFromString("27.50"), decimal.RequireFromString("12.50"))

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(CASE WHEN to_id = \$1 THEN amount ELSE 0 END\), 0\) AS credit, COALESCE\(SUM\(CASE WHEN from_id = \$2 THEN amount ELSE 0 END\), 0\) AS debit FROM "transfers"`).
		WithArgs(accountID, accountID).
		WillReturnRows(rows)

	balance, err := repo.BalanceOf(context.Background(), accountID)

	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("15.00")),
		"expected 15.00, got %s", balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}
