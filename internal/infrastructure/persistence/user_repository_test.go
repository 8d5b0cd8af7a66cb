package persistence

import (
	"context"
	"testing"

	"github.com/gewis/sudosos-syncd/internal/domain/identity"
	"github.com/gewis/sudosos-syncd/internal/domain/shared"
	"github.com/gewis/sudosos-syncd/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.UserModel{},
		&models.DirectoryBindingModel{},
		&models.MembershipBindingModel{},
		&models.TransferModel{},
		&models.ServerSettingModel{},
	)
	require.NoError(t, err)

	return db
}

func createUser(t *testing.T, repo *GormUserRepository, userType identity.UserType, firstName string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(userType, firstName, "")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestGormUserRepository_CreateAndFind(t *testing.T) {
	repo := NewGormUserRepository(setupTestDB(t))
	ctx := context.Background()

	user, err := identity.NewUser(identity.UserTypeMember, "Sam", "de Vries")
	require.NoError(t, err)
	user.SetEmail("Sam@Example.com")
	user.OfAge = true
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, identity.UserTypeMember, found.Type)
	assert.Equal(t, "Sam de Vries", found.FullName())
	assert.Equal(t, "sam@example.com", found.Email)
	assert.True(t, found.OfAge)
	assert.True(t, found.Active)
	assert.False(t, found.ClosureNotified)
}

func TestGormUserRepository_FindByID_NotFound(t *testing.T) {
	repo := NewGormUserRepository(setupTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormUserRepository_Update(t *testing.T) {
	repo := NewGormUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := createUser(t, repo, identity.UserTypeMember, "Sam")
	user.Deactivate()
	user.SoftDelete()
	user.MarkClosureNotified()
	require.NoError(t, repo.Update(ctx, user))

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, found.Active)
	assert.True(t, found.Deleted)
	assert.True(t, found.ClosureNotified)
	assert.Equal(t, user.Version, found.Version)
}

func TestGormUserRepository_FindActiveByTypes(t *testing.T) {
	repo := NewGormUserRepository(setupTestDB(t))
	ctx := context.Background()

	member := createUser(t, repo, identity.UserTypeMember, "Sam")
	organ := createUser(t, repo, identity.UserTypeOrgan, "Bar Committee")
	createUser(t, repo, identity.UserTypeVoucher, "Borrel Card")

	inactive := createUser(t, repo, identity.UserTypeMember, "Kim")
	inactive.Deactivate()
	require.NoError(t, repo.Update(ctx, inactive))

	deleted := createUser(t, repo, identity.UserTypeMember, "Alex")
	deleted.SoftDelete()
	require.NoError(t, repo.Update(ctx, deleted))

	t.Run("returns only active, non-deleted users of the given types", func(t *testing.T) {
		users, err := repo.FindActiveByTypes(ctx, []identity.UserType{
			identity.UserTypeMember,
			identity.UserTypeOrgan,
		})
		require.NoError(t, err)
		require.Len(t, users, 2)

		ids := []uuid.UUID{users[0].ID, users[1].ID}
		assert.Contains(t, ids, member.ID)
		assert.Contains(t, ids, organ.ID)
	})

	t.Run("empty type set yields no candidates", func(t *testing.T) {
		users, err := repo.FindActiveByTypes(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, users)
	})
}

func TestGormUserRepository_Count(t *testing.T) {
	repo := NewGormUserRepository(setupTestDB(t))
	ctx := context.Background()

	createUser(t, repo, identity.UserTypeMember, "Sam")
	deleted := createUser(t, repo, identity.UserTypeMember, "Kim")
	deleted.SoftDelete()
	require.NoError(t, repo.Update(ctx, deleted))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
