package persistence

import (
	"context"
	"testing"

	"github.com/gewis/sudosos-syncd/internal/domain/settings"
	"github.com/gewis/sudosos-syncd/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSettingRepository(t *testing.T) {
	repo := NewGormSettingRepository(setupTestDB(t))
	ctx := context.Background()

	t.Run("unset keys report ErrNotFound", func(t *testing.T) {
		_, err := repo.Get(ctx, settings.KeyAllowDestructiveSync)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("set creates and overwrites", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, settings.KeyBindingRetention, settings.RetentionRetain))
		require.NoError(t, repo.Set(ctx, settings.KeyBindingRetention, settings.RetentionDelete))

		value, err := repo.Get(ctx, settings.KeyBindingRetention)
		require.NoError(t, err)
		assert.Equal(t, settings.RetentionDelete, value)
	})

	t.Run("backs the typed settings store", func(t *testing.T) {
		store := settings.NewStore(repo)

		allowed, err := store.AllowDestructiveSync(ctx)
		require.NoError(t, err)
		assert.False(t, allowed)

		require.NoError(t, store.SetAllowDestructiveSync(ctx, true))

		allowed, err = store.AllowDestructiveSync(ctx)
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}
