package settings

import (
	"context"
	"testing"

	"github.com/gewis/sudosos-syncd/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepository struct {
	values map[string]string
}

func (r *memoryRepository) Get(_ context.Context, key string) (string, error) {
	value, ok := r.values[key]
	if !ok {
		return "", shared.ErrNotFound
	}
	return value, nil
}

func (r *memoryRepository) Set(_ context.Context, key, value string) error {
	r.values[key] = value
	return nil
}

func newMemoryStore() (*Store, *memoryRepository) {
	repo := &memoryRepository{values: make(map[string]string)}
	return NewStore(repo), repo
}

func TestStore_AllowDestructiveSync(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to false", func(t *testing.T) {
		store, _ := newMemoryStore()
		allow, err := store.AllowDestructiveSync(ctx)
		require.NoError(t, err)
		assert.False(t, allow)
	})

	t.Run("round-trips", func(t *testing.T) {
		store, _ := newMemoryStore()
		require.NoError(t, store.SetAllowDestructiveSync(ctx, true))

		allow, err := store.AllowDestructiveSync(ctx)
		require.NoError(t, err)
		assert.True(t, allow)
	})
}

func TestStore_BindingRetention(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to retain", func(t *testing.T) {
		store, _ := newMemoryStore()
		policy, err := store.BindingRetention(ctx)
		require.NoError(t, err)
		assert.Equal(t, RetentionRetain, policy)
	})

	t.Run("rejects unknown policy", func(t *testing.T) {
		store, repo := newMemoryStore()
		repo.values[KeyBindingRetention] = "shred"

		_, err := store.BindingRetention(ctx)
		assert.Error(t, err)
	})

	t.Run("reads delete policy", func(t *testing.T) {
		store, repo := newMemoryStore()
		repo.values[KeyBindingRetention] = RetentionDelete

		policy, err := store.BindingRetention(ctx)
		require.NoError(t, err)
		assert.Equal(t, RetentionDelete, policy)
	})
}

func TestStore_SetBindingRetention(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a valid policy", func(t *testing.T) {
		store, _ := newMemoryStore()
		require.NoError(t, store.SetBindingRetention(ctx, RetentionDelete))

		policy, err := store.BindingRetention(ctx)
		require.NoError(t, err)
		assert.Equal(t, RetentionDelete, policy)
	})

	t.Run("rejects unknown policy", func(t *testing.T) {
		store, _ := newMemoryStore()
		assert.Error(t, store.SetBindingRetention(ctx, "shred"))
	})
}
