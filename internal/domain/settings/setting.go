// Package settings holds operator-controlled switches persisted next to the
// ledger, so they can be flipped at runtime without redeploying.
package settings

import (
	"context"
	"errors"

	"github.com/gewis/sudosos-syncd/internal/domain/shared"
)

// Recognized setting keys
const (
	// KeyAllowDestructiveSync gates whether a failed reconciliation may
	// deactivate member accounts. Off means the run only reports.
	KeyAllowDestructiveSync = "sync.allowDestructive"

	// KeyBindingRetention controls what happens to an external binding when
	// an account goes down: "retain" keeps the row so a deactivation can be
	// undone, "delete" removes it.
	KeyBindingRetention = "sync.bindingRetention"
)

// Binding retention policies
const (
	RetentionRetain = "retain"
	RetentionDelete = "delete"
)

// Repository defines persistence for operator settings
type Repository interface {
	// Get returns the raw value for a key; shared.ErrNotFound when unset
	Get(ctx context.Context, key string) (string, error)

	// Set stores the raw value for a key, creating it when absent
	Set(ctx context.Context, key, value string) error
}

// Store wraps a Repository with typed accessors and defaults
type Store struct {
	repo Repository
}

// NewStore creates a typed settings store
func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// AllowDestructiveSync reports whether a run may deactivate accounts.
// Defaults to false: the safety switch must be enabled explicitly.
func (s *Store) AllowDestructiveSync(ctx context.Context) (bool, error) {
	value, err := s.repo.Get(ctx, KeyAllowDestructiveSync)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return value == "true", nil
}

// BindingRetention returns the binding retention policy, defaulting to
// retain so account deactivations stay reversible.
func (s *Store) BindingRetention(ctx context.Context) (string, error) {
	value, err := s.repo.Get(ctx, KeyBindingRetention)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return RetentionRetain, nil
		}
		return "", err
	}
	if value != RetentionRetain && value != RetentionDelete {
		return "", shared.NewDomainError("INVALID_SETTING", "Unknown binding retention policy: "+value)
	}
	return value, nil
}

// SetAllowDestructiveSync flips the destructive-sync switch
func (s *Store) SetAllowDestructiveSync(ctx context.Context, allow bool) error {
	value := "false"
	if allow {
		value = "true"
	}
	return s.repo.Set(ctx, KeyAllowDestructiveSync, value)
}

// SetBindingRetention sets the binding retention policy
func (s *Store) SetBindingRetention(ctx context.Context, policy string) error {
	if policy != RetentionRetain && policy != RetentionDelete {
		return shared.NewDomainError("INVALID_SETTING", "Unknown binding retention policy: "+policy)
	}
	return s.repo.Set(ctx, KeyBindingRetention, policy)
}
