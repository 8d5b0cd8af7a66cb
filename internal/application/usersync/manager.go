// Package usersync binds the generic reconciliation orchestrator to the
// ledger's user accounts.
package usersync

import (
	"context"

	"github.com/gewis/sudosos-syncd/internal/application/sync"
	"github.com/gewis/sudosos-syncd/internal/domain/identity"
	"go.uber.org/zap"
)

// UserProvider is a reconciliation provider for user accounts. On top of
// the generic contract it declares which user types it is interested in;
// the union of all providers' targets forms the candidate list of a run.
type UserProvider interface {
	sync.Provider[*identity.User]
	Targets() []identity.UserType
}

// Manager reconciles active, non-deleted users against all configured
// external identity sources.
type Manager struct {
	*sync.Manager[*identity.User]
}

// NewManager creates a user reconciliation manager. The target set is every
// active, non-deleted user whose type any provider declared interest in.
func NewManager(providers []UserProvider, users identity.UserRepository, logger *zap.Logger) *Manager {
	targetTypes := unionTargets(providers)

	list := make([]sync.Provider[*identity.User], len(providers))
	for i, provider := range providers {
		list[i] = provider
	}

	source := func(ctx context.Context) ([]*identity.User, error) {
		return users.FindActiveByTypes(ctx, targetTypes)
	}

	return &Manager{
		Manager: sync.NewManager(list, source, logger),
	}
}

// unionTargets collects the distinct user types across all providers,
// preserving first-seen order
func unionTargets(providers []UserProvider) []identity.UserType {
	seen := make(map[identity.UserType]struct{})
	union := make([]identity.UserType, 0)
	for _, provider := range providers {
		for _, userType := range provider.Targets() {
			if _, ok := seen[userType]; ok {
				continue
			}
			seen[userType] = struct{}{}
			union = append(union, userType)
		}
	}
	return union
}
