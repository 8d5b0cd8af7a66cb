package usersync

import (
	"go.uber.org/zap"
)

// FactoryConfig enumerates which external identity sources are enabled
type FactoryConfig struct {
	DirectoryEnabled  bool
	MembershipEnabled bool
}

// Factory assembles the active provider list from configuration. Providers
// are injected fully constructed; the factory only decides which of them
// take part in a run.
type Factory struct {
	config     FactoryConfig
	directory  UserProvider
	membership UserProvider
	logger     *zap.Logger
}

// NewFactory creates a provider factory
func NewFactory(config FactoryConfig, directory, membership UserProvider, logger *zap.Logger) *Factory {
	return &Factory{
		config:     config,
		directory:  directory,
		membership: membership,
		logger:     logger,
	}
}

// Build returns the providers enabled by configuration, in a fixed order.
// Order carries no priority: aggregation over providers is order-independent.
func (f *Factory) Build() []UserProvider {
	providers := make([]UserProvider, 0, 2)

	if f.config.DirectoryEnabled && f.directory != nil {
		providers = append(providers, f.directory)
	}
	if f.config.MembershipEnabled && f.membership != nil {
		providers = append(providers, f.membership)
	}

	if len(providers) == 0 {
		f.logger.Warn("No reconciliation providers enabled; runs will classify every subject as skipped")
	}

	return providers
}
