package cli

import (
	"fmt"

	"github.com/gewis/sudosos-syncd/internal/application/usersync"
	"github.com/gewis/sudosos-syncd/internal/domain/settings"
	"github.com/gewis/sudosos-syncd/internal/infrastructure/config"
	"github.com/gewis/sudosos-syncd/internal/infrastructure/directory"
	"github.com/gewis/sudosos-syncd/internal/infrastructure/logger"
	"github.com/gewis/sudosos-syncd/internal/infrastructure/membership"
	"github.com/gewis/sudosos-syncd/internal/infrastructure/notification"
	"github.com/gewis/sudosos-syncd/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// runtime holds everything a command needs, fully wired
type runtime struct {
	cfg       *config.Config
	logger    *zap.Logger
	db        *persistence.Database
	users     *persistence.GormUserRepository
	transfers *persistence.GormTransferRepository
	settings  *settings.Store
	manager   *usersync.Manager
}

// newRuntime loads configuration and connects the runtime's dependencies
func newRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	users := persistence.NewGormUserRepository(db.DB)
	dirBindings := persistence.NewGormDirectoryBindingRepository(db.DB)
	memBindings := persistence.NewGormMembershipBindingRepository(db.DB)
	transfers := persistence.NewGormTransferRepository(db.DB)
	store := settings.NewStore(persistence.NewGormSettingRepository(db.DB))
	outbox := notification.NewOutbox(db.DB, log)

	var directoryProvider usersync.UserProvider
	if cfg.Directory.Enabled {
		client := directory.NewLDAPClient(&cfg.Directory)
		directoryProvider = directory.NewProvider(
			client, &cfg.Directory, users, dirBindings, memBindings, store, log)
	}

	var membershipProvider usersync.UserProvider
	if cfg.Membership.Enabled {
		client, err := membership.NewClient(&cfg.Membership)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		membershipProvider = membership.NewProvider(
			client, users, memBindings, transfers, store, outbox, log)
	}

	factory := usersync.NewFactory(usersync.FactoryConfig{
		DirectoryEnabled:  cfg.Directory.Enabled,
		MembershipEnabled: cfg.Membership.Enabled,
	}, directoryProvider, membershipProvider, log)

	return &runtime{
		cfg:       cfg,
		logger:    log,
		db:        db,
		users:     users,
		transfers: transfers,
		settings:  store,
		manager:   usersync.NewManager(factory.Build(), users, log),
	}, nil
}

// close releases the runtime's resources
func (r *runtime) close() {
	if err := r.db.Close(); err != nil {
		r.logger.Warn("Failed to close database connection", zap.Error(err))
	}
	_ = logger.Sync(r.logger)
}
