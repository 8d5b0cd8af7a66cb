package directory

import (
	"context"
	"errors"
	"time"

	"github.com/gewis/sudosos-syncd/internal/domain/identity"
	"github.com/gewis/sudosos-syncd/internal/domain/settings"
	"github.com/gewis/sudosos-syncd/internal/domain/shared"
	"github.com/gewis/sudosos-syncd/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Provider reconciles directory-owned accounts. Shared and service
// accounts are fully owned by the directory; for member accounts it only
// confirms the directory link still exists, profile data belongs to the
// membership registry.
type Provider struct {
	client      Client
	cfg         *config.DirectoryConfig
	users       identity.UserRepository
	bindings    identity.DirectoryBindingRepository
	memBindings identity.MembershipBindingRepository
	settings    *settings.Store
	logger      *zap.Logger
}

// NewProvider creates a directory provider
func NewProvider(
	client Client,
	cfg *config.DirectoryConfig,
	users identity.UserRepository,
	bindings identity.DirectoryBindingRepository,
	memBindings identity.MembershipBindingRepository,
	settingsStore *settings.Store,
	logger *zap.Logger,
) *Provider {
	return &Provider{
		client:      client,
		cfg:         cfg,
		users:       users,
		bindings:    bindings,
		memBindings: memBindings,
		settings:    settingsStore,
		logger:      logger,
	}
}

// Name identifies the provider in logs
func (p *Provider) Name() string {
	return "directory"
}

// Targets returns the user types this provider is interested in
func (p *Provider) Targets() []identity.UserType {
	return []identity.UserType{
		identity.UserTypeMember,
		identity.UserTypeOrgan,
		identity.UserTypeIntegration,
	}
}

// Guard reports whether the directory is responsible for the user. Shared
// and service accounts are directory-owned by type; members only while a
// directory binding exists.
func (p *Provider) Guard(ctx context.Context, user *identity.User) (bool, error) {
	switch user.Type {
	case identity.UserTypeOrgan, identity.UserTypeIntegration:
		return true, nil
	case identity.UserTypeMember:
		if _, err := p.bindings.FindByUserID(ctx, user.ID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	default:
		return false, nil
	}
}

// Sync confirms the bound directory entry still exists and, for
// directory-owned account types, refreshes name and active state from it.
func (p *Provider) Sync(ctx context.Context, user *identity.User, dryRun bool) (bool, error) {
	binding, err := p.bindings.FindByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Directory-owned type without a binding: nothing vouches
			// for this account anymore
			return false, nil
		}
		return false, err
	}

	entry, err := p.client.FindByUUID(ctx, binding.ObjectUUID)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			p.logger.Info("Directory entry is gone",
				zap.String("user_id", user.ID.String()),
				zap.String("object_uuid", binding.ObjectUUID))
			return false, nil
		}
		return false, err
	}

	// Members keep their registry-owned profile; the directory only
	// vouches for the link.
	if user.Type != identity.UserTypeMember && !dryRun {
		changed := false
		if entry.DisplayName != "" && entry.DisplayName != user.FirstName {
			if err := user.Rename(entry.DisplayName, ""); err != nil {
				return false, err
			}
			changed = true
		}
		if user.Active == entry.Disabled {
			if entry.Disabled {
				user.Deactivate()
			} else {
				user.Activate()
			}
			changed = true
		}
		if changed {
			if err := p.users.Update(ctx, user); err != nil {
				return false, err
			}
			p.logger.Info("Refreshed account from directory",
				zap.String("user_id", user.ID.String()),
				zap.String("display_name", entry.DisplayName))
		}
	}

	if !dryRun {
		binding.MarkSynced(time.Now())
		if err := p.bindings.Update(ctx, binding); err != nil {
			return false, err
		}
	}

	return true, nil
}

// Down unlinks the user from the directory and, for directory-owned
// account types, closes the account.
func (p *Provider) Down(ctx context.Context, user *identity.User, dryRun bool) error {
	if dryRun {
		return nil
	}

	retention, err := p.settings.BindingRetention(ctx)
	if err != nil {
		return err
	}
	if retention == settings.RetentionDelete {
		if err := p.bindings.DeleteByUserID(ctx, user.ID); err != nil {
			return err
		}
	}

	// Member accounts stay up: their fate is the membership registry's
	// call, losing the directory link alone does not close them.
	if user.Type == identity.UserTypeMember {
		return nil
	}

	if !user.Active && user.Deleted {
		return nil
	}

	user.Deactivate()
	user.SoftDelete()
	if err := p.users.Update(ctx, user); err != nil {
		return err
	}

	p.logger.Info("Closed directory-owned account",
		zap.String("user_id", user.ID.String()),
		zap.String("type", string(user.Type)),
		zap.String("binding_retention", retention))

	return nil
}

// Fetch discovers new directory-owned accounts. Each discovery pass is
// gated by its group filter; a missing filter skips the pass with a
// warning.
func (p *Provider) Fetch(ctx context.Context) error {
	passes := []struct {
		name     string
		groupDN  string
		userType identity.UserType
	}{
		{name: "shared accounts", groupDN: p.cfg.SharedAccountFilter, userType: identity.UserTypeOrgan},
		{name: "role accounts", groupDN: p.cfg.RoleFilter, userType: identity.UserTypeOrgan},
		{name: "service accounts", groupDN: p.cfg.ServiceAccountFilter, userType: identity.UserTypeIntegration},
	}

	for _, pass := range passes {
		if pass.groupDN == "" {
			p.logger.Warn("No group filter configured, skipping discovery pass",
				zap.String("pass", pass.name))
			continue
		}
		if err := p.discover(ctx, pass.groupDN, pass.userType); err != nil {
			return err
		}
	}

	return nil
}

// discover imports the members of one directory group as local accounts
func (p *Provider) discover(ctx context.Context, groupDN string, userType identity.UserType) error {
	entries, err := p.client.GroupMembers(ctx, groupDN)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.ObjectUUID == "" {
			p.logger.Warn("Directory entry without object UUID, skipping",
				zap.String("dn", entry.DN))
			continue
		}

		if _, err := p.bindings.FindByObjectUUID(ctx, entry.ObjectUUID); err == nil {
			continue // already known
		} else if !errors.Is(err, shared.ErrNotFound) {
			p.logger.Error("Binding lookup failed during discovery",
				zap.String("object_uuid", entry.ObjectUUID),
				zap.Error(err))
			continue
		}

		if err := p.importEntry(ctx, entry, userType); err != nil {
			p.logger.Error("Failed to import directory entry",
				zap.String("dn", entry.DN),
				zap.Error(err))
		}
	}

	return nil
}

// importEntry creates a local account and its bindings for one entry
func (p *Provider) importEntry(ctx context.Context, entry *Entry, userType identity.UserType) error {
	name := entry.DisplayName
	if name == "" {
		name = entry.DN
	}

	user, err := identity.NewUser(userType, name, "")
	if err != nil {
		return err
	}
	user.SetEmail(entry.Email)
	if entry.Disabled {
		user.Deactivate()
	}

	if err := p.users.Create(ctx, user); err != nil {
		return err
	}

	binding, err := identity.NewDirectoryBinding(user.ID, entry.ObjectUUID)
	if err != nil {
		return err
	}
	if err := p.bindings.Create(ctx, binding); err != nil {
		return err
	}

	// A discovered entry carrying a member number also gets a membership
	// binding, so the registry can take ownership of its profile.
	if entry.MemberNumber != 0 {
		memBinding, err := identity.NewMembershipBinding(user.ID, entry.MemberNumber)
		if err != nil {
			return err
		}
		if err := p.memBindings.Create(ctx, memBinding); err != nil {
			return err
		}
	}

	p.logger.Info("Imported directory account",
		zap.String("user_id", user.ID.String()),
		zap.String("type", string(userType)),
		zap.String("dn", entry.DN))

	return nil
}

// Pre opens and authenticates the directory connection
func (p *Provider) Pre(ctx context.Context) error {
	return p.client.Bind(ctx)
}

// Post releases the directory connection
func (p *Provider) Post(context.Context) error {
	return p.client.Close()
}
