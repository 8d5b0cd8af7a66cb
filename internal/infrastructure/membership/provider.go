package membership

import (
	"context"
	"errors"
	"time"

	"github.com/gewis/sudosos-syncd/internal/domain/finance"
	"github.com/gewis/sudosos-syncd/internal/domain/identity"
	"github.com/gewis/sudosos-syncd/internal/domain/notification"
	"github.com/gewis/sudosos-syncd/internal/domain/settings"
	"github.com/gewis/sudosos-syncd/internal/domain/shared"
	"go.uber.org/zap"
)

// Provider reconciles member accounts against the membership registry.
// It is responsible exactly for member-type users holding a membership
// binding; all other accounts are out of its scope.
type Provider struct {
	registry   Registry
	users      identity.UserRepository
	bindings   identity.MembershipBindingRepository
	balances   finance.BalanceReader
	settings   *settings.Store
	dispatcher notification.Dispatcher
	logger     *zap.Logger
}

// NewProvider creates a membership provider
func NewProvider(
	registry Registry,
	users identity.UserRepository,
	bindings identity.MembershipBindingRepository,
	balances finance.BalanceReader,
	settingsStore *settings.Store,
	dispatcher notification.Dispatcher,
	logger *zap.Logger,
) *Provider {
	return &Provider{
		registry:   registry,
		users:      users,
		bindings:   bindings,
		balances:   balances,
		settings:   settingsStore,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Name identifies the provider in logs
func (p *Provider) Name() string {
	return "membership"
}

// Targets returns the user types this provider is interested in
func (p *Provider) Targets() []identity.UserType {
	return []identity.UserType{identity.UserTypeMember}
}

// Guard reports whether the user is a member with a membership binding
func (p *Provider) Guard(ctx context.Context, user *identity.User) (bool, error) {
	if user.Type != identity.UserTypeMember {
		return false, nil
	}
	if _, err := p.bindings.FindByUserID(ctx, user.ID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Sync reconciles the user's profile against the bound membership record.
// It returns false when the record is gone or the membership has expired.
func (p *Provider) Sync(ctx context.Context, user *identity.User, dryRun bool) (bool, error) {
	binding, err := p.bindings.FindByUserID(ctx, user.ID)
	if err != nil {
		return false, err
	}

	member, err := p.registry.GetMember(ctx, binding.MemberNumber)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			p.logger.Info("Membership record is gone",
				zap.String("user_id", user.ID.String()),
				zap.Uint32("member_number", binding.MemberNumber))
			return false, nil
		}
		return false, err
	}

	now := time.Now()
	if member.Expired(now) {
		p.logger.Info("Membership has expired",
			zap.String("user_id", user.ID.String()),
			zap.Uint32("member_number", binding.MemberNumber),
			zap.Time("expiration", member.Expiration))
		return false, nil
	}

	external := identity.Profile{
		FirstName: member.FirstName,
		LastName:  member.LastName,
		Email:     member.Email,
		OfAge:     member.OfAge,
	}.Normalized()
	if user.CurrentProfile() != external && !dryRun {
		user.ApplyProfile(external)
		if err := p.users.Update(ctx, user); err != nil {
			return false, err
		}
		p.logger.Info("Updated member profile from registry",
			zap.String("user_id", user.ID.String()),
			zap.Uint32("member_number", binding.MemberNumber))
	}

	if !dryRun {
		binding.MarkSynced(now)
		if err := p.bindings.Update(ctx, binding); err != nil {
			return false, err
		}
	}

	return true, nil
}

// Down closes a member account that failed reconciliation. It is gated by
// the destructive-sync operator setting and notifies the user at most once
// when a balance remains.
func (p *Provider) Down(ctx context.Context, user *identity.User, dryRun bool) error {
	allowed, err := p.settings.AllowDestructiveSync(ctx)
	if err != nil {
		return err
	}
	if !allowed {
		p.logger.Info("Destructive sync is disabled, leaving account untouched",
			zap.String("user_id", user.ID.String()))
		return nil
	}

	balance, err := p.balances.BalanceOf(ctx, user.ID)
	if err != nil {
		return err
	}

	if !balance.IsZero() && !user.ClosureNotified {
		if !dryRun {
			notice := notification.AccountClosureNotice{
				UserID:   user.ID,
				FullName: user.FullName(),
				Email:    user.Email,
				Balance:  balance,
			}
			if err := p.dispatcher.SendAccountClosure(ctx, notice); err != nil {
				// Leave the notified flag unset so the next run retries
				return err
			}
			user.MarkClosureNotified()
		}
		p.logger.Info("Account closes with a remaining balance",
			zap.String("user_id", user.ID.String()),
			zap.String("balance", balance.String()),
			zap.Bool("dry_run", dryRun))
	}

	if dryRun {
		return nil
	}

	user.Deactivate()
	user.SoftDelete()

	if err := p.users.Update(ctx, user); err != nil {
		return err
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

	p.logger.Info("Closed member account",
		zap.String("user_id", user.ID.String()),
		zap.String("binding_retention", retention))

	return nil
}

// Fetch is a no-op: member accounts are provisioned by the directory, the
// registry only answers per-member lookups.
func (p *Provider) Fetch(context.Context) error {
	return nil
}

// Pre verifies the registry is healthy and not paused
func (p *Provider) Pre(ctx context.Context) error {
	return p.registry.Ping(ctx)
}

// Post releases nothing: the registry client is stateless
func (p *Provider) Post(context.Context) error {
	return nil
}
