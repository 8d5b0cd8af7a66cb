package identity

import (
	"strings"
	"time"

	"github.com/gewis/sudosos-syncd/internal/domain/shared"
)

// UserType classifies an account by its origin and purpose
type UserType string

const (
	UserTypeMember      UserType = "member"        // Regular association member
	UserTypeOrgan       UserType = "organ"         // Shared account owned by a committee/organ
	UserTypeVoucher     UserType = "voucher"       // Local-only prepaid account
	UserTypeIntegration UserType = "integration"   // Service account for an external integration
	UserTypePointOfSale UserType = "point_of_sale" // Account bound to a point-of-sale device
)

// AllUserTypes lists every recognized user type
var AllUserTypes = []UserType{
	UserTypeMember,
	UserTypeOrgan,
	UserTypeVoucher,
	UserTypeIntegration,
	UserTypePointOfSale,
}

// IsValid reports whether the type is one of the recognized values
func (t UserType) IsValid() bool {
	switch t {
	case UserTypeMember, UserTypeOrgan, UserTypeVoucher, UserTypeIntegration, UserTypePointOfSale:
		return true
	}
	return false
}

// User represents an account in the bar ledger.
// It is the aggregate root for all account reconciliation operations.
type User struct {
	shared.BaseAggregateRoot
	Type          UserType
	FirstName     string
	LastName      string
	Email         string
	Active        bool
	Deleted       bool
	OfAge         bool
	CanGoIntoDebt bool

	// ClosureNotified records that an account-closure notice has been
	// dispatched for this user. It guards against duplicate notices when
	// an already-closed account is closed again.
	ClosureNotified bool
}

// NewUser creates a new user of the given type
func NewUser(userType UserType, firstName, lastName string) (*User, error) {
	if !userType.IsValid() {
		return nil, shared.NewDomainError("INVALID_USER_TYPE", "Unknown user type: "+string(userType))
	}
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Type:              userType,
		FirstName:         firstName,
		LastName:          strings.TrimSpace(lastName),
		Active:            true,
	}

	user.AddDomainEvent(NewUserCreatedEvent(user))

	return user, nil
}

// FullName returns the display name of the user
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// SetEmail sets the user's email address
func (u *User) SetEmail(email string) {
	u.Email = strings.ToLower(strings.TrimSpace(email))
	u.Touch()
	u.IncrementVersion()
}

// Rename updates the user's name fields
func (u *User) Rename(firstName, lastName string) error {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return shared.NewDomainError("INVALID_NAME", "First name cannot be empty")
	}
	u.FirstName = firstName
	u.LastName = strings.TrimSpace(lastName)
	u.Touch()
	u.IncrementVersion()
	return nil
}

// Activate marks the user as able to use the point of sale
func (u *User) Activate() {
	if u.Active {
		return
	}
	u.Active = true
	u.Touch()
	u.IncrementVersion()
}

// Deactivate marks the user as unable to use the point of sale
func (u *User) Deactivate() {
	if !u.Active {
		return
	}
	u.Active = false
	u.Touch()
	u.IncrementVersion()
	u.AddDomainEvent(NewUserDeactivatedEvent(u))
}

// SoftDelete hides the user without destroying ledger history.
// Accounts are never hard-deleted: their transactions must stay auditable.
func (u *User) SoftDelete() {
	if u.Deleted {
		return
	}
	u.Deleted = true
	u.Touch()
	u.IncrementVersion()
}

// Restore undoes a soft delete
func (u *User) Restore() {
	if !u.Deleted {
		return
	}
	u.Deleted = false
	u.Touch()
	u.IncrementVersion()
}

// MarkClosureNotified records that the closure notice went out
func (u *User) MarkClosureNotified() {
	u.ClosureNotified = true
	u.Touch()
	u.IncrementVersion()
}

// Profile is the set of user fields an external identity source may own.
// It is what providers diff against before persisting an update.
type Profile struct {
	FirstName string
	LastName  string
	Email     string
	OfAge     bool
}

// Normalized returns a copy of the profile with the email canonicalized
// the way SetEmail stores it, so profile comparisons are stable across
// sources that differ only in email casing or surrounding whitespace.
func (p Profile) Normalized() Profile {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	return p
}

// CurrentProfile returns the user's externally-owned fields
func (u *User) CurrentProfile() Profile {
	return Profile{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		OfAge:     u.OfAge,
	}
}

// ApplyProfile overwrites the externally-owned fields and reports whether
// anything actually changed.
func (u *User) ApplyProfile(p Profile) bool {
	p = p.Normalized()
	if u.CurrentProfile() == p {
		return false
	}
	u.FirstName = p.FirstName
	u.LastName = p.LastName
	u.Email = p.Email
	u.OfAge = p.OfAge
	u.Touch()
	u.IncrementVersion()
	u.AddDomainEvent(NewUserSyncedEvent(u, time.Now()))
	return true
}
