// Package notification defines the outbound messages the reconciliation
// subsystem may trigger. Actual delivery (mail, chat) belongs to the main
// backend; this subsystem only hands notices over, at most once per event.
package notification

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Notice kinds
const (
	KindAccountClosure = "account_closure"
)

// AccountClosureNotice tells a user their account is being closed while
// still carrying a balance
type AccountClosureNotice struct {
	UserID   uuid.UUID
	FullName string
	Email    string
	Balance  decimal.Decimal
}

// Dispatcher hands notices over for delivery. Implementations must be
// fire-and-forget: a dispatch error is reported but the caller decides
// whether to retry.
type Dispatcher interface {
	SendAccountClosure(ctx context.Context, notice AccountClosureNotice) error
}
