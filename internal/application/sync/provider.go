// Package sync contains the reconciliation orchestrator. It walks a set of
// subjects, asks every configured provider to reconcile them against its
// external source of truth, and aggregates the per-provider answers into a
// single pass/fail/skip decision per subject.
package sync

import "context"

// Provider reconciles subjects of type T against one external identity
// source. Implementations must never recover their own Sync errors; the
// orchestrator catches and classifies them.
type Provider[T any] interface {
	// Name identifies the provider in logs
	Name() string

	// Guard decides whether this provider is responsible for the subject.
	// It may read persisted state but must not mutate anything.
	Guard(ctx context.Context, subject T) (bool, error)

	// Sync reconciles the subject against the external source. It returns
	// true while the subject is still validly bound externally, false once
	// the external source no longer vouches for it. With dryRun set it must
	// compute the same answer without persisting anything.
	Sync(ctx context.Context, subject T, dryRun bool) (bool, error)

	// Down is invoked when the aggregate decision for a subject is
	// negative. It must be idempotent: a second call on an already-down
	// subject must not repeat side effects.
	Down(ctx context.Context, subject T, dryRun bool) error

	// Fetch imports subjects discovered externally into local storage
	Fetch(ctx context.Context) error

	// Pre verifies the external system is ready for a batch of work
	Pre(ctx context.Context) error

	// Post releases whatever Pre acquired
	Post(ctx context.Context) error
}
