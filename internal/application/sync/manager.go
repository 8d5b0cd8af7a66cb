package sync

import (
	"context"

	"go.uber.org/zap"
)

// TargetSource yields the candidate subjects for a run
type TargetSource[T any] func(ctx context.Context) ([]T, error)

// Manager orchestrates reconciliation of subjects across a fixed list of
// providers. Execution is strictly sequential: one subject is fully handled
// before the next begins, and there is no mid-run cancellation beyond the
// context passed into each provider call.
type Manager[T any] struct {
	providers []Provider[T]
	targets   TargetSource[T]
	logger    *zap.Logger
}

// NewManager creates a manager over the given providers
func NewManager[T any](providers []Provider[T], targets TargetSource[T], logger *zap.Logger) *Manager[T] {
	return &Manager[T]{
		providers: providers,
		targets:   targets,
		logger:    logger,
	}
}

// Providers returns the configured provider list
func (m *Manager[T]) Providers() []Provider[T] {
	return m.providers
}

// Run sweeps all target subjects through every provider and applies Down to
// the ones that fail. A provider precondition failure aborts the whole run
// before any subject is touched, yielding an empty but valid result.
func (m *Manager[T]) Run(ctx context.Context) (*RunResult[T], error) {
	return m.run(ctx, false)
}

// RunDry behaves like Run but never persists mutations or side effects. It
// produces the classification a real run would, given unchanged external
// state.
func (m *Manager[T]) RunDry(ctx context.Context) (*RunResult[T], error) {
	return m.run(ctx, true)
}

func (m *Manager[T]) run(ctx context.Context, dryRun bool) (*RunResult[T], error) {
	result := NewRunResult[T]()

	subjects, err := m.targets(ctx)
	if err != nil {
		return nil, err
	}

	m.logger.Info("Starting reconciliation run",
		zap.Int("targets", len(subjects)),
		zap.Int("providers", len(m.providers)),
		zap.Bool("dry_run", dryRun))

	// A provider whose preconditions fail poisons the whole batch: its
	// external system is assumed globally unreachable, not per-subject.
	ready, ok := m.preAll(ctx)
	if !ok {
		m.postAll(ctx, ready)
		m.logger.Warn("Run aborted before processing any subject")
		return result, nil
	}

	for _, subject := range subjects {
		skipped, passed := m.syncOne(ctx, subject, dryRun)
		switch {
		case skipped:
			result.add(subject, OutcomeSkipped)
		case passed:
			result.add(subject, OutcomePassed)
		default:
			result.add(subject, OutcomeFailed)
			m.down(ctx, subject, dryRun)
		}
	}

	m.postAll(ctx, m.providers)

	m.logger.Info("Reconciliation run finished",
		zap.Int("passed", len(result.Passed)),
		zap.Int("failed", len(result.Failed)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Bool("dry_run", dryRun))

	return result, nil
}

// syncOne aggregates guard+sync across all providers for one subject.
// skipped is true only when every guard declined; passed is true when at
// least one responsible provider vouched for the subject.
func (m *Manager[T]) syncOne(ctx context.Context, subject T, dryRun bool) (skipped, passed bool) {
	skipped = true

	for _, provider := range m.providers {
		inScope, err := provider.Guard(ctx, subject)
		if err != nil {
			m.logger.Warn("Provider guard errored, treating subject as out of scope",
				zap.String("provider", provider.Name()),
				zap.Error(err))
			continue
		}
		if !inScope {
			continue
		}

		skipped = false

		ok, err := provider.Sync(ctx, subject, dryRun)
		if err != nil {
			m.logger.Error("Provider sync errored",
				zap.String("provider", provider.Name()),
				zap.Error(err))
			continue
		}
		if ok {
			passed = true
		}
	}

	return skipped, passed
}

// down fans out to every responsible provider, suppressing individual
// errors so one broken provider never blocks another's cleanup.
func (m *Manager[T]) down(ctx context.Context, subject T, dryRun bool) {
	for _, provider := range m.providers {
		inScope, err := provider.Guard(ctx, subject)
		if err != nil {
			m.logger.Warn("Provider guard errored during down",
				zap.String("provider", provider.Name()),
				zap.Error(err))
			continue
		}
		if !inScope {
			continue
		}

		if err := provider.Down(ctx, subject, dryRun); err != nil {
			m.logger.Error("Provider down errored",
				zap.String("provider", provider.Name()),
				zap.Error(err))
		}
	}
}

// Fetch asks every provider to import externally discovered subjects. Each
// provider gets its own pre/fetch/post cycle; failures are logged and never
// block the remaining providers.
func (m *Manager[T]) Fetch(ctx context.Context) {
	for _, provider := range m.providers {
		if err := provider.Pre(ctx); err != nil {
			m.logger.Error("Provider preconditions failed, skipping its fetch",
				zap.String("provider", provider.Name()),
				zap.Error(err))
		} else if err := provider.Fetch(ctx); err != nil {
			m.logger.Error("Provider fetch errored",
				zap.String("provider", provider.Name()),
				zap.Error(err))
		}

		if err := provider.Post(ctx); err != nil {
			m.logger.Error("Provider post errored",
				zap.String("provider", provider.Name()),
				zap.Error(err))
		}
	}
}

// preAll runs every provider's Pre. It returns the providers that
// succeeded and whether the whole fan-out succeeded.
func (m *Manager[T]) preAll(ctx context.Context) ([]Provider[T], bool) {
	ready := make([]Provider[T], 0, len(m.providers))
	for _, provider := range m.providers {
		if err := provider.Pre(ctx); err != nil {
			m.logger.Error("Provider preconditions failed",
				zap.String("provider", provider.Name()),
				zap.Error(err))
			return ready, false
		}
		ready = append(ready, provider)
	}
	return ready, true
}

// postAll runs Post on the given providers, suppressing errors
func (m *Manager[T]) postAll(ctx context.Context, providers []Provider[T]) {
	for _, provider := range providers {
		if err := provider.Post(ctx); err != nil {
			m.logger.Error("Provider post errored",
				zap.String("provider", provider.Name()),
				zap.Error(err))
		}
	}
}
