package sync

// Outcome classifies a subject after one reconciliation sweep
type Outcome int

const (
	// OutcomeSkipped means no provider was responsible for the subject
	OutcomeSkipped Outcome = iota
	// OutcomeFailed means at least one provider was responsible and none
	// vouched for the subject
	OutcomeFailed
	// OutcomePassed means at least one responsible provider vouched for
	// the subject
	OutcomePassed
)

// String returns the outcome label used in logs
func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	case OutcomePassed:
		return "passed"
	}
	return "unknown"
}

// RunResult partitions the target set of one run into three disjoint lists
type RunResult[T any] struct {
	Passed  []T
	Failed  []T
	Skipped []T
}

// NewRunResult creates an empty result
func NewRunResult[T any]() *RunResult[T] {
	return &RunResult[T]{
		Passed:  make([]T, 0),
		Failed:  make([]T, 0),
		Skipped: make([]T, 0),
	}
}

// Total returns the number of classified subjects
func (r *RunResult[T]) Total() int {
	return len(r.Passed) + len(r.Failed) + len(r.Skipped)
}

// add records a subject under its outcome
func (r *RunResult[T]) add(subject T, outcome Outcome) {
	switch outcome {
	case OutcomePassed:
		r.Passed = append(r.Passed, subject)
	case OutcomeFailed:
		r.Failed = append(r.Failed, subject)
	case OutcomeSkipped:
		r.Skipped = append(r.Skipped, subject)
	}
}
