package travelagent

import (
	"context"
	"fmt"
	"strings"
)

// sagaStep pairs a forward action with the compensation that undoes it. The
// step owns external state once run succeeds; resource/reservation identify
// that state for reconciliation when the compensation itself fails.
type sagaStep struct {
	name        string
	resource    string
	reservation func() int64
	run         func(ctx context.Context) error
	compensate  func(ctx context.Context) error
}

// runSaga executes steps in order. When a step fails, the compensations of
// every completed step run in reverse order. The step error is returned as
// is when all compensations succeed; otherwise a CompensationError wraps it
// together with the rollback steps that could not be undone.
func runSaga(ctx context.Context, steps []sagaStep) error {
	for i, s := range steps {
		err := s.run(ctx)
		if err == nil {
			continue
		}

		stepErr := fmt.Errorf("%s: %w", s.name, err)
		failures := compensateAll(ctx, steps[:i])
		if len(failures) > 0 {
			return &CompensationError{Cause: stepErr, Failures: failures}
		}
		return stepErr
	}
	return nil
}

func compensateAll(ctx context.Context, completed []sagaStep) []CompensationFailure {
	var failures []CompensationFailure
	for i := len(completed) - 1; i >= 0; i-- {
		s := completed[i]
		if s.compensate == nil {
			continue
		}
		if err := s.compensate(ctx); err != nil {
			f := CompensationFailure{Resource: s.resource, Err: err}
			if s.reservation != nil {
				f.ReservationID = s.reservation()
			}
			failures = append(failures, f)
		}
	}
	return failures
}

// CompensationFailure names a single rollback step that did not go through,
// with enough detail for manual reconciliation.
type CompensationFailure struct {
	Resource      string
	ReservationID int64
	Err           error
}

// CompensationError reports that rollback itself failed: the original
// failure (when any) plus every resource left orphaned.
type CompensationError struct {
	Cause    error
	Failures []CompensationFailure
}

func (e *CompensationError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s id=%d: %v", f.Resource, f.ReservationID, f.Err))
	}
	msg := "compensation failed: " + strings.Join(parts, "; ")
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (after: %v)", msg, e.Cause)
	}
	return msg
}

func (e *CompensationError) Unwrap() error {
	return e.Cause
}
