package saga

import (
	"context"
	"log/slog"

	"inspection-marketplace/internal/pkg/errs"
)

// Outcome says how far a saga got and whether the world is consistent afterwards.
type Outcome int

const (
	// Aborted: the external step failed, nothing to undo.
	Aborted Outcome = iota
	Applied
	Compensated
	// CompensationFailed leaves an external side effect with no local record. Alert on it.
	CompensationFailed
)

func (o Outcome) String() string {
	switch o {
	case Aborted:
		return "aborted"
	case Applied:
		return "applied"
	case Compensated:
		return "compensated"
	case CompensationFailed:
		return "compensation_failed"
	default:
		return "unknown"
	}
}

var ErrCompensationFailed = errs.New("compensation failed")

// Step is one external-then-local operation. Compensate receives the value External produced.
type Step[T any] struct {
	Name       string
	External   func(ctx context.Context) (T, error)
	Local      func(ctx context.Context, ext T) error
	Compensate func(ctx context.Context, ext T) error
}

// Run performs the external side effect first and the local write second. On a local
// failure the external effect is compensated; the returned error is always the local
// (or external) cause, marked with ErrCompensationFailed when compensation also failed.
func Run[T any](ctx context.Context, s Step[T]) (T, Outcome, error) {
	ext, err := s.External(ctx)
	if err != nil {
		return ext, Aborted, err
	}

	localErr := s.Local(ctx, ext)
	if localErr == nil {
		return ext, Applied, nil
	}

	// the caller's ctx may be the reason the local write failed
	compCtx := context.WithoutCancel(ctx)
	if compErr := s.Compensate(compCtx, ext); compErr != nil {
		slog.Error("saga compensation failed",
			slog.String("saga", s.Name),
			slog.String("local_error", localErr.Error()),
			slog.String("compensation_error", compErr.Error()))
		return ext, CompensationFailed, errs.Mark(localErr, ErrCompensationFailed)
	}

	slog.Warn("saga compensated",
		slog.String("saga", s.Name),
		slog.String("local_error", localErr.Error()))
	return ext, Compensated, localErr
}
