//go:build unit

package saga_test

import (
	"context"
	"testing"

	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/saga"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	errExternal := errs.New("processor down")
	errLocal := errs.New("insert failed")
	errComp := errs.New("cancel failed")

	tests := []struct {
		name          string
		externalErr   error
		localErr      error
		compErr       error
		wantOutcome   saga.Outcome
		errIs         error
		wantCompCalls int
	}{
		{name: "applied", wantOutcome: saga.Applied},
		{name: "external failure aborts without compensation", externalErr: errExternal, wantOutcome: saga.Aborted, errIs: errExternal},
		{name: "local failure compensates", localErr: errLocal, wantOutcome: saga.Compensated, errIs: errLocal, wantCompCalls: 1},
		{name: "compensation failure is reported", localErr: errLocal, compErr: errComp, wantOutcome: saga.CompensationFailed, errIs: saga.ErrCompensationFailed, wantCompCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var compensated []string
			localCalls := 0

			ext, outcome, err := saga.Run(context.Background(), saga.Step[string]{
				Name: "test",
				External: func(context.Context) (string, error) {
					if tt.externalErr != nil {
						return "", tt.externalErr
					}
					return "pi_123", nil
				},
				Local: func(_ context.Context, ext string) error {
					localCalls++
					assert.Equal(t, "pi_123", ext)
					return tt.localErr
				},
				Compensate: func(_ context.Context, ext string) error {
					compensated = append(compensated, ext)
					return tt.compErr
				},
			})

			assert.Equal(t, tt.wantOutcome, outcome)
			assert.Len(t, compensated, tt.wantCompCalls)
			if tt.errIs != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tt.errIs))
			} else {
				require.NoError(t, err)
				assert.Equal(t, "pi_123", ext)
			}
			if tt.externalErr != nil {
				assert.Zero(t, localCalls)
			}
		})
	}
}

func TestRun_CompensatesWithLiveContextAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var compCtxErr error
	_, outcome, _ := saga.Run(ctx, saga.Step[int]{
		Name:     "cancelled",
		External: func(context.Context) (int, error) { return 1, nil },
		Local: func(ctx context.Context, _ int) error {
			cancel()
			return ctx.Err()
		},
		Compensate: func(ctx context.Context, _ int) error {
			compCtxErr = ctx.Err()
			return nil
		},
	})

	assert.Equal(t, saga.Compensated, outcome)
	assert.NoError(t, compCtxErr)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "applied", saga.Applied.String())
	assert.Equal(t, "compensation_failed", saga.CompensationFailed.String())
	assert.Equal(t, "unknown", saga.Outcome(42).String())
}
