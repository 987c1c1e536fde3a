//go:build unit

package uow

import (
	"testing"
	"time"

	"inspection-marketplace/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, want: true},
		{name: "deadlock", err: &pgconn.PgError{Code: "40P01"}, want: true},
		{name: "wrapped deadlock", err: errs.Wrap(&pgconn.PgError{Code: "40P01"}, "save booking"), want: true},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: false},
		{name: "plain error", err: assert.AnError, want: false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, isRetryableError(c.err))
		})
	}
}

func TestCalculateBackoff_GrowsWithJitterBound(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := 0; attempt < 3; attempt++ {
		floor := time.Duration(1<<attempt) * base
		got := calculateBackoff(attempt, base)
		assert.GreaterOrEqual(t, got, floor)
		assert.Less(t, got, floor+floor/5+time.Millisecond)
	}
}

func TestShouldRetry_StopsAtMax(t *testing.T) {
	deadlock := &pgconn.PgError{Code: "40P01"}
	assert.True(t, shouldRetry(deadlock, 0, 3))
	assert.False(t, shouldRetry(deadlock, 3, 3))
}
