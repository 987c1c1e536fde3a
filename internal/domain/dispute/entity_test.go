//go:build unit

package dispute_test

import (
	"testing"
	"time"

	"inspection-marketplace/internal/domain/dispute"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name        string
		reason      dispute.Reason
		description string
		errIs       error
	}{
		{name: "no show without description", reason: dispute.ReasonNoShow},
		{name: "wrong info with description", reason: dispute.ReasonWrongInfo, description: "mileage does not match"},
		{name: "wrong info without description", reason: dispute.ReasonWrongInfo, description: "  ", errIs: dispute.ErrDescriptionMissing},
		{name: "unknown reason", reason: "bored", description: "x", errIs: dispute.ErrInvalidReason},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d, err := dispute.Open(uuid.New(), uuid.New(), c.reason, c.description, now)
			if c.errIs != nil {
				require.ErrorIs(t, err, c.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, dispute.StatusOpen, d.Status())
		})
	}
}

func TestResolve(t *testing.T) {
	now := time.Now()
	admin := uuid.New()

	d, err := dispute.Open(uuid.New(), uuid.New(), dispute.ReasonDamage, "scratched door", now)
	require.NoError(t, err)

	require.ErrorIs(t, d.Resolve("nobody", admin, "", now), dispute.ErrInvalidResolution)
	require.NoError(t, d.Resolve(dispute.ResolutionMechanic, admin, "photos show prior damage", now))
	assert.Equal(t, dispute.StatusResolvedMechanic, d.Status())
	assert.Equal(t, admin, *d.ResolvedBy())
	require.NotNil(t, d.ResolutionNote())

	require.ErrorIs(t, d.Resolve(dispute.ResolutionBuyer, admin, "", now), dispute.ErrAlreadyResolved)
}
