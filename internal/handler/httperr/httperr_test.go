//go:build unit

package httperr_test

import (
	"net/http"
	"testing"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/mechanic"
	"inspection-marketplace/internal/handler/httperr"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/commands"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"sentinel", booking.ErrInvalidTransition, http.StatusConflict, booking.ErrInvalidTransition.Error()},
		{"wrapped keeps the sentinel text", errs.Wrapf(commands.ErrSlotAlreadyBooked, "slot %d", 3), http.StatusConflict, commands.ErrSlotAlreadyBooked.Error()},
		{"marked", errs.Mark(errs.New("stripe: card_declined"), commands.ErrPaymentUnavailable), http.StatusBadGateway, commands.ErrPaymentUnavailable.Error()},
		{"too many attempts", booking.ErrTooManyAttempts, http.StatusTooManyRequests, booking.ErrTooManyAttempts.Error()},
		{"not bookable", mechanic.ErrSuspended, http.StatusUnprocessableEntity, mechanic.ErrSuspended.Error()},
		{"payload too large", shared.ErrContentTooLarge, http.StatusRequestEntityTooLarge, shared.ErrContentTooLarge.Error()},
		{"unknown", errs.New("pq: deadlock detected"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := httperr.Status(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
