package httperr

import (
	"log/slog"
	"net/http"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/dispute"
	"inspection-marketplace/internal/domain/inspection"
	"inspection-marketplace/internal/domain/mechanic"
	"inspection-marketplace/internal/domain/proposal"
	"inspection-marketplace/internal/domain/slot"
	"inspection-marketplace/internal/domain/user"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/commands"
	"inspection-marketplace/internal/usecase/queries"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type rule struct {
	err    error
	status int
}

// rules is checked in order; the first sentinel the error carries decides the status and
// the sentinel's own text becomes the client message.
var rules = []rule{
	// validation
	{user.ErrInvalidEmail, http.StatusBadRequest},
	{user.ErrInvalidRole, http.StatusBadRequest},
	{user.ErrPasswordTooWeak, http.StatusBadRequest},
	{booking.ErrInvalidVehicle, http.StatusBadRequest},
	{booking.ErrInvalidLocation, http.StatusBadRequest},
	{dispute.ErrInvalidReason, http.StatusBadRequest},
	{dispute.ErrDescriptionMissing, http.StatusBadRequest},
	{booking.ErrInvalidCode, http.StatusBadRequest},
	{dispute.ErrInvalidResolution, http.StatusBadRequest},
	{inspection.ErrNoPhotos, http.StatusBadRequest},
	{inspection.ErrInvalidOdometer, http.StatusBadRequest},
	{inspection.ErrPlateMissing, http.StatusBadRequest},
	{inspection.ErrEmptyChecklist, http.StatusBadRequest},
	{inspection.ErrUnknownComponent, http.StatusBadRequest},
	{inspection.ErrInvalidCondition, http.StatusBadRequest},
	{inspection.ErrPartialGPS, http.StatusBadRequest},
	{slot.ErrInvalidWindow, http.StatusBadRequest},
	{slot.ErrInPast, http.StatusBadRequest},
	{proposal.ErrInvalidDate, http.StatusBadRequest},
	{mechanic.ErrInvalidServiceArea, http.StatusBadRequest},
	{commands.ErrRejectionIncomplete, http.StatusBadRequest},
	{commands.ErrTooManyPhotos, http.StatusBadRequest},
	{commands.ErrInsufficientNotice, http.StatusBadRequest},
	{queries.ErrInvalidCursor, http.StatusBadRequest},
	{queries.ErrInvalidRange, http.StatusBadRequest},
	{shared.ErrUnsupportedContent, http.StatusBadRequest},
	{shared.ErrInvalidSignature, http.StatusBadRequest},
	{shared.ErrContentTooLarge, http.StatusRequestEntityTooLarge},

	// authentication / authorization
	{commands.ErrInvalidCredentials, http.StatusUnauthorized},
	{commands.ErrForbidden, http.StatusForbidden},
	{commands.ErrEmailNotVerified, http.StatusForbidden},
	{commands.ErrUserInactive, http.StatusForbidden},
	{queries.ErrBookingAccess, http.StatusForbidden},
	{proposal.ErrNotAuthor, http.StatusForbidden},

	// not found
	{commands.ErrUserNotFound, http.StatusNotFound},
	{commands.ErrMechanicNotFound, http.StatusNotFound},
	{commands.ErrSlotNotFound, http.StatusNotFound},
	{commands.ErrBookingNotFound, http.StatusNotFound},
	{commands.ErrProposalNotFound, http.StatusNotFound},
	{commands.ErrDisputeNotFound, http.StatusNotFound},
	{queries.ErrBookingNotFound, http.StatusNotFound},
	{queries.ErrUserNotFound, http.StatusNotFound},

	// conflicts
	{booking.ErrInvalidTransition, http.StatusConflict},
	{booking.ErrOutsideCheckIn, http.StatusConflict},
	{booking.ErrNoShowTooEarly, http.StatusConflict},
	{booking.ErrCodeNotIssued, http.StatusConflict},
	{booking.ErrCodeExpired, http.StatusConflict},
	{booking.ErrTooManyAttempts, http.StatusTooManyRequests},
	{commands.ErrSlotAlreadyBooked, http.StatusConflict},
	{slot.ErrAlreadyBooked, http.StatusConflict},
	{slot.ErrOverlap, http.StatusConflict},
	{dispute.ErrAlreadyResolved, http.StatusConflict},
	{proposal.ErrNotPending, http.StatusConflict},
	{proposal.ErrExpired, http.StatusConflict},
	{proposal.ErrNotYourTurn, http.StatusConflict},
	{proposal.ErrMaxRounds, http.StatusConflict},
	{proposal.ErrPendingExists, http.StatusConflict},
	{commands.ErrEmailTaken, http.StatusConflict},
	{commands.ErrIdempotencyInProgress, http.StatusConflict},
	{commands.ErrIdempotencyMismatch, http.StatusUnprocessableEntity},
	{commands.ErrPayoutAccountExists, http.StatusConflict},

	// mechanic not bookable
	{mechanic.ErrInactive, http.StatusUnprocessableEntity},
	{mechanic.ErrSuspended, http.StatusUnprocessableEntity},
	{mechanic.ErrIdentityNotVerified, http.StatusUnprocessableEntity},
	{mechanic.ErrNoPayoutAccount, http.StatusUnprocessableEntity},
	{mechanic.ErrVehicleTypeNotAccepted, http.StatusUnprocessableEntity},
	{mechanic.ErrOutOfServiceArea, http.StatusUnprocessableEntity},

	// external dependencies
	{commands.ErrPaymentUnavailable, http.StatusBadGateway},
	{commands.ErrStorageUnavailable, http.StatusBadGateway},
}

// Status maps an error to its HTTP status and client-facing message.
func Status(err error) (int, string) {
	for _, r := range rules {
		if errs.Is(err, r.err) {
			return r.status, r.err.Error()
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

// Respond aborts with the status the error maps to. Server errors are logged with the
// top of their stack.
func Respond(c *gin.Context, err error) {
	status, msg := Status(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
			slog.Any("stack", errs.ExtractStackLines(err, 12)))
	}
	AbortWithError(c, status, err, msg, nil)
}
