package commands

import (
	"inspection-marketplace/internal/infra"
	"inspection-marketplace/internal/pkg/errs"
)

var (
	ErrForbidden             = errs.New("not allowed to act on this resource")
	ErrUserNotFound          = errs.New("user not found")
	ErrUserInactive          = errs.New("user inactive")
	ErrEmailNotVerified      = errs.New("email address is not verified")
	ErrEmailTaken            = errs.New("email already registered")
	ErrInvalidCredentials    = errs.New("invalid credentials")
	ErrTokenGeneration       = errs.New("token generation failed")
	ErrMechanicNotFound      = errs.New("mechanic not found")
	ErrSlotNotFound          = errs.New("slot not found")
	ErrSlotAlreadyBooked     = errs.New("slot already booked")
	ErrInsufficientNotice    = errs.New("slot starts too soon to be booked")
	ErrBookingNotFound       = errs.New("booking not found")
	ErrProposalNotFound      = errs.New("proposal not found")
	ErrDisputeNotFound       = errs.New("dispute not found")
	ErrRejectionIncomplete   = errs.New("a rejection needs a reason and a description")
	ErrPaymentUnavailable    = errs.New("payment provider unavailable, please try again")
	ErrStorageUnavailable    = errs.New("file storage unavailable, please try again")
	ErrIdempotencyInProgress = errs.New("a request with this idempotency key is still processing")
	ErrIdempotencyMismatch   = errs.New("idempotency key reused with a different request")
	ErrTooManyPhotos         = errs.New("too many photos")
	ErrPayoutAccountExists   = errs.New("payout account already created")
)

// notFound marks a repository NOT_FOUND with the caller's sentinel and passes anything else through.
func notFound(err, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, sentinel)
	}
	return err
}
