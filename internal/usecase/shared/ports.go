package shared

import (
	"context"
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/inspection"
	"inspection-marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrPaymentGateway     = errs.New("payment processor request failed")
	ErrNotCapturable      = errs.New("authorization is not in a capturable state")
	ErrInvalidSignature   = errs.New("invalid webhook signature")
	ErrWebhookMisconfig   = errs.New("webhook signing secret is not configured")
	ErrUnsupportedContent = errs.New("unsupported content type")
	ErrContentTooLarge    = errs.New("content too large")
	ErrStorage            = errs.New("object storage failure")
)

type AuthorizationRequest struct {
	AmountMinor         int64
	Currency            string
	DestinationAccount  string
	ApplicationFeeMinor int64
	Metadata            map[string]string
	IdempotencyKey      string
}

type Authorization struct {
	ID           string
	ClientSecret string
	Status       AuthorizationStatus
}

// AuthorizationStatus mirrors the processor's intent status.
type AuthorizationStatus string

const (
	AuthorizationRequiresPaymentMethod AuthorizationStatus = "requires_payment_method"
	AuthorizationRequiresConfirmation  AuthorizationStatus = "requires_confirmation"
	AuthorizationRequiresAction        AuthorizationStatus = "requires_action"
	AuthorizationRequiresCapture       AuthorizationStatus = "requires_capture"
	AuthorizationProcessing            AuthorizationStatus = "processing"
	AuthorizationSucceeded             AuthorizationStatus = "succeeded"
	AuthorizationCanceled              AuthorizationStatus = "canceled"
)

// IsLive reports whether a booking may still be written against the authorization.
func (s AuthorizationStatus) IsLive() bool {
	switch s {
	case AuthorizationRequiresPaymentMethod, AuthorizationRequiresConfirmation,
		AuthorizationRequiresAction, AuthorizationRequiresCapture:
		return true
	default:
		return false
	}
}

// CancelOutcome tells the caller which money movement the processor actually performed.
type CancelOutcome string

const (
	CancelVoided   CancelOutcome = "cancelled"
	CancelRefunded CancelOutcome = "refunded"
	CancelNoop     CancelOutcome = "noop"
)

type ConnectedAccount struct {
	AccountID     string
	OnboardingURL string
}

type PaymentEventKind string

const (
	EventAuthorizationSucceeded PaymentEventKind = "authorization.succeeded"
	EventAuthorizationUpdated   PaymentEventKind = "authorization.amount_capturable_updated"
	EventPaymentFailed          PaymentEventKind = "payment.failed"
	EventAuthorizationCanceled  PaymentEventKind = "authorization.canceled"
	EventRefundCreated          PaymentEventKind = "refund.created"
	EventRefundUpdated          PaymentEventKind = "refund.updated"
	EventRefundFailed           PaymentEventKind = "refund.failed"
	EventAccountUpdated         PaymentEventKind = "connected_account.updated"
	EventDisputeCreated         PaymentEventKind = "dispute.created"
	EventDisputeClosed          PaymentEventKind = "dispute.closed"
	EventDisputeFundsWithdrawn  PaymentEventKind = "dispute.funds_withdrawn"
	EventDisputeFundsReinstated PaymentEventKind = "dispute.funds_reinstated"
	EventUnhandled              PaymentEventKind = "unhandled"
)

// PaymentEvent carries only the derived fields needed downstream, never the raw payload.
type PaymentEvent struct {
	ID              string
	Type            string
	Kind            PaymentEventKind
	PaymentIntentID string
	BookingID       *uuid.UUID
	AccountID       string
	PayoutsEnabled  bool
}

type PaymentGateway interface {
	CreateAuthorization(ctx context.Context, req AuthorizationRequest) (Authorization, error)
	// CancelAuthorization voids an uncaptured authorization or refunds a captured one.
	CancelAuthorization(ctx context.Context, id, idempotencyKey string) (CancelOutcome, error)
	// CaptureAuthorization is a no-op when already captured.
	CaptureAuthorization(ctx context.Context, id, idempotencyKey string) error
	Refund(ctx context.Context, id string, amountMinor *int64, idempotencyKey string) error
	CreateConnectedAccount(ctx context.Context, email string) (ConnectedAccount, error)
	CreateLoginLink(ctx context.Context, accountID string) (string, error)
	ParseWebhook(payload []byte, signatureHeader string) (PaymentEvent, error)
}

type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

type Scheduler interface {
	// ScheduleOnce ignores a second registration with a dedupe key that is still pending.
	ScheduleOnce(delay time.Duration, job Job, dedupeKey string) error
	ScheduleRecurring(interval time.Duration, job Job) error
}

type ObjectStorage interface {
	Upload(ctx context.Context, data []byte, declaredContentType string) (string, error)
}

type ReportRenderer interface {
	Render(b *booking.Booking, proof *inspection.Proof) ([]byte, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
}
