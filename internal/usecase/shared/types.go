package shared

import (
	"time"

	"github.com/google/uuid"
)

const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key             uuid.UUID
	UserID          uuid.UUID
	Endpoint        string
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}

type NotificationKind string

const (
	NotifyEmail NotificationKind = "email"
	NotifyPush  NotificationKind = "push"
	NotifyAdmin NotificationKind = "admin"
)

type NotificationTopic string

const (
	TopicBookingCreated        NotificationTopic = "booking_created"
	TopicBookingConfirmed      NotificationTopic = "booking_confirmed"
	TopicBookingCancelled      NotificationTopic = "booking_cancelled"
	TopicBookingReminder       NotificationTopic = "booking_reminder"
	TopicCheckInCode           NotificationTopic = "check_in_code"
	TopicInspectionReportReady NotificationTopic = "inspection_report_ready"
	TopicBookingDisputed       NotificationTopic = "booking_disputed"
	TopicDisputeResolved       NotificationTopic = "dispute_resolved"
	TopicPaymentReleased       NotificationTopic = "payment_released"
	TopicProposalReceived      NotificationTopic = "proposal_received"
	TopicProposalAccepted      NotificationTopic = "proposal_accepted"
	TopicProposalRefused       NotificationTopic = "proposal_refused"
	TopicProposalExpired       NotificationTopic = "proposal_expired"
	TopicRefundFailed          NotificationTopic = "refund_failed"
	TopicPaymentDispute        NotificationTopic = "payment_dispute"
	TopicCompensationFailed    NotificationTopic = "compensation_failed"
)

// NotificationJob is an outbox row; delivery happens out of process after dispatch.
type NotificationJob struct {
	ID        uuid.UUID
	Kind      NotificationKind
	Topic     NotificationTopic
	DedupeKey string
	Payload   []byte
	RunAt     time.Time
	Attempts  int
	CreatedAt time.Time
}
