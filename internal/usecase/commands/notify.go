package commands

import (
	"context"
	"encoding/json"
	"time"

	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
)

// Notification is written to the outbox inside the caller's transaction, so it is
// queued if and only if the state change commits.
type Notification struct {
	Kind      shared.NotificationKind
	Topic     shared.NotificationTopic
	Recipient uuid.UUID
	Subject   uuid.UUID
	Data      map[string]string
	RunAt     time.Time
	// DedupeSuffix distinguishes repeatable events on the same subject (reissued codes, reminders).
	DedupeSuffix string
}

type notificationPayload struct {
	Topic     shared.NotificationTopic `json:"topic"`
	Recipient uuid.UUID                `json:"recipient_id,omitempty"`
	Subject   uuid.UUID                `json:"subject_id"`
	Data      map[string]string        `json:"data,omitempty"`
}

func DedupeKey(n Notification) string {
	key := string(n.Topic) + ":" + n.Subject.String() + ":" + n.Recipient.String()
	if n.DedupeSuffix != "" {
		key += ":" + n.DedupeSuffix
	}
	return key
}

// Enqueue is exported for the reminder job, which notifies outside any command.
func Enqueue(ctx context.Context, tx shared.Tx, n Notification, now time.Time) error {
	payload, err := json.Marshal(notificationPayload{
		Topic:     n.Topic,
		Recipient: n.Recipient,
		Subject:   n.Subject,
		Data:      n.Data,
	})
	if err != nil {
		return errs.Wrap(err, "failed to encode notification payload")
	}
	runAt := n.RunAt
	if runAt.IsZero() {
		runAt = now
	}
	kind := n.Kind
	if kind == "" {
		kind = shared.NotifyEmail
	}

	// a duplicate dedupe key means the notification is already queued
	_, err = tx.Notifications().Enqueue(ctx, shared.NotificationJob{
		ID:        uuid.New(),
		Kind:      kind,
		Topic:     n.Topic,
		DedupeKey: DedupeKey(n),
		Payload:   payload,
		RunAt:     runAt,
		CreatedAt: now,
	})
	return err
}

func enqueueAll(ctx context.Context, tx shared.Tx, now time.Time, ns ...Notification) error {
	for _, n := range ns {
		if err := Enqueue(ctx, tx, n, now); err != nil {
			return err
		}
	}
	return nil
}

// adminAlert has no recipient; the dispatcher routes admin-kind jobs to the ops channel.
func adminAlert(topic shared.NotificationTopic, subject uuid.UUID, data map[string]string, suffix string) Notification {
	return Notification{
		Kind:         shared.NotifyAdmin,
		Topic:        topic,
		Subject:      subject,
		Data:         data,
		DedupeSuffix: suffix,
	}
}
