package payment

import (
	"fmt"
	"log/slog"
	"strings"

	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/spf13/cast"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

// placeholderSecrets are values shipped in sample env files. A server configured with one
// of them would accept forged events, so they are rejected in every environment.
var placeholderSecrets = map[string]struct{}{
	"changeme":          {},
	"placeholder":       {},
	"whsec_changeme":    {},
	"whsec_placeholder": {},
	"whsec_xxx":         {},
	"whsec_...":         {},
}

var eventKinds = map[stripe.EventType]shared.PaymentEventKind{
	"payment_intent.succeeded":                 shared.EventAuthorizationSucceeded,
	"payment_intent.amount_capturable_updated": shared.EventAuthorizationUpdated,
	"payment_intent.payment_failed":            shared.EventPaymentFailed,
	"payment_intent.canceled":                  shared.EventAuthorizationCanceled,
	"refund.created":                           shared.EventRefundCreated,
	"refund.updated":                           shared.EventRefundUpdated,
	"refund.failed":                            shared.EventRefundFailed,
	"account.updated":                          shared.EventAccountUpdated,
	"charge.dispute.created":                   shared.EventDisputeCreated,
	"charge.dispute.closed":                    shared.EventDisputeClosed,
	"charge.dispute.funds_withdrawn":           shared.EventDisputeFundsWithdrawn,
	"charge.dispute.funds_reinstated":          shared.EventDisputeFundsReinstated,
}

func usableSecret(secret string) bool {
	s := strings.ToLower(strings.TrimSpace(secret))
	if s == "" {
		return false
	}
	_, placeholder := placeholderSecrets[s]
	return !placeholder
}

func (g *Gateway) ParseWebhook(payload []byte, signatureHeader string) (shared.PaymentEvent, error) {
	if !usableSecret(g.secret) {
		return shared.PaymentEvent{}, shared.ErrWebhookMisconfig
	}
	evt, err := webhook.ConstructEventWithOptions(payload, signatureHeader, g.secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return shared.PaymentEvent{}, errs.Wrap(shared.ErrInvalidSignature, err.Error())
	}
	return mapEvent(evt), nil
}

// mapEvent reads only the identifiers downstream needs out of the event object.
func mapEvent(evt stripe.Event) shared.PaymentEvent {
	out := shared.PaymentEvent{ID: evt.ID, Type: string(evt.Type), Kind: shared.EventUnhandled}
	if kind, ok := eventKinds[evt.Type]; ok {
		out.Kind = kind
	}
	if evt.Data == nil || evt.Data.Object == nil {
		return out
	}
	obj := evt.Data.Object

	switch cast.ToString(obj["object"]) {
	case "payment_intent":
		out.PaymentIntentID = cast.ToString(obj["id"])
	case "refund", "dispute", "charge":
		out.PaymentIntentID = objectID(obj["payment_intent"])
	case "account":
		out.AccountID = cast.ToString(obj["id"])
		out.PayoutsEnabled = cast.ToBool(obj["payouts_enabled"])
	}
	if out.AccountID == "" && out.Kind == shared.EventAccountUpdated {
		out.AccountID = evt.Account
	}

	meta := cast.ToStringMapString(obj["metadata"])
	if raw, ok := meta["booking_id"]; ok {
		if id, err := uuid.Parse(raw); err == nil {
			out.BookingID = &id
		}
	}
	return out
}

// objectID accepts either an id string or an expanded object.
func objectID(v any) string {
	if m, ok := v.(map[string]any); ok {
		return cast.ToString(m["id"])
	}
	return cast.ToString(v)
}

// slogLogger routes stripe-go's client logging into slog.
type slogLogger struct{}

func (slogLogger) Debugf(format string, v ...any) { slog.Debug(fmt.Sprintf(format, v...)) }
func (slogLogger) Infof(format string, v ...any)  { slog.Debug(fmt.Sprintf(format, v...)) }
func (slogLogger) Warnf(format string, v ...any)  { slog.Warn(fmt.Sprintf(format, v...)) }
func (slogLogger) Errorf(format string, v ...any) { slog.Error(fmt.Sprintf(format, v...)) }
