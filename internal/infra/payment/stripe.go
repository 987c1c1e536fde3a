package payment

import (
	"context"
	"net/http"
	"strings"

	"inspection-marketplace/internal/pkg/config"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/pkg/tracing"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.opentelemetry.io/otel/attribute"
)

// Gateway talks to Stripe. Authorizations are PaymentIntents with manual capture; mechanics
// receive funds through destination charges on their Express connected account.
type Gateway struct {
	api    *client.API
	cfg    config.PaymentConfig
	secret string
}

var _ shared.PaymentGateway = (*Gateway)(nil)

func NewGateway(cfg config.PaymentConfig) (*Gateway, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient:    httpClient,
		LeveledLogger: slogLogger{},
	})
	connect := stripe.GetBackendWithConfig(stripe.ConnectBackend, &stripe.BackendConfig{
		HTTPClient:    httpClient,
		LeveledLogger: slogLogger{},
	})
	return newGateway(cfg, &stripe.Backends{API: backend, Connect: connect, Uploads: backend})
}

func newGateway(cfg config.PaymentConfig, backends *stripe.Backends) (*Gateway, error) {
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, errs.New("stripe secret key is empty")
	}
	return &Gateway{
		api:    client.New(cfg.SecretKey, backends),
		cfg:    cfg,
		secret: cfg.WebhookSecret,
	}, nil
}

func (g *Gateway) CreateAuthorization(ctx context.Context, req shared.AuthorizationRequest) (_ shared.Authorization, err error) {
	ctx, span := tracing.Start(ctx, "payment.create_authorization",
		attribute.Int64("payment.amount_minor", req.AmountMinor))
	defer func() { tracing.End(span, err) }()

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.AmountMinor),
		Currency:           stripe.String(strings.ToLower(req.Currency)),
		CaptureMethod:      stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	if req.DestinationAccount != "" {
		params.TransferData = &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(req.DestinationAccount),
		}
		if req.ApplicationFeeMinor > 0 {
			params.ApplicationFeeAmount = stripe.Int64(req.ApplicationFeeMinor)
		}
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx
	if req.IdempotencyKey != "" {
		params.SetIdempotencyKey(req.IdempotencyKey)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return shared.Authorization{}, gatewayErr(err, "create payment intent")
	}
	return shared.Authorization{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       shared.AuthorizationStatus(pi.Status),
	}, nil
}

// CancelAuthorization reads the intent first and picks the operation from its status.
// A captured intent is refunded in full under a derived idempotency key.
func (g *Gateway) CancelAuthorization(ctx context.Context, id, idempotencyKey string) (_ shared.CancelOutcome, err error) {
	ctx, span := tracing.Start(ctx, "payment.cancel_authorization", attribute.String("payment.intent_id", id))
	defer func() { tracing.End(span, err) }()

	pi, err := g.intent(ctx, id)
	if err != nil {
		return "", err
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusCanceled:
		return shared.CancelNoop, nil
	case stripe.PaymentIntentStatusSucceeded:
		refundKey := ""
		if idempotencyKey != "" {
			refundKey = idempotencyKey + ":refund"
		}
		if err := g.Refund(ctx, id, nil, refundKey); err != nil {
			return "", err
		}
		return shared.CancelRefunded, nil
	case stripe.PaymentIntentStatusProcessing:
		return "", errs.Mark(errs.Newf("payment intent %s is processing", id), shared.ErrPaymentGateway)
	}

	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx
	if idempotencyKey != "" {
		params.SetIdempotencyKey(idempotencyKey)
	}
	if _, err := g.api.PaymentIntents.Cancel(id, params); err != nil {
		return "", gatewayErr(err, "cancel payment intent")
	}
	return shared.CancelVoided, nil
}

func (g *Gateway) CaptureAuthorization(ctx context.Context, id, idempotencyKey string) (err error) {
	ctx, span := tracing.Start(ctx, "payment.capture_authorization", attribute.String("payment.intent_id", id))
	defer func() { tracing.End(span, err) }()

	pi, err := g.intent(ctx, id)
	if err != nil {
		return err
	}
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return nil
	case stripe.PaymentIntentStatusRequiresCapture:
	default:
		return errs.Wrapf(shared.ErrNotCapturable, "payment intent %s is %s", id, pi.Status)
	}

	params := &stripe.PaymentIntentCaptureParams{}
	params.Context = ctx
	if idempotencyKey != "" {
		params.SetIdempotencyKey(idempotencyKey)
	}
	if _, err := g.api.PaymentIntents.Capture(id, params); err != nil {
		return gatewayErr(err, "capture payment intent")
	}
	return nil
}

// Refund refunds amountMinor, or the whole captured amount when nil.
func (g *Gateway) Refund(ctx context.Context, id string, amountMinor *int64, idempotencyKey string) (err error) {
	ctx, span := tracing.Start(ctx, "payment.refund", attribute.String("payment.intent_id", id))
	defer func() { tracing.End(span, err) }()

	params := &stripe.RefundParams{PaymentIntent: stripe.String(id)}
	if amountMinor != nil {
		params.Amount = stripe.Int64(*amountMinor)
	}
	params.Context = ctx
	if idempotencyKey != "" {
		params.SetIdempotencyKey(idempotencyKey)
	}
	if _, err := g.api.Refunds.New(params); err != nil {
		return gatewayErr(err, "create refund")
	}
	return nil
}

func (g *Gateway) CreateConnectedAccount(ctx context.Context, email string) (_ shared.ConnectedAccount, err error) {
	ctx, span := tracing.Start(ctx, "payment.create_connected_account")
	defer func() { tracing.End(span, err) }()

	params := &stripe.AccountParams{
		Type:    stripe.String(string(stripe.AccountTypeExpress)),
		Country: stripe.String(g.cfg.AccountCountry),
		Email:   stripe.String(email),
		Capabilities: &stripe.AccountCapabilitiesParams{
			CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{Requested: stripe.Bool(true)},
			Transfers:    &stripe.AccountCapabilitiesTransfersParams{Requested: stripe.Bool(true)},
		},
	}
	params.Context = ctx
	acct, err := g.api.Accounts.New(params)
	if err != nil {
		return shared.ConnectedAccount{}, gatewayErr(err, "create connected account")
	}

	linkParams := &stripe.AccountLinkParams{
		Account:    stripe.String(acct.ID),
		RefreshURL: stripe.String(g.cfg.OnboardingRefreshURL),
		ReturnURL:  stripe.String(g.cfg.OnboardingReturnURL),
		Type:       stripe.String("account_onboarding"),
	}
	linkParams.Context = ctx
	link, err := g.api.AccountLinks.New(linkParams)
	if err != nil {
		return shared.ConnectedAccount{}, gatewayErr(err, "create onboarding link")
	}
	return shared.ConnectedAccount{AccountID: acct.ID, OnboardingURL: link.URL}, nil
}

func (g *Gateway) CreateLoginLink(ctx context.Context, accountID string) (_ string, err error) {
	ctx, span := tracing.Start(ctx, "payment.create_login_link")
	defer func() { tracing.End(span, err) }()

	params := &stripe.LoginLinkParams{Account: stripe.String(accountID)}
	params.Context = ctx
	link, err := g.api.LoginLinks.New(params)
	if err != nil {
		return "", gatewayErr(err, "create login link")
	}
	return link.URL, nil
}

func (g *Gateway) intent(ctx context.Context, id string) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	pi, err := g.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, gatewayErr(err, "retrieve payment intent")
	}
	return pi, nil
}

// gatewayErr keeps the Stripe error code and request id, never the request body.
func gatewayErr(err error, op string) error {
	var se *stripe.Error
	if errs.As(err, &se) {
		err = errs.Newf("%s: stripe %s (%s, request %s)", op, se.Type, se.Code, se.RequestID)
	} else {
		err = errs.Wrap(err, op)
	}
	return errs.Mark(err, shared.ErrPaymentGateway)
}
