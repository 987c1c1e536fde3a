package components

import (
	"context"
	"log/slog"
	"time"

	"inspection-marketplace/internal/infra/messaging"
	"inspection-marketplace/internal/infra/payment"
	"inspection-marketplace/internal/infra/report"
	"inspection-marketplace/internal/infra/scheduler"
	"inspection-marketplace/internal/infra/storage"
	"inspection-marketplace/internal/pkg/config"
	"inspection-marketplace/internal/usecase/shared"

	"go.uber.org/fx"
)

// InfraModule provides the adapters behind the use-case ports.
var InfraModule = fx.Module("infra",
	fx.Provide(
		fx.Annotate(
			NewPaymentGateway,
			fx.As(new(shared.PaymentGateway)),
		),
		fx.Annotate(
			NewScheduler,
			fx.As(new(shared.Scheduler)),
		),
		fx.Annotate(
			NewPublisher,
			fx.As(new(shared.EventPublisher)),
		),
		fx.Annotate(
			NewObjectStorage,
			fx.As(new(shared.ObjectStorage)),
		),
		fx.Annotate(
			NewReportRenderer,
			fx.As(new(shared.ReportRenderer)),
		),
	),
)

func NewPaymentGateway(cfg config.Config) (*payment.Gateway, error) {
	return payment.NewGateway(cfg.Payment)
}

// NewScheduler starts after every job is registered and drains running jobs on stop.
func NewScheduler(lc fx.Lifecycle) (*scheduler.Scheduler, error) {
	s, err := scheduler.New()
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			return s.Shutdown()
		},
	})
	return s, nil
}

func NewPublisher(lc fx.Lifecycle, cfg config.Config) *messaging.Publisher {
	p := messaging.NewPublisher(cfg.AMQP)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return p.Close()
		},
	})
	return p
}

func NewObjectStorage(cfg config.Config) (*storage.LocalStore, error) {
	return storage.NewLocalStore(cfg.Storage)
}

// NewReportRenderer prints report timestamps in the log time zone.
func NewReportRenderer(cfg config.Config) *report.PDFRenderer {
	loc, err := time.LoadLocation(cfg.Log.TimeZone)
	if err != nil {
		slog.Warn("unknown time zone for reports, using UTC", "tz", cfg.Log.TimeZone)
		loc = time.UTC
	}
	return report.NewPDFRenderer(cfg.Pricing.Currency, loc)
}
