package bootstrap

import (
	"context"

	"inspection-marketplace/internal/pkg/config"
	"inspection-marketplace/internal/pkg/tracing"

	"go.uber.org/fx"
)

var TracingModule = fx.Module("tracing",
	fx.Invoke(
		InitTracing,
	),
)

// InitTracing installs the tracer provider and flushes pending spans on stop.
func InitTracing(lc fx.Lifecycle, cfg config.Config) error {
	shutdown, err := tracing.Init(context.Background(), cfg.Tracing)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return shutdown(ctx)
		},
	})
	return nil
}
