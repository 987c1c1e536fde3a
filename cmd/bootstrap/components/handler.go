package components

import (
	"inspection-marketplace/internal/handler"
	"inspection-marketplace/internal/handler/api"
	"inspection-marketplace/internal/handler/middleware"
	"inspection-marketplace/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
		func(cfg config.Config) config.StorageConfig { return cfg.Storage },

		middleware.NewAuthMiddleware,
		api.NewAuthHandler,
		api.NewMechanicHandler,
		api.NewBookingHandler,
		api.NewProposalHandler,
		api.NewAdminHandler,
		api.NewWebhookHandler,
	),
	fx.Invoke(handler.NewRouter),
)
