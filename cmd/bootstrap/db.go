package bootstrap

import (
	"context"

	"inspection-marketplace/internal/infra/db"
	"inspection-marketplace/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	if cfg.DB.AutoMigrate {
		if err := db.MigrateUp(cfg.DB.BuildDSN(), cfg.DB.MigrationsPath); err != nil {
			return nil, err
		}
	}

	pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}
