package bootstrap

import (
	"inspection-marketplace/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	TracingModule,
	DBModule,
	JWTModule,
	components.PersistenceModule,
	components.InfraModule,
	components.UseCaseModule,
	components.JobsModule,
	components.HandlerModule,
)
