package components

import (
	"inspection-marketplace/internal/infra/readstore"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/infra/uow"
	"inspection-marketplace/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// PersistenceModule provides the unit of work for the write side and one read store per
// query use case. Repositories are built per transaction inside the unit of work.
var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	uowModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			newUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			newSlotReadStore,
			fx.As(new(queries.SlotReadStore)),
		),
		fx.Annotate(
			newBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			newProposalReadStore,
			fx.As(new(queries.ProposalReadStore)),
		),
		fx.Annotate(
			newDisputeReadStore,
			fx.As(new(queries.DisputeReadStore)),
		),
	),
)

var uowModule = fx.Module("persistence/uow",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}

func newUserReadStore(q *sqlc.Queries, db sqlc.DBTX) *readstore.UserReadStore {
	return readstore.NewUserReadStore(q, db)
}

func newSlotReadStore(q *sqlc.Queries, db sqlc.DBTX) *readstore.SlotReadStore {
	return readstore.NewSlotReadStore(q, db)
}

func newBookingReadStore(q *sqlc.Queries, db sqlc.DBTX) *readstore.BookingReadStore {
	return readstore.NewBookingReadStore(q, db)
}

func newProposalReadStore(q *sqlc.Queries, db sqlc.DBTX) *readstore.ProposalReadStore {
	return readstore.NewProposalReadStore(q, db)
}

func newDisputeReadStore(q *sqlc.Queries, db sqlc.DBTX) *readstore.DisputeReadStore {
	return readstore.NewDisputeReadStore(q, db)
}
