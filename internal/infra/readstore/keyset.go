package readstore

import (
	"inspection-marketplace/internal/pkg/pgconv"
	"inspection-marketplace/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgtype"
)

// keyset renders a nil page as NULL params, which the list queries read as "first page".
func keyset(page *queries.Page) (pgtype.Timestamptz, pgtype.UUID) {
	if page == nil {
		return pgtype.Timestamptz{}, pgtype.UUID{}
	}
	return pgconv.TimeToPgtype(page.AfterCreatedAt), pgconv.UUIDToPgtype(page.AfterID)
}
