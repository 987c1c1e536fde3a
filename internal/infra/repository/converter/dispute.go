package converter

import (
	"inspection-marketplace/internal/domain/dispute"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/pgconv"
)

func DisputeToInsert(c *dispute.Case) sqlc.InsertDisputeParams {
	return sqlc.InsertDisputeParams{
		ID:          c.ID(),
		BookingID:   c.BookingID(),
		OpenedBy:    c.OpenedBy(),
		Reason:      string(c.Reason()),
		Description: c.Description(),
		Status:      string(c.Status()),
		CreatedAt:   pgconv.TimeToPgtype(c.CreatedAt()),
	}
}

func DisputeToUpdate(c *dispute.Case) sqlc.UpdateDisputeParams {
	return sqlc.UpdateDisputeParams{
		ID:             c.ID(),
		Status:         string(c.Status()),
		ResolutionNote: pgconv.StringPtrToPgtype(c.ResolutionNote()),
		ResolvedBy:     pgconv.UUIDPtrToPgtype(c.ResolvedBy()),
		ResolvedAt:     pgconv.TimePtrToPgtype(c.ResolvedAt()),
		UpdatedAt:      pgconv.TimeToPgtype(c.UpdatedAt()),
	}
}

func DisputeFromRow(row sqlc.DisputeCases) *dispute.Case {
	return dispute.Reconstruct(
		row.ID,
		row.BookingID,
		row.OpenedBy,
		dispute.Reason(row.Reason),
		row.Description,
		dispute.Status(row.Status),
		pgconv.StringPtrFromPgtype(row.ResolutionNote),
		pgconv.UUIDPtrFromPgtype(row.ResolvedBy),
		pgconv.TimePtrFromPgtype(row.ResolvedAt),
		row.CreatedAt.Time,
		row.UpdatedAt.Time,
	)
}
