package converter

import (
	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/proposal"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/pgconv"
)

func ProposalToInsert(p *proposal.Proposal) sqlc.InsertProposalParams {
	s := p.Snapshot()
	return sqlc.InsertProposalParams{
		ID:             s.ID,
		BuyerID:        s.BuyerID,
		MechanicID:     s.MechanicID,
		ParentID:       pgconv.UUIDPtrToPgtype(s.ParentID),
		RoundNumber:    int32(s.RoundNumber), // #nosec G115 -- bounded by max rounds
		RespondedBy:    string(s.RespondedBy),
		Status:         string(s.Status),
		ProposedAt:     pgconv.TimeToPgtype(s.ProposedAt),
		VehicleType:    string(s.Payload.Vehicle.Type),
		VehicleBrand:   s.Payload.Vehicle.Brand,
		VehicleModel:   s.Payload.Vehicle.Model,
		VehicleYear:    int32(s.Payload.Vehicle.Year), // #nosec G115
		VehiclePlate:   s.Payload.Vehicle.Plate,
		MeetingLat:     s.Payload.Location.Lat,
		MeetingLng:     s.Payload.Location.Lng,
		MeetingAddress: s.Payload.Location.Address,
		ObdRequested:   s.Payload.OBDRequested,
		BookingID:      pgconv.UUIDPtrToPgtype(s.BookingID),
		ExpiresAt:      pgconv.TimeToPgtype(s.ExpiresAt),
		CreatedAt:      pgconv.TimeToPgtype(s.CreatedAt),
		UpdatedAt:      pgconv.TimeToPgtype(s.UpdatedAt),
	}
}

func ProposalToUpdate(p *proposal.Proposal) sqlc.UpdateProposalParams {
	return sqlc.UpdateProposalParams{
		ID:        p.ID(),
		Status:    string(p.Status()),
		BookingID: pgconv.UUIDPtrToPgtype(p.BookingID()),
		UpdatedAt: pgconv.TimeToPgtype(p.UpdatedAt()),
	}
}

func ProposalFromRow(row sqlc.DateProposals) *proposal.Proposal {
	return proposal.Reconstruct(proposal.Snapshot{
		ID:          row.ID,
		BuyerID:     row.BuyerID,
		MechanicID:  row.MechanicID,
		ParentID:    pgconv.UUIDPtrFromPgtype(row.ParentID),
		RoundNumber: int(row.RoundNumber),
		RespondedBy: proposal.Party(row.RespondedBy),
		Status:      proposal.Status(row.Status),
		ProposedAt:  row.ProposedAt.Time,
		Payload: proposal.Payload{
			Vehicle: booking.Vehicle{
				Type:  booking.VehicleType(row.VehicleType),
				Brand: row.VehicleBrand,
				Model: row.VehicleModel,
				Year:  int(row.VehicleYear),
				Plate: row.VehiclePlate,
			},
			Location: booking.Location{
				Lat:     row.MeetingLat,
				Lng:     row.MeetingLng,
				Address: row.MeetingAddress,
			},
			OBDRequested: row.ObdRequested,
		},
		BookingID: pgconv.UUIDPtrFromPgtype(row.BookingID),
		ExpiresAt: row.ExpiresAt.Time,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	})
}
