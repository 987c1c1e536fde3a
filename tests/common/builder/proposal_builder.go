//go:build unit || e2e

package builder

import (
	"time"

	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/proposal"
	reqdto "inspection-marketplace/internal/handler/dto/request"

	"github.com/google/uuid"
)

type ProposalBuilder struct {
	Snapshot proposal.Snapshot
}

func NewProposalBuilder() *ProposalBuilder {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &ProposalBuilder{Snapshot: proposal.Snapshot{
		ID:          uuid.New(),
		BuyerID:     uuid.New(),
		MechanicID:  uuid.New(),
		RoundNumber: 1,
		RespondedBy: proposal.PartyBuyer,
		Status:      proposal.StatusPending,
		ProposedAt:  now.Add(72 * time.Hour),
		Payload: proposal.Payload{
			Vehicle: booking.Vehicle{
				Type:  booking.VehicleCar,
				Brand: "Renault",
				Model: "Clio",
				Year:  2018,
				Plate: "CD-456-EF",
			},
			Location: booking.Location{Lat: Paris.Lat, Lng: Paris.Lng, Address: "Place de la Concorde, Paris"},
		},
		ExpiresAt: now.Add(48 * time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}}
}

func (p *ProposalBuilder) With(mutate func(*proposal.Snapshot)) *ProposalBuilder {
	mutate(&p.Snapshot)
	return p
}

func (p *ProposalBuilder) WithParties(buyerID, mechanicID uuid.UUID) *ProposalBuilder {
	p.Snapshot.BuyerID = buyerID
	p.Snapshot.MechanicID = mechanicID
	return p
}

// AwaitingBuyer makes the mechanic the author of the current round.
func (p *ProposalBuilder) AwaitingBuyer() *ProposalBuilder {
	p.Snapshot.RespondedBy = proposal.PartyMechanic
	return p
}

func (p *ProposalBuilder) BuildDomain() *proposal.Proposal {
	return proposal.Reconstruct(p.Snapshot)
}

func (p *ProposalBuilder) BuildProposeRequestDTO() reqdto.ProposeRequest {
	s := p.Snapshot
	return reqdto.ProposeRequest{
		MechanicID:     s.MechanicID,
		ProposedAt:     s.ProposedAt,
		VehicleType:    string(s.Payload.Vehicle.Type),
		VehicleBrand:   s.Payload.Vehicle.Brand,
		VehicleModel:   s.Payload.Vehicle.Model,
		VehicleYear:    s.Payload.Vehicle.Year,
		VehiclePlate:   s.Payload.Vehicle.Plate,
		MeetingLat:     s.Payload.Location.Lat,
		MeetingLng:     s.Payload.Location.Lng,
		MeetingAddress: s.Payload.Location.Address,
		OBDRequested:   s.Payload.OBDRequested,
	}
}
