package request

import (
	"time"

	"inspection-marketplace/internal/usecase/commands"

	"github.com/google/uuid"
)

type ProposeRequest struct {
	MechanicID     uuid.UUID `json:"mechanic_id" binding:"required"`
	ProposedAt     time.Time `json:"proposed_at" binding:"required"`
	VehicleType    string    `json:"vehicle_type" binding:"required,oneof=car motorcycle van camper"`
	VehicleBrand   string    `json:"vehicle_brand" binding:"required,max=60"`
	VehicleModel   string    `json:"vehicle_model" binding:"required,max=60"`
	VehicleYear    int       `json:"vehicle_year" binding:"required,min=1950"`
	VehiclePlate   string    `json:"vehicle_plate" binding:"required,max=20"`
	MeetingLat     float64   `json:"meeting_lat" binding:"min=-90,max=90"`
	MeetingLng     float64   `json:"meeting_lng" binding:"min=-180,max=180"`
	MeetingAddress string    `json:"meeting_address" binding:"required,max=255"`
	OBDRequested   bool      `json:"obd_requested"`
}

func (r *ProposeRequest) ToInput() commands.ProposeInput {
	return commands.ProposeInput{
		MechanicID:     r.MechanicID,
		ProposedAt:     r.ProposedAt,
		VehicleType:    r.VehicleType,
		VehicleBrand:   r.VehicleBrand,
		VehicleModel:   r.VehicleModel,
		VehicleYear:    r.VehicleYear,
		VehiclePlate:   r.VehiclePlate,
		MeetingLat:     r.MeetingLat,
		MeetingLng:     r.MeetingLng,
		MeetingAddress: r.MeetingAddress,
		OBDRequested:   r.OBDRequested,
	}
}

type CounterProposalRequest struct {
	ProposedAt time.Time `json:"proposed_at" binding:"required"`
}
