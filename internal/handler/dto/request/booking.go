package request

import (
	"encoding/json"
	"mime/multipart"

	"inspection-marketplace/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	SlotID         uuid.UUID `json:"slot_id" binding:"required"`
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

func (r *CreateBookingRequest) ToInput(buyerID, idempotencyKey uuid.UUID) commands.CreateBookingInput {
	return commands.CreateBookingInput{
		BuyerID:        buyerID,
		IdempotencyKey: idempotencyKey,
		SlotID:         r.SlotID,
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

type CheckInRequest struct {
	MechanicAbsent bool `json:"mechanic_absent"`
}

type EnterCodeRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

type ValidateBookingRequest struct {
	Accepted    *bool  `json:"accepted" binding:"required"`
	Reason      string `json:"reason" binding:"omitempty,oneof=no_show wrong_info incomplete_inspection damage other"`
	Description string `json:"description" binding:"max=2000"`
}

func (r *ValidateBookingRequest) ToInput() commands.ValidationInput {
	return commands.ValidationInput{Accepted: *r.Accepted, Reason: r.Reason, Description: r.Description}
}

// CheckOutForm is the multipart body of a check-out. Checklist and notes are JSON objects
// keyed by component name.
type CheckOutForm struct {
	Photos       []*multipart.FileHeader `form:"photos" binding:"required"`
	Checklist    string                  `form:"checklist" binding:"required"`
	Notes        string                  `form:"notes"`
	OdometerKm   *int                    `form:"odometer_km" binding:"required,min=0"`
	PlateReading string                  `form:"plate_reading" binding:"required,max=20"`
	GPSLat       *float64                `form:"gps_lat" binding:"omitempty,min=-90,max=90"`
	GPSLng       *float64                `form:"gps_lng" binding:"omitempty,min=-180,max=180"`
}

// ToInput decodes the JSON fields; photo bytes are attached by the handler.
func (f *CheckOutForm) ToInput() (commands.CheckOutInput, error) {
	in := commands.CheckOutInput{
		OdometerKm:   *f.OdometerKm,
		PlateReading: f.PlateReading,
		GPSLat:       f.GPSLat,
		GPSLng:       f.GPSLng,
	}
	if err := json.Unmarshal([]byte(f.Checklist), &in.Conditions); err != nil {
		return commands.CheckOutInput{}, err
	}
	if f.Notes != "" {
		if err := json.Unmarshal([]byte(f.Notes), &in.Notes); err != nil {
			return commands.CheckOutInput{}, err
		}
	}
	return in, nil
}
