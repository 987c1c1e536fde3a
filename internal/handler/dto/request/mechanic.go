package request

import (
	"time"

	"inspection-marketplace/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

type CreateSlotRequest struct {
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required,gtfield=StartsAt"`
}

type UpsertProfileRequest struct {
	BaseLat         float64         `json:"base_lat" binding:"min=-90,max=90"`
	BaseLng         float64         `json:"base_lng" binding:"min=-180,max=180"`
	ServiceRadiusKm float64         `json:"service_radius_km" binding:"required,gt=0,max=500"`
	FreeZoneKm      decimal.Decimal `json:"free_zone_km"`
	VehicleTypes    []string        `json:"vehicle_types" binding:"required,min=1,dive,oneof=car motorcycle van camper"`
}

func (r *UpsertProfileRequest) ToInput() commands.ProfileInput {
	return commands.ProfileInput{
		BaseLat:         r.BaseLat,
		BaseLng:         r.BaseLng,
		ServiceRadiusKm: r.ServiceRadiusKm,
		FreeZoneKm:      r.FreeZoneKm,
		VehicleTypes:    r.VehicleTypes,
	}
}
