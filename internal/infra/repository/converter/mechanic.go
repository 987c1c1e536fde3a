package converter

import (
	"inspection-marketplace/internal/domain/booking"
	"inspection-marketplace/internal/domain/mechanic"
	sqlc "inspection-marketplace/internal/infra/sqlc/generated"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/pkg/geo"
	"inspection-marketplace/internal/pkg/pgconv"
)

func MechanicToUpsert(p *mechanic.Profile) sqlc.UpsertMechanicProfileParams {
	types := make([]string, 0, len(p.AcceptedVehicleTypes()))
	for _, t := range p.AcceptedVehicleTypes() {
		types = append(types, string(t))
	}
	return sqlc.UpsertMechanicProfileParams{
		UserID:               p.UserID(),
		AcceptedVehicleTypes: types,
		ServiceRadiusKm:      p.ServiceRadiusKm(),
		FreeZoneKm:           pgconv.DecimalToNumeric(p.FreeZoneKm()),
		BaseLat:              p.Base().Lat,
		BaseLng:              p.Base().Lng,
		UpdatedAt:            pgconv.TimeToPgtype(p.UpdatedAt()),
	}
}

func MechanicToUpdate(p *mechanic.Profile) sqlc.UpdateMechanicProfileParams {
	return sqlc.UpdateMechanicProfileParams{
		UserID:           p.UserID(),
		IdentityVerified: p.IdentityVerified(),
		PayoutAccountID:  pgconv.StringPtrToPgtype(p.PayoutAccountID()),
		PayoutsEnabled:   p.PayoutsEnabled(),
		NoShowCount:      int32(p.NoShowCount()), // #nosec G115
		LastNoShowAt:     pgconv.TimePtrToPgtype(p.LastNoShowAt()),
		SuspendedUntil:   pgconv.TimePtrToPgtype(p.SuspendedUntil()),
		IsActive:         p.IsActive(),
		UpdatedAt:        pgconv.TimeToPgtype(p.UpdatedAt()),
	}
}

func MechanicFromRow(row sqlc.MechanicProfiles) (*mechanic.Profile, error) {
	freeZone, err := pgconv.DecimalFromNumeric(row.FreeZoneKm)
	if err != nil {
		return nil, errs.Wrap(err, "free_zone_km")
	}
	types := make([]booking.VehicleType, 0, len(row.AcceptedVehicleTypes))
	for _, t := range row.AcceptedVehicleTypes {
		types = append(types, booking.VehicleType(t))
	}
	return mechanic.Reconstruct(mechanic.Snapshot{
		UserID:               row.UserID,
		IdentityVerified:     row.IdentityVerified,
		AcceptedVehicleTypes: types,
		ServiceRadiusKm:      row.ServiceRadiusKm,
		FreeZoneKm:           freeZone,
		Base:                 geo.Point{Lat: row.BaseLat, Lng: row.BaseLng},
		PayoutAccountID:      pgconv.StringPtrFromPgtype(row.PayoutAccountID),
		PayoutsEnabled:       row.PayoutsEnabled,
		NoShowCount:          int(row.NoShowCount),
		LastNoShowAt:         pgconv.TimePtrFromPgtype(row.LastNoShowAt),
		SuspendedUntil:       pgconv.TimePtrFromPgtype(row.SuspendedUntil),
		IsActive:             row.IsActive,
		CreatedAt:            row.CreatedAt.Time,
		UpdatedAt:            row.UpdatedAt.Time,
	}), nil
}
