package booking

import (
	"strings"

	"inspection-marketplace/internal/pkg/geo"
)

const minVehicleYear = 1900

type Vehicle struct {
	Type  VehicleType
	Brand string
	Model string
	Year  int
	Plate string
}

func NewVehicle(vehicleType, brand, model string, year int, plate string, currentYear int) (Vehicle, error) {
	v := Vehicle{
		Type:  VehicleType(vehicleType),
		Brand: strings.TrimSpace(brand),
		Model: strings.TrimSpace(model),
		Year:  year,
		Plate: strings.ToUpper(strings.TrimSpace(plate)),
	}
	if !v.Type.IsValid() || v.Brand == "" || v.Model == "" {
		return Vehicle{}, ErrInvalidVehicle
	}
	if year < minVehicleYear || year > currentYear+1 {
		return Vehicle{}, ErrInvalidVehicle
	}
	return v, nil
}

type Location struct {
	Lat     float64
	Lng     float64
	Address string
}

func NewLocation(lat, lng float64, address string) (Location, error) {
	l := Location{Lat: lat, Lng: lng, Address: strings.TrimSpace(address)}
	if !l.Point().Valid() || l.Address == "" {
		return Location{}, ErrInvalidLocation
	}
	return l, nil
}

func (l Location) Point() geo.Point {
	return geo.Point{Lat: l.Lat, Lng: l.Lng}
}
