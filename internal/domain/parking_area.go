package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

// ParkingArea carries the per-vehicle-type counter triples alongside the
// slot set. Invariant for each type: Available + Booked == Total.
type ParkingArea struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Address   string     `json:"address,omitempty"`
	Latitude  null.Float `json:"latitude"`
	Longitude null.Float `json:"longitude"`

	TotalCar      int `json:"total_car"`
	AvailableCar  int `json:"available_car"`
	BookedCar     int `json:"booked_car"`
	TotalBike     int `json:"total_bike"`
	AvailableBike int `json:"available_bike"`
	BookedBike    int `json:"booked_bike"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Total returns the configured capacity for the given vehicle type.
func (a *ParkingArea) Total(vt VehicleType) int {
	if vt == VehicleTypeBike {
		return a.TotalBike
	}
	return a.TotalCar
}

type ParkingAreaDTO struct {
	Name      string   `json:"name" binding:"required"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	TotalCar  int      `json:"total_car" binding:"min=0"`
	TotalBike int      `json:"total_bike" binding:"min=0"`
}
