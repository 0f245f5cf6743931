package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type VehicleType string

const (
	VehicleTypeCar  VehicleType = "car"
	VehicleTypeBike VehicleType = "bike"
)

// ParseVehicleType validates a caller-supplied vehicle type string.
func ParseVehicleType(s string) (VehicleType, bool) {
	switch VehicleType(s) {
	case VehicleTypeCar:
		return VehicleTypeCar, true
	case VehicleTypeBike:
		return VehicleTypeBike, true
	}
	return "", false
}

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
)

// Slot is one parking space. SlotNumber is 1-based and unique within
// (area, vehicle type). BookingID is a weak back-reference to the active
// booking occupying the slot; a destructive resize may orphan it.
type Slot struct {
	ID          int         `json:"id"`
	AreaID      int         `json:"area_id"`
	VehicleType VehicleType `json:"vehicle_type"`
	SlotNumber  int         `json:"slot_number"`
	Status      SlotStatus  `json:"status"`
	BookingID   null.Int    `json:"booking_id"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// SlotView is the ListSlots row: IsBooked is derived from the active-booking
// set, not from the slot's own status column, so the view self-heals if the
// two ever disagree.
type SlotView struct {
	Slot
	IsBooked bool `json:"is_booked"`
}

type SlotStatusEvent struct {
	Type        string      `json:"type"`
	AreaID      int         `json:"area_id"`
	SlotID      int         `json:"slot_id"`
	SlotNumber  int         `json:"slot_number"`
	VehicleType VehicleType `json:"vehicle_type"`
	Status      SlotStatus  `json:"status"`
}
