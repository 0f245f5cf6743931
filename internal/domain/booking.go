package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
)

// Booking is one reservation of one slot for one interval. Bookings are
// never deleted; completed is a terminal state. SlotID is a weak reference:
// the slot row may be regenerated by a resize while the booking survives.
type Booking struct {
	ID           int           `json:"id"`
	Code         string        `json:"code"`
	AreaID       int           `json:"area_id"`
	SlotID       int           `json:"slot_id"`
	VehicleType  VehicleType   `json:"vehicle_type"`
	VehiclePlate string        `json:"vehicle_plate"`
	UserPhone    string        `json:"user_phone"`
	EntryTime    time.Time     `json:"entry_time"`
	ExitTime     null.Time     `json:"exit_time"`
	Amount       null.Float    `json:"amount"`
	Status       BookingStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// UserBooking is a booking enriched for display with the area name and slot
// number. SlotNumber is null when the slot was destroyed by a later resize.
type UserBooking struct {
	Booking
	AreaName   string   `json:"area_name"`
	SlotNumber null.Int `json:"slot_number"`
}

type ReserveSlotDTO struct {
	AreaID       int    `json:"area_id" binding:"required"`
	SlotID       int    `json:"slot_id" binding:"required"`
	VehicleType  string `json:"vehicle_type" binding:"required"`
	VehiclePlate string `json:"vehicle_plate" binding:"required"`
	EntryTime    string `json:"entry_time"`
}

type CompleteBookingDTO struct {
	SlotID   int      `json:"slot_id" binding:"required"`
	ExitTime string   `json:"exit_time"`
	Amount   *float64 `json:"amount"`
}

// ReserveResult is returned to the caller after a successful reservation.
type ReserveResult struct {
	BookingID   int         `json:"booking_id"`
	BookingCode string      `json:"booking_code"`
	SlotNumber  int         `json:"slot_number"`
	VehicleType VehicleType `json:"vehicle_type"`
}
