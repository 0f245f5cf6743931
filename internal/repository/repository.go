package repository

import (
	"context"
	"errors"
	"time"

	"parking_booking/internal/domain"
)

var ErrNotFound = errors.New("record not found")
var ErrDuplicateEntry = errors.New("record already exists")

// ErrSlotUnavailable is returned when the conditional reserve update matches
// no row: the slot does not exist, belongs to another area or vehicle type,
// or was already booked by a concurrent caller.
var ErrSlotUnavailable = errors.New("slot is not available")

// ErrNoActiveBooking is returned when a completion targets a slot with no
// active booking.
var ErrNoActiveBooking = errors.New("no active booking for this slot")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
}

type ParkingAreaRepository interface {
	FindByID(ctx context.Context, id int) (*domain.ParkingArea, error)
	FindByName(ctx context.Context, name string) (*domain.ParkingArea, error)
	FindAll(ctx context.Context) ([]domain.ParkingArea, error)
}

type SlotRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Slot, error)
	// ListByArea cross-references slots against active bookings; the
	// IsBooked flag comes from the booking side, not the slot status.
	ListByArea(ctx context.Context, areaID int, vehicleType *domain.VehicleType) ([]domain.SlotView, error)
}

type BookingRepository interface {
	FindByID(ctx context.Context, id int) (*domain.Booking, error)
	FindByCode(ctx context.Context, code string) (*domain.Booking, error)
	FindActiveBySlotID(ctx context.Context, slotID int) (*domain.Booking, error)
	// ListByUserPhone returns bookings newest entry time first, enriched
	// with area name and slot number for display.
	ListByUserPhone(ctx context.Context, phone string) ([]domain.UserBooking, error)
}

// ReservationStore performs the multi-table mutations of the reservation
// engine. Every method runs as one transaction: either all of the slot,
// counter and booking writes land, or none do.
type ReservationStore interface {
	CreateArea(ctx context.Context, dto domain.ParkingAreaDTO) (*domain.ParkingArea, error)
	// ResizeArea destroys and regenerates the area's slot set and resets
	// the counters. Active bookings referencing the old slots are orphaned;
	// the caller is expected to invoke this without concurrent reservation
	// traffic against the area.
	ResizeArea(ctx context.Context, areaID int, dto domain.ParkingAreaDTO) (*domain.ParkingArea, error)
	UpdateAreaInfo(ctx context.Context, areaID int, dto domain.ParkingAreaDTO) (*domain.ParkingArea, error)
	Reserve(ctx context.Context, areaID, slotID int, vehicleType domain.VehicleType, plate, phone string, entryTime time.Time) (*domain.Booking, int, error)
	Complete(ctx context.Context, slotID int, exitTime time.Time, amount *float64) (*domain.Booking, error)
}

// InventoryAuditRepository backs the reconciliation check: it reads the
// counters and the slot/booking-derived counts side by side without
// mutating anything.
type InventoryAuditRepository interface {
	Report(ctx context.Context) ([]domain.InventoryAuditRow, error)
}
