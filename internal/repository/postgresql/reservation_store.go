package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parking_booking/internal/domain"
	"parking_booking/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgReservationStore performs the multi-table writes of the reservation
// engine. Each operation is a single transaction: the conditional slot
// update, the booking write and the counter delta either all commit or all
// roll back.
type pgReservationStore struct {
	db *sql.DB
}

func NewPgReservationStore(db *sql.DB) repository.ReservationStore {
	return &pgReservationStore{db: db}
}

func counterColumns(vt domain.VehicleType) (available, booked, total string) {
	if vt == domain.VehicleTypeBike {
		return "available_bike", "booked_bike", "total_bike"
	}
	return "available_car", "booked_car", "total_car"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *pgReservationStore) CreateArea(ctx context.Context, dto domain.ParkingAreaDTO) (*domain.ParkingArea, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ReservationStore.CreateArea (begin tx): %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO parking_areas
	           (name, address, latitude, longitude,
	            total_car, available_car, booked_car,
	            total_bike, available_bike, booked_bike,
	            created_at, updated_at)
	           VALUES ($1, $2, $3, $4, $5, $5, 0, $6, $6, 0, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	           RETURNING ` + areaColumns
	area, err := scanArea(tx.QueryRowContext(ctx, query,
		dto.Name, dto.Address, dto.Latitude, dto.Longitude, dto.TotalCar, dto.TotalBike,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: parking area '%s'", repository.ErrDuplicateEntry, dto.Name)
		}
		return nil, fmt.Errorf("ReservationStore.CreateArea: %w", err)
	}

	if err := generateSlots(ctx, tx, area.ID, dto.TotalCar, dto.TotalBike); err != nil {
		return nil, fmt.Errorf("ReservationStore.CreateArea: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ReservationStore.CreateArea (commit): %w", err)
	}
	return area, nil
}

// ResizeArea is destructive: the entire slot set is deleted and regenerated
// 1..N per vehicle type, and the counters are reset to all-available. Active
// bookings that referenced the old slots keep their ids but point at nothing;
// this is an administrative operation expected to run without concurrent
// reservation traffic on the area.
func (s *pgReservationStore) ResizeArea(ctx context.Context, areaID int, dto domain.ParkingAreaDTO) (*domain.ParkingArea, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ReservationStore.ResizeArea (begin tx): %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE parking_areas
	           SET address = $2, latitude = $3, longitude = $4,
	               total_car = $5, available_car = $5, booked_car = 0,
	               total_bike = $6, available_bike = $6, booked_bike = 0,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = $1
	           RETURNING ` + areaColumns
	area, err := scanArea(tx.QueryRowContext(ctx, query,
		areaID, dto.Address, dto.Latitude, dto.Longitude, dto.TotalCar, dto.TotalBike,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ReservationStore.ResizeArea: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM slots WHERE area_id = $1`, areaID); err != nil {
		return nil, fmt.Errorf("ReservationStore.ResizeArea (deleting slots): %w", err)
	}
	if err := generateSlots(ctx, tx, areaID, dto.TotalCar, dto.TotalBike); err != nil {
		return nil, fmt.Errorf("ReservationStore.ResizeArea: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ReservationStore.ResizeArea (commit): %w", err)
	}
	return area, nil
}

func (s *pgReservationStore) UpdateAreaInfo(ctx context.Context, areaID int, dto domain.ParkingAreaDTO) (*domain.ParkingArea, error) {
	query := `UPDATE parking_areas
	           SET address = $2, latitude = $3, longitude = $4, updated_at = CURRENT_TIMESTAMP
	           WHERE id = $1
	           RETURNING ` + areaColumns
	area, err := scanArea(s.db.QueryRowContext(ctx, query, areaID, dto.Address, dto.Latitude, dto.Longitude))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ReservationStore.UpdateAreaInfo: %w", err)
	}
	return area, nil
}

// Reserve creates the booking, flips the slot available -> booked and moves
// the area counters, all in one transaction. The conditional slot update is
// the race gate: of N concurrent callers exactly one matches the
// status = 'available' predicate; the rest observe zero rows and get
// ErrSlotUnavailable with nothing committed.
func (s *pgReservationStore) Reserve(ctx context.Context, areaID, slotID int, vehicleType domain.VehicleType, plate, phone string, entryTime time.Time) (*domain.Booking, int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("ReservationStore.Reserve (begin tx): %w", err)
	}
	defer tx.Rollback()

	b := &domain.Booking{
		Code:         uuid.NewString(),
		AreaID:       areaID,
		SlotID:       slotID,
		VehicleType:  vehicleType,
		VehiclePlate: plate,
		UserPhone:    phone,
		EntryTime:    entryTime,
		Status:       domain.BookingStatusActive,
	}
	insert := `INSERT INTO bookings
	            (code, area_id, slot_id, vehicle_type, vehicle_plate, user_phone, entry_time, status, created_at, updated_at)
	            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	            RETURNING id, created_at, updated_at`
	err = tx.QueryRowContext(ctx, insert,
		b.Code, b.AreaID, b.SlotID, b.VehicleType, b.VehiclePlate, b.UserPhone, b.EntryTime, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, 0, fmt.Errorf("ReservationStore.Reserve (inserting booking): %w", err)
	}

	var slotNumber int
	update := `UPDATE slots
	            SET status = $1, booking_id = $2, updated_at = CURRENT_TIMESTAMP
	            WHERE id = $3 AND area_id = $4 AND vehicle_type = $5 AND status = $6
	            RETURNING slot_number`
	err = tx.QueryRowContext(ctx, update,
		domain.SlotStatusBooked, b.ID, slotID, areaID, vehicleType, domain.SlotStatusAvailable,
	).Scan(&slotNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, repository.ErrSlotUnavailable
		}
		return nil, 0, fmt.Errorf("ReservationStore.Reserve (updating slot): %w", err)
	}

	availableCol, bookedCol, _ := counterColumns(vehicleType)
	counters := fmt.Sprintf(`UPDATE parking_areas
	            SET %[1]s = %[1]s - 1, %[2]s = %[2]s + 1, updated_at = CURRENT_TIMESTAMP
	            WHERE id = $1 AND %[1]s > 0`, availableCol, bookedCol)
	res, err := tx.ExecContext(ctx, counters, areaID)
	if err != nil {
		return nil, 0, fmt.Errorf("ReservationStore.Reserve (updating counters): %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, 0, fmt.Errorf("ReservationStore.Reserve (checking rows affected): %w", err)
	}
	if affected == 0 {
		// A booked slot with no available counter to decrement means the
		// inventory already drifted. Abort rather than make it worse.
		return nil, 0, fmt.Errorf("ReservationStore.Reserve: counters out of sync for area %d (%s)", areaID, vehicleType)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("ReservationStore.Reserve (commit): %w", err)
	}
	b.EntryTime = b.EntryTime.In(time.UTC)
	b.CreatedAt = b.CreatedAt.In(time.UTC)
	b.UpdatedAt = b.UpdatedAt.In(time.UTC)
	return b, slotNumber, nil
}

// Complete marks the slot's active booking completed and frees the slot.
// The conditional booking update keyed on status = 'active' guarantees
// at-most-one concurrent completion applies the counter delta. The vehicle
// type for the counter columns comes from the booking row itself, never
// from caller input.
func (s *pgReservationStore) Complete(ctx context.Context, slotID int, exitTime time.Time, amount *float64) (*domain.Booking, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ReservationStore.Complete (begin tx): %w", err)
	}
	defer tx.Rollback()

	var amountVal sql.NullFloat64
	if amount != nil {
		amountVal = sql.NullFloat64{Float64: *amount, Valid: true}
	}

	update := `UPDATE bookings
	            SET status = $1, exit_time = $2, amount = $3, updated_at = CURRENT_TIMESTAMP
	            WHERE slot_id = $4 AND status = $5
	            RETURNING ` + bookingColumns
	b, err := scanBooking(tx.QueryRowContext(ctx, update,
		domain.BookingStatusCompleted, exitTime, amountVal, slotID, domain.BookingStatusActive,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoActiveBooking
		}
		return nil, fmt.Errorf("ReservationStore.Complete (updating booking): %w", err)
	}

	// Conditional on status: if a destructive resize regenerated the slot
	// set while this booking was active, the slot row is gone or already
	// available and this matches zero rows.
	res, err := tx.ExecContext(ctx,
		`UPDATE slots SET status = $1, booking_id = NULL, updated_at = CURRENT_TIMESTAMP WHERE id = $2 AND status = $3`,
		domain.SlotStatusAvailable, slotID, domain.SlotStatusBooked,
	)
	if err != nil {
		return nil, fmt.Errorf("ReservationStore.Complete (updating slot): %w", err)
	}
	freed, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("ReservationStore.Complete (checking rows affected): %w", err)
	}

	// The counter delta applies only when a slot actually flipped
	// booked -> available. An orphaned pre-resize booking completes
	// without touching counters the resize already reset, keeping them
	// aligned with slot-derived truth. The bounds guard holds
	// available + booked == total even if the counters drifted.
	if freed > 0 {
		availableCol, bookedCol, totalCol := counterColumns(b.VehicleType)
		counters := fmt.Sprintf(`UPDATE parking_areas
		            SET %[1]s = %[1]s + 1, %[2]s = %[2]s - 1, updated_at = CURRENT_TIMESTAMP
		            WHERE id = $1 AND %[2]s > 0 AND %[1]s < %[3]s`, availableCol, bookedCol, totalCol)
		if _, err := tx.ExecContext(ctx, counters, b.AreaID); err != nil {
			return nil, fmt.Errorf("ReservationStore.Complete (updating counters): %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("ReservationStore.Complete (commit): %w", err)
	}
	return b, nil
}

// generateSlots materializes slot rows numbered 1..N per vehicle type.
// generate_series with N = 0 yields no rows, so zero capacities are safe.
func generateSlots(ctx context.Context, tx *sql.Tx, areaID, totalCar, totalBike int) error {
	query := `INSERT INTO slots (area_id, vehicle_type, slot_number, status, created_at, updated_at)
	           SELECT $1, $2, gs, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP
	           FROM generate_series(1, $4::int) AS gs`
	if _, err := tx.ExecContext(ctx, query, areaID, domain.VehicleTypeCar, domain.SlotStatusAvailable, totalCar); err != nil {
		return fmt.Errorf("generating car slots: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, areaID, domain.VehicleTypeBike, domain.SlotStatusAvailable, totalBike); err != nil {
		return fmt.Errorf("generating bike slots: %w", err)
	}
	return nil
}
