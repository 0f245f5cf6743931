package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parking_booking/internal/domain"
	"parking_booking/internal/repository"
)

const bookingColumns = `id, code, area_id, slot_id, vehicle_type, vehicle_plate, user_phone,
	entry_time, exit_time, amount, status, created_at, updated_at`

type pgBookingRepository struct {
	db *sql.DB
}

func NewPgBookingRepository(db *sql.DB) repository.BookingRepository {
	return &pgBookingRepository{db: db}
}

func scanBooking(row interface{ Scan(dest ...any) error }) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := row.Scan(
		&b.ID, &b.Code, &b.AreaID, &b.SlotID, &b.VehicleType, &b.VehiclePlate, &b.UserPhone,
		&b.EntryTime, &b.ExitTime, &b.Amount, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.EntryTime = b.EntryTime.In(time.UTC)
	b.CreatedAt = b.CreatedAt.In(time.UTC)
	b.UpdatedAt = b.UpdatedAt.In(time.UTC)
	return b, nil
}

func (r *pgBookingRepository) FindByID(ctx context.Context, id int) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("BookingRepository.FindByID: %w", err)
	}
	return b, nil
}

func (r *pgBookingRepository) FindByCode(ctx context.Context, code string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE code = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("BookingRepository.FindByCode: %w", err)
	}
	return b, nil
}

func (r *pgBookingRepository) FindActiveBySlotID(ctx context.Context, slotID int) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE slot_id = $1 AND status = $2`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, slotID, domain.BookingStatusActive))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoActiveBooking
		}
		return nil, fmt.Errorf("BookingRepository.FindActiveBySlotID: %w", err)
	}
	return b, nil
}

// ListByUserPhone joins area name and slot number for display. The slot join
// is a LEFT JOIN on purpose: a resize may have destroyed the slot the
// booking referenced, in which case the number comes back null.
func (r *pgBookingRepository) ListByUserPhone(ctx context.Context, phone string) ([]domain.UserBooking, error) {
	query := `SELECT b.id, b.code, b.area_id, b.slot_id, b.vehicle_type, b.vehicle_plate, b.user_phone,
	                 b.entry_time, b.exit_time, b.amount, b.status, b.created_at, b.updated_at,
	                 a.name AS area_name, s.slot_number
	           FROM bookings b
	           JOIN parking_areas a ON a.id = b.area_id
	           LEFT JOIN slots s ON s.id = b.slot_id
	           WHERE b.user_phone = $1
	           ORDER BY b.entry_time DESC`
	rows, err := r.db.QueryContext(ctx, query, phone)
	if err != nil {
		return nil, fmt.Errorf("BookingRepository.ListByUserPhone: %w", err)
	}
	defer rows.Close()

	var bookings []domain.UserBooking
	for rows.Next() {
		var ub domain.UserBooking
		if err := rows.Scan(
			&ub.ID, &ub.Code, &ub.AreaID, &ub.SlotID, &ub.VehicleType, &ub.VehiclePlate, &ub.UserPhone,
			&ub.EntryTime, &ub.ExitTime, &ub.Amount, &ub.Status, &ub.CreatedAt, &ub.UpdatedAt,
			&ub.AreaName, &ub.SlotNumber,
		); err != nil {
			return nil, fmt.Errorf("BookingRepository.ListByUserPhone (scanning row): %w", err)
		}
		ub.EntryTime = ub.EntryTime.In(time.UTC)
		ub.CreatedAt = ub.CreatedAt.In(time.UTC)
		ub.UpdatedAt = ub.UpdatedAt.In(time.UTC)
		bookings = append(bookings, ub)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("BookingRepository.ListByUserPhone (rows error): %w", err)
	}
	return bookings, nil
}
