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

type pgSlotRepository struct {
	db *sql.DB
}

func NewPgSlotRepository(db *sql.DB) repository.SlotRepository {
	return &pgSlotRepository{db: db}
}

func (r *pgSlotRepository) FindByID(ctx context.Context, id int) (*domain.Slot, error) {
	slot := &domain.Slot{}
	query := `SELECT id, area_id, vehicle_type, slot_number, status, booking_id, created_at, updated_at
	           FROM slots WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&slot.ID, &slot.AreaID, &slot.VehicleType, &slot.SlotNumber,
		&slot.Status, &slot.BookingID, &slot.CreatedAt, &slot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("SlotRepository.FindByID: %w", err)
	}
	slot.CreatedAt = slot.CreatedAt.In(time.UTC)
	slot.UpdatedAt = slot.UpdatedAt.In(time.UTC)
	return slot, nil
}

// ListByArea derives IsBooked from the active-booking set rather than the
// slot's own status column, so the listing stays truthful even if the two
// ever disagree.
func (r *pgSlotRepository) ListByArea(ctx context.Context, areaID int, vehicleType *domain.VehicleType) ([]domain.SlotView, error) {
	query := `SELECT s.id, s.area_id, s.vehicle_type, s.slot_number, s.status, s.booking_id,
	                 s.created_at, s.updated_at,
	                 (b.id IS NOT NULL) AS is_booked
	           FROM slots s
	           LEFT JOIN bookings b ON b.slot_id = s.id AND b.status = $2
	           WHERE s.area_id = $1`
	args := []any{areaID, domain.BookingStatusActive}
	if vehicleType != nil {
		query += ` AND s.vehicle_type = $3`
		args = append(args, *vehicleType)
	}
	query += ` ORDER BY s.vehicle_type, s.slot_number`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("SlotRepository.ListByArea: %w", err)
	}
	defer rows.Close()

	var slots []domain.SlotView
	for rows.Next() {
		var sv domain.SlotView
		if err := rows.Scan(
			&sv.ID, &sv.AreaID, &sv.VehicleType, &sv.SlotNumber, &sv.Status, &sv.BookingID,
			&sv.CreatedAt, &sv.UpdatedAt, &sv.IsBooked,
		); err != nil {
			return nil, fmt.Errorf("SlotRepository.ListByArea (scanning row): %w", err)
		}
		sv.CreatedAt = sv.CreatedAt.In(time.UTC)
		sv.UpdatedAt = sv.UpdatedAt.In(time.UTC)
		slots = append(slots, sv)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("SlotRepository.ListByArea (rows error): %w", err)
	}
	return slots, nil
}
