package postgresql

import (
	"context"
	"database/sql"
	"fmt"

	"parking_booking/internal/domain"
	"parking_booking/internal/repository"
)

type pgInventoryAuditRepository struct {
	db *sql.DB
}

func NewPgInventoryAuditRepository(db *sql.DB) repository.InventoryAuditRepository {
	return &pgInventoryAuditRepository{db: db}
}

// Report reads, for every area and vehicle type, the stored counter triple
// next to the counts derived from the slot table and the active-booking set.
// Read-only: reconciliation surfaces drift, it does not repair it.
func (r *pgInventoryAuditRepository) Report(ctx context.Context) ([]domain.InventoryAuditRow, error) {
	query := `
		SELECT a.id, a.name, t.vehicle_type, t.total, t.available, t.booked,
		       COUNT(DISTINCT s.id) AS slot_count,
		       COUNT(DISTINCT s.id) FILTER (WHERE s.status = 'available') AS slots_available,
		       COUNT(DISTINCT s.id) FILTER (WHERE s.status = 'booked') AS slots_booked,
		       COUNT(DISTINCT b.id) AS active_bookings
		FROM parking_areas a
		CROSS JOIN LATERAL (
			VALUES ('car',  a.total_car,  a.available_car,  a.booked_car),
			       ('bike', a.total_bike, a.available_bike, a.booked_bike)
		) AS t(vehicle_type, total, available, booked)
		LEFT JOIN slots s ON s.area_id = a.id AND s.vehicle_type = t.vehicle_type
		LEFT JOIN bookings b ON b.area_id = a.id AND b.vehicle_type = t.vehicle_type AND b.status = 'active'
		GROUP BY a.id, a.name, t.vehicle_type, t.total, t.available, t.booked
		ORDER BY a.name, t.vehicle_type`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("InventoryAuditRepository.Report: %w", err)
	}
	defer rows.Close()

	var report []domain.InventoryAuditRow
	for rows.Next() {
		var row domain.InventoryAuditRow
		if err := rows.Scan(
			&row.AreaID, &row.AreaName, &row.VehicleType, &row.Total, &row.Available, &row.Booked,
			&row.SlotCount, &row.SlotsAvailable, &row.SlotsBooked, &row.ActiveBookings,
		); err != nil {
			return nil, fmt.Errorf("InventoryAuditRepository.Report (scanning row): %w", err)
		}
		report = append(report, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("InventoryAuditRepository.Report (rows error): %w", err)
	}
	return report, nil
}
