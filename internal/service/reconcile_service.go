package service

import (
	"context"
	"fmt"
	"log"

	"parking_booking/internal/domain"
	"parking_booking/internal/repository"
)

// ReconcileService runs the inventory consistency check: for every area and
// vehicle type it compares the stored counter triple against counts derived
// from the slot set and the active-booking set. It reports drift and never
// rewrites counters; correctness is owned by the transactional engine
// operations, this is validation only.
type ReconcileService struct {
	auditRepo repository.InventoryAuditRepository
}

func NewReconcileService(auditRepo repository.InventoryAuditRepository) *ReconcileService {
	return &ReconcileService{auditRepo: auditRepo}
}

func (s *ReconcileService) CheckInventory(ctx context.Context) (*domain.InventoryAuditReport, error) {
	rows, err := s.auditRepo.Report(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory audit: %w", err)
	}

	report := &domain.InventoryAuditReport{Consistent: true, Checked: len(rows)}
	for _, row := range rows {
		if !row.Consistent() {
			report.Consistent = false
			report.Drift = append(report.Drift, row)
		}
	}
	return report, nil
}

// RunScheduled is the cron entrypoint. Drift is logged loudly; an orphaned
// active booking after a destructive resize is the expected source.
func (s *ReconcileService) RunScheduled() {
	ctx := context.Background()
	report, err := s.CheckInventory(ctx)
	if err != nil {
		log.Printf("Inventory reconciliation failed: %v", err)
		return
	}
	if report.Consistent {
		log.Printf("Inventory reconciliation OK (%d area/type pairs checked)", report.Checked)
		return
	}
	for _, row := range report.Drift {
		log.Printf("INVENTORY DRIFT area %d (%s) %s: counters total=%d available=%d booked=%d, slots=%d/%d/%d, active bookings=%d",
			row.AreaID, row.AreaName, row.VehicleType,
			row.Total, row.Available, row.Booked,
			row.SlotCount, row.SlotsAvailable, row.SlotsBooked,
			row.ActiveBookings)
	}
}
