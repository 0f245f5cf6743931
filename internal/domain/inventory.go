package domain

// InventoryAuditRow compares an area's stored counters against counts
// derived from the slot set and the active-booking set, per vehicle type.
// The reconciliation check reports drift; it never rewrites counters.
type InventoryAuditRow struct {
	AreaID      int         `json:"area_id"`
	AreaName    string      `json:"area_name"`
	VehicleType VehicleType `json:"vehicle_type"`

	Total     int `json:"total"`
	Available int `json:"available"`
	Booked    int `json:"booked"`

	SlotCount      int `json:"slot_count"`
	SlotsAvailable int `json:"slots_available"`
	SlotsBooked    int `json:"slots_booked"`
	ActiveBookings int `json:"active_bookings"`
}

// Consistent reports whether the counters match the derived counts and the
// counter triple itself balances.
func (r InventoryAuditRow) Consistent() bool {
	return r.Available+r.Booked == r.Total &&
		r.SlotCount == r.Total &&
		r.SlotsAvailable == r.Available &&
		r.SlotsBooked == r.Booked &&
		r.ActiveBookings == r.Booked
}

type InventoryAuditReport struct {
	Consistent bool               `json:"consistent"`
	Drift      []InventoryAuditRow `json:"drift,omitempty"`
	Checked    int                `json:"checked"`
}
