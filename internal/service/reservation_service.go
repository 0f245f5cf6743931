package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"parking_booking/internal/domain"
	"parking_booking/internal/repository"
)

// ErrInvalidReference marks a structurally malformed identifier or field in
// a request, before the store is touched.
var ErrInvalidReference = errors.New("invalid reference")

// BookingNotifier delivers fire-and-forget confirmations to the owner's
// phone. Implementations must not block the reservation path.
type BookingNotifier interface {
	BookingConfirmed(booking *domain.Booking, areaName string, slotNumber int)
	BookingCompleted(booking *domain.Booking)
}

// SlotEventPublisher pushes slot status transitions to live subscribers.
type SlotEventPublisher interface {
	PublishSlotStatus(event domain.SlotStatusEvent)
}

// ReservationService is the reservation engine. It validates commands,
// delegates the multi-table mutation to the ReservationStore (which applies
// it as one transaction) and fans out notifications and live events after
// commit. It is the only component that writes to more than one of the
// slot, counter and booking tables together.
type ReservationService struct {
	areaRepo    repository.ParkingAreaRepository
	slotRepo    repository.SlotRepository
	bookingRepo repository.BookingRepository
	store       repository.ReservationStore
	notifier    BookingNotifier
	events      SlotEventPublisher
}

func NewReservationService(
	areaRepo repository.ParkingAreaRepository,
	slotRepo repository.SlotRepository,
	bookingRepo repository.BookingRepository,
	store repository.ReservationStore,
	notifier BookingNotifier,
	events SlotEventPublisher,
) *ReservationService {
	return &ReservationService{
		areaRepo:    areaRepo,
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		store:       store,
		notifier:    notifier,
		events:      events,
	}
}

// CreateOrResizeArea creates the named area with its full slot set, or, when
// the area exists and the requested totals differ for either vehicle type,
// performs the destructive resize. Unchanged totals update location fields
// only.
func (s *ReservationService) CreateOrResizeArea(ctx context.Context, dto domain.ParkingAreaDTO) (*domain.ParkingArea, error) {
	if dto.TotalCar < 0 || dto.TotalBike < 0 {
		return nil, fmt.Errorf("%w: slot totals must not be negative", ErrInvalidReference)
	}

	existing, err := s.areaRepo.FindByName(ctx, dto.Name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.store.CreateArea(ctx, dto)
		}
		return nil, fmt.Errorf("checking area by name: %w", err)
	}

	if existing.TotalCar != dto.TotalCar || existing.TotalBike != dto.TotalBike {
		log.Printf("Resizing area %d (%s) from (car=%d, bike=%d) to (car=%d, bike=%d); existing slots will be regenerated",
			existing.ID, existing.Name, existing.TotalCar, existing.TotalBike, dto.TotalCar, dto.TotalBike)
		return s.store.ResizeArea(ctx, existing.ID, dto)
	}
	return s.store.UpdateAreaInfo(ctx, existing.ID, dto)
}

// ReserveSlot books the slot for the calling owner. The store applies the
// booking insert, the conditional slot flip and the counter delta as one
// atomic unit; of N concurrent calls against the same slot exactly one
// returns a booking and the rest get ErrSlotUnavailable.
func (s *ReservationService) ReserveSlot(ctx context.Context, phone string, dto domain.ReserveSlotDTO) (*domain.ReserveResult, error) {
	if dto.AreaID <= 0 || dto.SlotID <= 0 {
		return nil, fmt.Errorf("%w: area and slot ids must be positive", ErrInvalidReference)
	}
	if phone == "" {
		return nil, fmt.Errorf("%w: missing requester phone", ErrInvalidReference)
	}
	vt, ok := domain.ParseVehicleType(dto.VehicleType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown vehicle type '%s'", ErrInvalidReference, dto.VehicleType)
	}
	entryTime, err := parseTimeOrNow(dto.EntryTime)
	if err != nil {
		return nil, fmt.Errorf("%w: entry_time: %v", ErrInvalidReference, err)
	}

	area, err := s.areaRepo.FindByID(ctx, dto.AreaID)
	if err != nil {
		return nil, err
	}

	booking, slotNumber, err := s.store.Reserve(ctx, dto.AreaID, dto.SlotID, vt, dto.VehiclePlate, phone, entryTime)
	if err != nil {
		return nil, err
	}
	log.Printf("Reserved slot %d (#%d %s) in area %d for %s, booking %s",
		dto.SlotID, slotNumber, vt, dto.AreaID, phone, booking.Code)

	s.publish(domain.SlotStatusEvent{
		Type:        "slot_update",
		AreaID:      dto.AreaID,
		SlotID:      dto.SlotID,
		SlotNumber:  slotNumber,
		VehicleType: vt,
		Status:      domain.SlotStatusBooked,
	})
	if s.notifier != nil {
		go s.notifier.BookingConfirmed(booking, area.Name, slotNumber)
	}

	return &domain.ReserveResult{
		BookingID:   booking.ID,
		BookingCode: booking.Code,
		SlotNumber:  slotNumber,
		VehicleType: vt,
	}, nil
}

// CompleteBooking closes the active booking on the slot and frees it. The
// vehicle type driving the counter delta comes from the booking's own
// stored type, never from request input.
func (s *ReservationService) CompleteBooking(ctx context.Context, dto domain.CompleteBookingDTO) (*domain.Booking, error) {
	if dto.SlotID <= 0 {
		return nil, fmt.Errorf("%w: slot id must be positive", ErrInvalidReference)
	}
	exitTime, err := parseTimeOrNow(dto.ExitTime)
	if err != nil {
		return nil, fmt.Errorf("%w: exit_time: %v", ErrInvalidReference, err)
	}

	booking, err := s.store.Complete(ctx, dto.SlotID, exitTime, dto.Amount)
	if err != nil {
		return nil, err
	}
	log.Printf("Completed booking %s on slot %d", booking.Code, booking.SlotID)

	slotNumber := 0
	if slot, err := s.slotRepo.FindByID(ctx, booking.SlotID); err == nil {
		slotNumber = slot.SlotNumber
	}
	s.publish(domain.SlotStatusEvent{
		Type:        "slot_update",
		AreaID:      booking.AreaID,
		SlotID:      booking.SlotID,
		SlotNumber:  slotNumber,
		VehicleType: booking.VehicleType,
		Status:      domain.SlotStatusAvailable,
	})
	if s.notifier != nil {
		go s.notifier.BookingCompleted(booking)
	}
	return booking, nil
}

// ListSlots returns the area's slots with occupancy derived from the
// active-booking set.
func (s *ReservationService) ListSlots(ctx context.Context, areaID int, vehicleType string) ([]domain.SlotView, error) {
	if areaID <= 0 {
		return nil, fmt.Errorf("%w: area id must be positive", ErrInvalidReference)
	}
	var vtFilter *domain.VehicleType
	if vehicleType != "" {
		vt, ok := domain.ParseVehicleType(vehicleType)
		if !ok {
			return nil, fmt.Errorf("%w: unknown vehicle type '%s'", ErrInvalidReference, vehicleType)
		}
		vtFilter = &vt
	}
	if _, err := s.areaRepo.FindByID(ctx, areaID); err != nil {
		return nil, err
	}
	return s.slotRepo.ListByArea(ctx, areaID, vtFilter)
}

// ListUserBookings returns the user's bookings newest entry time first,
// enriched with the area name and slot number for display.
func (s *ReservationService) ListUserBookings(ctx context.Context, phone string) ([]domain.UserBooking, error) {
	if phone == "" {
		return nil, fmt.Errorf("%w: missing phone", ErrInvalidReference)
	}
	return s.bookingRepo.ListByUserPhone(ctx, phone)
}

func (s *ReservationService) GetAreaByID(ctx context.Context, id int) (*domain.ParkingArea, error) {
	return s.areaRepo.FindByID(ctx, id)
}

func (s *ReservationService) GetAllAreas(ctx context.Context) ([]domain.ParkingArea, error) {
	return s.areaRepo.FindAll(ctx)
}

func (s *ReservationService) GetBookingByCode(ctx context.Context, code string) (*domain.Booking, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: missing booking code", ErrInvalidReference)
	}
	return s.bookingRepo.FindByCode(ctx, code)
}

func (s *ReservationService) publish(event domain.SlotStatusEvent) {
	if s.events != nil {
		s.events.PublishSlotStatus(event)
	}
}

func parseTimeOrNow(value string) (time.Time, error) {
	if value == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
