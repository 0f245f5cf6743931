package service

import (
	"context"
	"testing"
	"time"

	"parking_booking/internal/domain"
	"parking_booking/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// The notifier and events parameters are the interface types so a nil
// argument stays a nil interface inside the service.
func newTestReservationService(areaRepo *mockAreaRepo, slotRepo *mockSlotRepo, bookingRepo *mockBookingRepo,
	store *mockReservationStore, notifier BookingNotifier, events SlotEventPublisher) *ReservationService {
	return NewReservationService(areaRepo, slotRepo, bookingRepo, store, notifier, events)
}

func TestReservationService_ReserveSlot_Success(t *testing.T) {
	areaRepo := new(mockAreaRepo)
	slotRepo := new(mockSlotRepo)
	bookingRepo := new(mockBookingRepo)
	store := new(mockReservationStore)
	notifier := new(mockNotifier)
	events := new(mockEventPublisher)
	svc := newTestReservationService(areaRepo, slotRepo, bookingRepo, store, notifier, events)

	area := &domain.ParkingArea{ID: 1, Name: "Downtown", TotalCar: 10, AvailableCar: 10}
	booking := &domain.Booking{
		ID: 42, Code: "b7a9e2c4-0000-0000-0000-000000000000",
		AreaID: 1, SlotID: 5, VehicleType: domain.VehicleTypeCar,
		UserPhone: "+15550001", Status: domain.BookingStatusActive,
	}

	areaRepo.On("FindByID", mock.Anything, 1).Return(area, nil)
	store.On("Reserve", mock.Anything, 1, 5, domain.VehicleTypeCar, "ABC-123", "+15550001", mock.AnythingOfType("time.Time")).
		Return(booking, 5, nil)
	events.On("PublishSlotStatus", mock.MatchedBy(func(e domain.SlotStatusEvent) bool {
		return e.SlotID == 5 && e.Status == domain.SlotStatusBooked
	})).Return()
	notifier.On("BookingConfirmed", booking, "Downtown", 5).Return()

	result, err := svc.ReserveSlot(context.Background(), "+15550001", domain.ReserveSlotDTO{
		AreaID: 1, SlotID: 5, VehicleType: "car", VehiclePlate: "ABC-123",
	})

	require.NoError(t, err)
	assert.Equal(t, 42, result.BookingID)
	assert.Equal(t, booking.Code, result.BookingCode)
	assert.Equal(t, 5, result.SlotNumber)
	assert.Equal(t, domain.VehicleTypeCar, result.VehicleType)

	time.Sleep(50 * time.Millisecond) // notifier runs in a goroutine
	areaRepo.AssertExpectations(t)
	store.AssertExpectations(t)
	events.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestReservationService_ReserveSlot_SlotUnavailable(t *testing.T) {
	areaRepo := new(mockAreaRepo)
	store := new(mockReservationStore)
	events := new(mockEventPublisher)
	svc := newTestReservationService(areaRepo, new(mockSlotRepo), new(mockBookingRepo), store, nil, events)

	areaRepo.On("FindByID", mock.Anything, 1).Return(&domain.ParkingArea{ID: 1, Name: "Downtown"}, nil)
	store.On("Reserve", mock.Anything, 1, 5, domain.VehicleTypeCar, "ABC-123", "+15550001", mock.AnythingOfType("time.Time")).
		Return(nil, 0, repository.ErrSlotUnavailable)

	_, err := svc.ReserveSlot(context.Background(), "+15550001", domain.ReserveSlotDTO{
		AreaID: 1, SlotID: 5, VehicleType: "car", VehiclePlate: "ABC-123",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrSlotUnavailable)
	events.AssertNotCalled(t, "PublishSlotStatus", mock.Anything)
}

func TestReservationService_ReserveSlot_AreaNotFound(t *testing.T) {
	areaRepo := new(mockAreaRepo)
	store := new(mockReservationStore)
	svc := newTestReservationService(areaRepo, new(mockSlotRepo), new(mockBookingRepo), store, nil, nil)

	areaRepo.On("FindByID", mock.Anything, 99).Return(nil, repository.ErrNotFound)

	_, err := svc.ReserveSlot(context.Background(), "+15550001", domain.ReserveSlotDTO{
		AreaID: 99, SlotID: 5, VehicleType: "car", VehiclePlate: "ABC-123",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	store.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReservationService_ReserveSlot_Validation(t *testing.T) {
	svc := newTestReservationService(new(mockAreaRepo), new(mockSlotRepo), new(mockBookingRepo), new(mockReservationStore), nil, nil)
	ctx := context.Background()

	cases := []struct {
		name  string
		phone string
		dto   domain.ReserveSlotDTO
	}{
		{"zero area id", "+15550001", domain.ReserveSlotDTO{AreaID: 0, SlotID: 5, VehicleType: "car"}},
		{"negative slot id", "+15550001", domain.ReserveSlotDTO{AreaID: 1, SlotID: -1, VehicleType: "car"}},
		{"missing phone", "", domain.ReserveSlotDTO{AreaID: 1, SlotID: 5, VehicleType: "car"}},
		{"unknown vehicle type", "+15550001", domain.ReserveSlotDTO{AreaID: 1, SlotID: 5, VehicleType: "truck"}},
		{"bad entry time", "+15550001", domain.ReserveSlotDTO{AreaID: 1, SlotID: 5, VehicleType: "car", EntryTime: "yesterday"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ReserveSlot(ctx, tc.phone, tc.dto)
			assert.ErrorIs(t, err, ErrInvalidReference)
		})
	}
}

func TestReservationService_CompleteBooking_Success(t *testing.T) {
	slotRepo := new(mockSlotRepo)
	store := new(mockReservationStore)
	notifier := new(mockNotifier)
	events := new(mockEventPublisher)
	svc := newTestReservationService(new(mockAreaRepo), slotRepo, new(mockBookingRepo), store, notifier, events)

	amount := 12.50
	booking := &domain.Booking{
		ID: 42, Code: "b7a9e2c4-0000-0000-0000-000000000000",
		AreaID: 1, SlotID: 5, VehicleType: domain.VehicleTypeBike,
		UserPhone: "+15550001", Status: domain.BookingStatusCompleted,
	}

	store.On("Complete", mock.Anything, 5, mock.AnythingOfType("time.Time"), &amount).Return(booking, nil)
	slotRepo.On("FindByID", mock.Anything, 5).Return(&domain.Slot{ID: 5, SlotNumber: 3}, nil)
	events.On("PublishSlotStatus", mock.MatchedBy(func(e domain.SlotStatusEvent) bool {
		return e.SlotID == 5 && e.SlotNumber == 3 && e.Status == domain.SlotStatusAvailable && e.VehicleType == domain.VehicleTypeBike
	})).Return()
	notifier.On("BookingCompleted", booking).Return()

	result, err := svc.CompleteBooking(context.Background(), domain.CompleteBookingDTO{SlotID: 5, Amount: &amount})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCompleted, result.Status)

	time.Sleep(50 * time.Millisecond)
	store.AssertExpectations(t)
	events.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestReservationService_CompleteBooking_NoActiveBooking(t *testing.T) {
	store := new(mockReservationStore)
	events := new(mockEventPublisher)
	svc := newTestReservationService(new(mockAreaRepo), new(mockSlotRepo), new(mockBookingRepo), store, nil, events)

	store.On("Complete", mock.Anything, 5, mock.AnythingOfType("time.Time"), (*float64)(nil)).
		Return(nil, repository.ErrNoActiveBooking)

	_, err := svc.CompleteBooking(context.Background(), domain.CompleteBookingDTO{SlotID: 5})

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNoActiveBooking)
	events.AssertNotCalled(t, "PublishSlotStatus", mock.Anything)
}

func TestReservationService_CompleteBooking_SlotLookupFailureStillCompletes(t *testing.T) {
	slotRepo := new(mockSlotRepo)
	store := new(mockReservationStore)
	events := new(mockEventPublisher)
	svc := newTestReservationService(new(mockAreaRepo), slotRepo, new(mockBookingRepo), store, nil, events)

	booking := &domain.Booking{ID: 42, AreaID: 1, SlotID: 5, VehicleType: domain.VehicleTypeCar, Status: domain.BookingStatusCompleted}

	store.On("Complete", mock.Anything, 5, mock.AnythingOfType("time.Time"), (*float64)(nil)).Return(booking, nil)
	// Slot destroyed by a resize after the booking was made.
	slotRepo.On("FindByID", mock.Anything, 5).Return(nil, repository.ErrNotFound)
	events.On("PublishSlotStatus", mock.MatchedBy(func(e domain.SlotStatusEvent) bool {
		return e.SlotID == 5 && e.SlotNumber == 0
	})).Return()

	result, err := svc.CompleteBooking(context.Background(), domain.CompleteBookingDTO{SlotID: 5})

	require.NoError(t, err)
	assert.Equal(t, 42, result.ID)
	events.AssertExpectations(t)
}

func TestReservationService_CreateOrResizeArea_CreatesWhenMissing(t *testing.T) {
	areaRepo := new(mockAreaRepo)
	store := new(mockReservationStore)
	svc := newTestReservationService(areaRepo, new(mockSlotRepo), new(mockBookingRepo), store, nil, nil)

	dto := domain.ParkingAreaDTO{Name: "Downtown", TotalCar: 10, TotalBike: 20}
	created := &domain.ParkingArea{ID: 1, Name: "Downtown", TotalCar: 10, AvailableCar: 10, TotalBike: 20, AvailableBike: 20}

	areaRepo.On("FindByName", mock.Anything, "Downtown").Return(nil, repository.ErrNotFound)
	store.On("CreateArea", mock.Anything, dto).Return(created, nil)

	area, err := svc.CreateOrResizeArea(context.Background(), dto)

	require.NoError(t, err)
	assert.Equal(t, 10, area.AvailableCar)
	assert.Equal(t, 20, area.AvailableBike)
	assert.Zero(t, area.BookedCar)
	store.AssertExpectations(t)
}

func TestReservationService_CreateOrResizeArea_ResizesWhenTotalsDiffer(t *testing.T) {
	areaRepo := new(mockAreaRepo)
	store := new(mockReservationStore)
	svc := newTestReservationService(areaRepo, new(mockSlotRepo), new(mockBookingRepo), store, nil, nil)

	dto := domain.ParkingAreaDTO{Name: "Downtown", TotalCar: 15, TotalBike: 20}
	existing := &domain.ParkingArea{ID: 1, Name: "Downtown", TotalCar: 10, TotalBike: 20}
	resized := &domain.ParkingArea{ID: 1, Name: "Downtown", TotalCar: 15, AvailableCar: 15, TotalBike: 20, AvailableBike: 20}

	areaRepo.On("FindByName", mock.Anything, "Downtown").Return(existing, nil)
	store.On("ResizeArea", mock.Anything, 1, dto).Return(resized, nil)

	area, err := svc.CreateOrResizeArea(context.Background(), dto)

	require.NoError(t, err)
	assert.Equal(t, 15, area.TotalCar)
	assert.Equal(t, 15, area.AvailableCar)
	store.AssertNotCalled(t, "CreateArea", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestReservationService_CreateOrResizeArea_UpdatesInfoWhenTotalsMatch(t *testing.T) {
	areaRepo := new(mockAreaRepo)
	store := new(mockReservationStore)
	svc := newTestReservationService(areaRepo, new(mockSlotRepo), new(mockBookingRepo), store, nil, nil)

	lat := 40.71
	dto := domain.ParkingAreaDTO{Name: "Downtown", TotalCar: 10, TotalBike: 20, Latitude: &lat}
	existing := &domain.ParkingArea{ID: 1, Name: "Downtown", TotalCar: 10, TotalBike: 20}

	areaRepo.On("FindByName", mock.Anything, "Downtown").Return(existing, nil)
	store.On("UpdateAreaInfo", mock.Anything, 1, dto).Return(existing, nil)

	_, err := svc.CreateOrResizeArea(context.Background(), dto)

	require.NoError(t, err)
	store.AssertNotCalled(t, "ResizeArea", mock.Anything, mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestReservationService_CreateOrResizeArea_RejectsNegativeTotals(t *testing.T) {
	svc := newTestReservationService(new(mockAreaRepo), new(mockSlotRepo), new(mockBookingRepo), new(mockReservationStore), nil, nil)

	_, err := svc.CreateOrResizeArea(context.Background(), domain.ParkingAreaDTO{Name: "Downtown", TotalCar: -1})

	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestReservationService_ListSlots(t *testing.T) {
	areaRepo := new(mockAreaRepo)
	slotRepo := new(mockSlotRepo)
	svc := newTestReservationService(areaRepo, slotRepo, new(mockBookingRepo), new(mockReservationStore), nil, nil)

	bike := domain.VehicleTypeBike
	views := []domain.SlotView{
		{Slot: domain.Slot{ID: 1, SlotNumber: 1, VehicleType: bike}, IsBooked: false},
		{Slot: domain.Slot{ID: 2, SlotNumber: 2, VehicleType: bike}, IsBooked: true},
	}

	areaRepo.On("FindByID", mock.Anything, 1).Return(&domain.ParkingArea{ID: 1}, nil)
	slotRepo.On("ListByArea", mock.Anything, 1, &bike).Return(views, nil)

	slots, err := svc.ListSlots(context.Background(), 1, "bike")

	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.False(t, slots[0].IsBooked)
	assert.True(t, slots[1].IsBooked)
}

func TestReservationService_ListSlots_UnknownVehicleType(t *testing.T) {
	svc := newTestReservationService(new(mockAreaRepo), new(mockSlotRepo), new(mockBookingRepo), new(mockReservationStore), nil, nil)

	_, err := svc.ListSlots(context.Background(), 1, "boat")

	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestReservationService_ListSlots_AreaNotFound(t *testing.T) {
	areaRepo := new(mockAreaRepo)
	slotRepo := new(mockSlotRepo)
	svc := newTestReservationService(areaRepo, slotRepo, new(mockBookingRepo), new(mockReservationStore), nil, nil)

	areaRepo.On("FindByID", mock.Anything, 99).Return(nil, repository.ErrNotFound)

	_, err := svc.ListSlots(context.Background(), 99, "")

	assert.ErrorIs(t, err, repository.ErrNotFound)
	slotRepo.AssertNotCalled(t, "ListByArea", mock.Anything, mock.Anything, mock.Anything)
}

func TestReservationService_ListUserBookings(t *testing.T) {
	bookingRepo := new(mockBookingRepo)
	svc := newTestReservationService(new(mockAreaRepo), new(mockSlotRepo), bookingRepo, new(mockReservationStore), nil, nil)

	bookings := []domain.UserBooking{
		{Booking: domain.Booking{ID: 2, Status: domain.BookingStatusActive}, AreaName: "Downtown"},
		{Booking: domain.Booking{ID: 1, Status: domain.BookingStatusCompleted}, AreaName: "Downtown"},
	}
	bookingRepo.On("ListByUserPhone", mock.Anything, "+15550001").Return(bookings, nil)

	got, err := svc.ListUserBookings(context.Background(), "+15550001")

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestReservationService_ListUserBookings_MissingPhone(t *testing.T) {
	svc := newTestReservationService(new(mockAreaRepo), new(mockSlotRepo), new(mockBookingRepo), new(mockReservationStore), nil, nil)

	_, err := svc.ListUserBookings(context.Background(), "")

	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestReservationService_GetBookingByCode_MissingCode(t *testing.T) {
	svc := newTestReservationService(new(mockAreaRepo), new(mockSlotRepo), new(mockBookingRepo), new(mockReservationStore), nil, nil)

	_, err := svc.GetBookingByCode(context.Background(), "")

	assert.ErrorIs(t, err, ErrInvalidReference)
}
