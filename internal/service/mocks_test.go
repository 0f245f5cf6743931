package service

import (
	"context"
	"time"

	"parking_booking/internal/domain"

	"github.com/stretchr/testify/mock"
)

type mockAreaRepo struct{ mock.Mock }

func (m *mockAreaRepo) FindByID(ctx context.Context, id int) (*domain.ParkingArea, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParkingArea), args.Error(1)
}

func (m *mockAreaRepo) FindByName(ctx context.Context, name string) (*domain.ParkingArea, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParkingArea), args.Error(1)
}

func (m *mockAreaRepo) FindAll(ctx context.Context) ([]domain.ParkingArea, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ParkingArea), args.Error(1)
}

type mockSlotRepo struct{ mock.Mock }

func (m *mockSlotRepo) FindByID(ctx context.Context, id int) (*domain.Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Slot), args.Error(1)
}

func (m *mockSlotRepo) ListByArea(ctx context.Context, areaID int, vehicleType *domain.VehicleType) ([]domain.SlotView, error) {
	args := m.Called(ctx, areaID, vehicleType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SlotView), args.Error(1)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) FindByID(ctx context.Context, id int) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindByCode(ctx context.Context, code string) (*domain.Booking, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindActiveBySlotID(ctx context.Context, slotID int) (*domain.Booking, error) {
	args := m.Called(ctx, slotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingRepo) ListByUserPhone(ctx context.Context, phone string) ([]domain.UserBooking, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserBooking), args.Error(1)
}

type mockReservationStore struct{ mock.Mock }

func (m *mockReservationStore) CreateArea(ctx context.Context, dto domain.ParkingAreaDTO) (*domain.ParkingArea, error) {
	args := m.Called(ctx, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParkingArea), args.Error(1)
}

func (m *mockReservationStore) ResizeArea(ctx context.Context, areaID int, dto domain.ParkingAreaDTO) (*domain.ParkingArea, error) {
	args := m.Called(ctx, areaID, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParkingArea), args.Error(1)
}

func (m *mockReservationStore) UpdateAreaInfo(ctx context.Context, areaID int, dto domain.ParkingAreaDTO) (*domain.ParkingArea, error) {
	args := m.Called(ctx, areaID, dto)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParkingArea), args.Error(1)
}

func (m *mockReservationStore) Reserve(ctx context.Context, areaID, slotID int, vehicleType domain.VehicleType, plate, phone string, entryTime time.Time) (*domain.Booking, int, error) {
	args := m.Called(ctx, areaID, slotID, vehicleType, plate, phone, entryTime)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*domain.Booking), args.Int(1), args.Error(2)
}

func (m *mockReservationStore) Complete(ctx context.Context, slotID int, exitTime time.Time, amount *float64) (*domain.Booking, error) {
	args := m.Called(ctx, slotID, exitTime, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) BookingConfirmed(booking *domain.Booking, areaName string, slotNumber int) {
	m.Called(booking, areaName, slotNumber)
}

func (m *mockNotifier) BookingCompleted(booking *domain.Booking) {
	m.Called(booking)
}

type mockEventPublisher struct{ mock.Mock }

func (m *mockEventPublisher) PublishSlotStatus(event domain.SlotStatusEvent) {
	m.Called(event)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockAuditRepo struct{ mock.Mock }

func (m *mockAuditRepo) Report(ctx context.Context) ([]domain.InventoryAuditRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryAuditRow), args.Error(1)
}
