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

const areaColumns = `id, name, address, latitude, longitude,
	total_car, available_car, booked_car,
	total_bike, available_bike, booked_bike,
	created_at, updated_at`

type pgParkingAreaRepository struct {
	db *sql.DB
}

func NewPgParkingAreaRepository(db *sql.DB) repository.ParkingAreaRepository {
	return &pgParkingAreaRepository{db: db}
}

func scanArea(row interface{ Scan(dest ...any) error }) (*domain.ParkingArea, error) {
	area := &domain.ParkingArea{}
	err := row.Scan(
		&area.ID, &area.Name, &area.Address, &area.Latitude, &area.Longitude,
		&area.TotalCar, &area.AvailableCar, &area.BookedCar,
		&area.TotalBike, &area.AvailableBike, &area.BookedBike,
		&area.CreatedAt, &area.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	area.CreatedAt = area.CreatedAt.In(time.UTC)
	area.UpdatedAt = area.UpdatedAt.In(time.UTC)
	return area, nil
}

func (r *pgParkingAreaRepository) FindByID(ctx context.Context, id int) (*domain.ParkingArea, error) {
	query := `SELECT ` + areaColumns + ` FROM parking_areas WHERE id = $1`
	area, err := scanArea(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingAreaRepository.FindByID: %w", err)
	}
	return area, nil
}

func (r *pgParkingAreaRepository) FindByName(ctx context.Context, name string) (*domain.ParkingArea, error) {
	query := `SELECT ` + areaColumns + ` FROM parking_areas WHERE name = $1`
	area, err := scanArea(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingAreaRepository.FindByName: %w", err)
	}
	return area, nil
}

func (r *pgParkingAreaRepository) FindAll(ctx context.Context) ([]domain.ParkingArea, error) {
	query := `SELECT ` + areaColumns + ` FROM parking_areas ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ParkingAreaRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var areas []domain.ParkingArea
	for rows.Next() {
		area, err := scanArea(rows)
		if err != nil {
			return nil, fmt.Errorf("ParkingAreaRepository.FindAll (scanning row): %w", err)
		}
		areas = append(areas, *area)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ParkingAreaRepository.FindAll (rows error): %w", err)
	}
	return areas, nil
}
