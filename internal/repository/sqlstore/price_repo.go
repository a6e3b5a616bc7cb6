package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jascaniojs/parking-business-api/internal/domain"
	"github.com/jascaniojs/parking-business-api/internal/repository"
)

type priceRepository struct {
	c conn
}

const priceColumns = `id, building_id, vehicle_type, rate_per_hour, created_at, updated_at`

func (r *priceRepository) FindByBuildingAndVehicle(ctx context.Context, buildingID int, vt domain.VehicleType) (*domain.Price, error) {
	query := `SELECT ` + priceColumns + ` FROM prices
	          WHERE building_id = ? AND vehicle_type = ?
	          ORDER BY id LIMIT 1`
	p, err := scanPrice(r.c.queryRow(ctx, query, buildingID, string(vt)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("PriceRepository.FindByBuildingAndVehicle: %w", err)
	}
	return p, nil
}

func (r *priceRepository) FindByBuildingID(ctx context.Context, buildingID int) ([]domain.Price, error) {
	query := `SELECT ` + priceColumns + ` FROM prices WHERE building_id = ? ORDER BY vehicle_type, id`
	rows, err := r.c.query(ctx, query, buildingID)
	if err != nil {
		return nil, fmt.Errorf("PriceRepository.FindByBuildingID: %w", err)
	}
	defer rows.Close()

	prices := []domain.Price{}
	for rows.Next() {
		p, err := scanPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("PriceRepository.FindByBuildingID (scanning row): %w", err)
		}
		prices = append(prices, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("PriceRepository.FindByBuildingID (rows error): %w", err)
	}
	return prices, nil
}

// Upsert sets the rate for a (building, vehicle type) pair.
func (r *priceRepository) Upsert(ctx context.Context, p *domain.Price) (*domain.Price, error) {
	now := time.Now().UTC()
	query := `INSERT INTO prices (building_id, vehicle_type, rate_per_hour, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?)
	          ON CONFLICT (building_id, vehicle_type)
	          DO UPDATE SET rate_per_hour = excluded.rate_per_hour, updated_at = excluded.updated_at`
	if _, err := r.c.exec(ctx, query, p.BuildingID, string(p.VehicleType), p.RatePerHour, now, now); err != nil {
		return nil, fmt.Errorf("PriceRepository.Upsert: %w", classify(err))
	}
	return r.FindByBuildingAndVehicle(ctx, p.BuildingID, p.VehicleType)
}

func scanPrice(row rowScanner) (*domain.Price, error) {
	p := &domain.Price{}
	var vehicleType string
	if err := row.Scan(&p.ID, &p.BuildingID, &vehicleType, &p.RatePerHour, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.VehicleType = domain.VehicleType(vehicleType)
	p.CreatedAt = p.CreatedAt.In(time.UTC)
	p.UpdatedAt = p.UpdatedAt.In(time.UTC)
	return p, nil
}
