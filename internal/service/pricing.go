package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jascaniojs/parking-business-api/internal/domain"
	"github.com/jascaniojs/parking-business-api/internal/repository"
)

type PriceLookup struct{}

// GetRate returns the hourly rate configured for the building and vehicle class.
func (PriceLookup) GetRate(ctx context.Context, prices repository.PriceRepository, buildingID int, vt domain.VehicleType) (decimal.Decimal, error) {
	p, err := prices.FindByBuildingAndVehicle(ctx, buildingID, vt)
	if errors.Is(err, repository.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("%w (building %d, %s)", ErrRateNotConfigured, buildingID, vt)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("get rate: %w", err)
	}
	return p.RatePerHour, nil
}
