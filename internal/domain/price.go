package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Money is rendered as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

type Price struct {
	ID          int             `json:"id"`
	BuildingID  int             `json:"building_id"`
	VehicleType VehicleType     `json:"vehicle_type"`
	RatePerHour decimal.Decimal `json:"rate_per_hour"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type PriceDTO struct {
	VehicleType string          `json:"vehicle_type" binding:"required,oneof=CAR MOTORCYCLE"`
	RatePerHour *decimal.Decimal `json:"rate_per_hour" binding:"required"`
}

func NewPrice(buildingID int, dto PriceDTO) (*Price, error) {
	if buildingID <= 0 {
		return nil, fmt.Errorf("%w: building id is required", ErrInvalidBuilding)
	}
	vt, err := ParseVehicleType(dto.VehicleType)
	if err != nil {
		return nil, err
	}
	if dto.RatePerHour == nil {
		return nil, fmt.Errorf("%w: missing", ErrInvalidRate)
	}
	if err := ValidateRate(*dto.RatePerHour); err != nil {
		return nil, err
	}
	return &Price{BuildingID: buildingID, VehicleType: vt, RatePerHour: *dto.RatePerHour}, nil
}

func ValidateRate(rate decimal.Decimal) error {
	if rate.IsNegative() || !rate.Equal(rate.Truncate(2)) {
		return fmt.Errorf("%w: %s", ErrInvalidRate, rate.String())
	}
	return nil
}
