package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/guregu/null.v4"
)

const millisecondsPerHour = 3_600_000

var msPerHour = decimal.NewFromInt(millisecondsPerHour)

type ParkingSession struct {
	ID               string              `json:"id"`
	ParkingSpaceID   int                 `json:"parking_space_id"`
	VehicleType      VehicleType         `json:"vehicle_type"`
	IsResident       bool                `json:"is_resident"`
	RatePerHour      decimal.Decimal     `json:"rate_per_hour"`
	CheckInAt        time.Time           `json:"check_in_at"`
	CheckOutAt       null.Time           `json:"check_out_at"`
	CalculatedCharge decimal.NullDecimal `json:"calculated_charge"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// NewParkingSession opens an ACTIVE session. The rate is frozen for the
// lifetime of the session; the caller assigns ID before persisting.
func NewParkingSession(spaceID int, vehicleType VehicleType, isResident bool, rate decimal.Decimal, now time.Time) (*ParkingSession, error) {
	if spaceID <= 0 {
		return nil, ErrMissingSpace
	}
	if !vehicleType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVehicleType, vehicleType)
	}
	if err := ValidateRate(rate); err != nil {
		return nil, err
	}
	return &ParkingSession{
		ParkingSpaceID: spaceID,
		VehicleType:    vehicleType,
		IsResident:     isResident,
		RatePerHour:    rate,
		CheckInAt:      now.UTC(),
	}, nil
}

func (s *ParkingSession) IsActive() bool {
	return !s.CheckOutAt.Valid
}

func (s *ParkingSession) end(now time.Time) time.Time {
	if s.CheckOutAt.Valid {
		return s.CheckOutAt.Time
	}
	return now
}

func (s *ParkingSession) elapsedMillis(now time.Time) int64 {
	return s.end(now).Sub(s.CheckInAt).Milliseconds()
}

// Duration returns the elapsed time at millisecond precision.
func (s *ParkingSession) Duration(now time.Time) time.Duration {
	return time.Duration(s.elapsedMillis(now)) * time.Millisecond
}

// DurationHours returns the exact elapsed hours, unrounded.
func (s *ParkingSession) DurationHours(now time.Time) float64 {
	return float64(s.elapsedMillis(now)) / millisecondsPerHour
}

// CalculateCharge is zero for residents, otherwise elapsed hours times the
// frozen rate, rounded half away from zero to cents.
func (s *ParkingSession) CalculateCharge(now time.Time) decimal.Decimal {
	if s.IsResident {
		return decimal.Zero
	}
	ms := decimal.NewFromInt(s.elapsedMillis(now))
	return ms.Mul(s.RatePerHour).DivRound(msPerHour, 2)
}

// CheckOut closes an active session exactly once.
func (s *ParkingSession) CheckOut(now time.Time) error {
	if !s.IsActive() {
		return ErrNotActive
	}
	now = now.UTC()
	if now.Before(s.CheckInAt) {
		now = s.CheckInAt
	}
	s.CheckOutAt = null.TimeFrom(now)
	s.CalculatedCharge = decimal.NewNullDecimal(s.CalculateCharge(now))
	return nil
}

type CheckInDTO struct {
	BuildingID  int    `json:"building_id" binding:"required,gt=0"`
	VehicleType string `json:"vehicle_type" binding:"required,oneof=CAR MOTORCYCLE"`
	IsResident  *bool  `json:"is_resident" binding:"required"`
}

type CheckInResult struct {
	ParkingSessionID string `json:"parking_session_id"`
	ParkingSpaceID   int    `json:"parking_space_id"`
}

type CheckOutDTO struct {
	ParkingSessionID string `json:"parking_session_id" binding:"required,uuid"`
	IsResident       *bool  `json:"is_resident" binding:"required"`
}

type CheckOutResult struct {
	DurationHours    float64         `json:"duration_hours"`
	ParkingSpaceID   int             `json:"parking_space_id"`
	CalculatedCharge decimal.Decimal `json:"calculated_charge"`
	RatePerHour      decimal.Decimal `json:"rate_per_hour"`
}
