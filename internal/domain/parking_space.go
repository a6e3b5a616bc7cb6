package domain

import (
	"fmt"
	"time"

	"gopkg.in/guregu/null.v4"
)

type ParkingSpace struct {
	ID                 int         `json:"id"`
	BuildingID         int         `json:"building_id"`
	Floor              int         `json:"floor"`
	Number             int         `json:"number"`
	AllowedVehicleType null.String `json:"allowed_vehicle_type"`
	IsForResidents     bool        `json:"is_for_residents"`
	CurrentSessionID   null.String `json:"current_session_id"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

type ParkingSpaceDTO struct {
	Floor              int    `json:"floor" binding:"required,min=1"`
	Number             int    `json:"number" binding:"required,min=1"`
	AllowedVehicleType string `json:"allowed_vehicle_type" binding:"omitempty,oneof=CAR MOTORCYCLE"`
	IsForResidents     bool   `json:"is_for_residents"`
}

func NewParkingSpace(buildingID int, dto ParkingSpaceDTO) (*ParkingSpace, error) {
	if buildingID <= 0 {
		return nil, fmt.Errorf("%w: building id is required", ErrInvalidSpace)
	}
	if dto.Floor < 1 || dto.Number < 1 {
		return nil, fmt.Errorf("%w: floor and number must be at least 1", ErrInvalidSpace)
	}
	space := &ParkingSpace{
		BuildingID:     buildingID,
		Floor:          dto.Floor,
		Number:         dto.Number,
		IsForResidents: dto.IsForResidents,
	}
	if dto.AllowedVehicleType != "" {
		vt, err := ParseVehicleType(dto.AllowedVehicleType)
		if err != nil {
			return nil, err
		}
		space.AllowedVehicleType = null.StringFrom(string(vt))
	}
	return space, nil
}

func (s *ParkingSpace) IsAvailable() bool {
	return !s.CurrentSessionID.Valid
}

// Occupy links the space to an active session.
func (s *ParkingSpace) Occupy(sessionID string) error {
	if !s.IsAvailable() {
		return fmt.Errorf("%w: space %d", ErrAlreadyOccupied, s.ID)
	}
	s.CurrentSessionID = null.StringFrom(sessionID)
	return nil
}

// Release clears the session link. Releasing a vacant space is a no-op.
func (s *ParkingSpace) Release() {
	s.CurrentSessionID = null.String{}
}

func (s *ParkingSpace) SpaceCode() string {
	return fmt.Sprintf("Floor %d - Space %d", s.Floor, s.Number)
}
