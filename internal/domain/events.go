package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OccupancyEventType string

const (
	EventCheckIn  OccupancyEventType = "check_in"
	EventCheckOut OccupancyEventType = "check_out"
)

// OccupancyEvent is pushed to live listeners after a check-in or check-out commits.
type OccupancyEvent struct {
	Type           OccupancyEventType `json:"type"`
	SessionID      string             `json:"session_id"`
	ParkingSpaceID int                `json:"parking_space_id"`
	BuildingID     int                `json:"building_id"`
	Floor          int                `json:"floor"`
	Number         int                `json:"number"`
	VehicleType    VehicleType        `json:"vehicle_type"`
	IsResident     bool               `json:"is_resident"`
	Charge         *decimal.Decimal   `json:"charge,omitempty"`
	OccurredAt     time.Time          `json:"occurred_at"`
}

// RoutingKey names the topic an event is published under.
func (e OccupancyEvent) RoutingKey() string {
	return "parking.session." + string(e.Type)
}
