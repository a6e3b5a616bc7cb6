package domain

import (
	"fmt"
	"strings"
)

type VehicleType string

const (
	VehicleCar        VehicleType = "CAR"
	VehicleMotorcycle VehicleType = "MOTORCYCLE"
)

// VehicleTypes lists every vehicle class in dashboard order.
var VehicleTypes = []VehicleType{VehicleCar, VehicleMotorcycle}

func (v VehicleType) Valid() bool {
	switch v {
	case VehicleCar, VehicleMotorcycle:
		return true
	}
	return false
}

// Lower is the lowercase form used by dashboard spots.
func (v VehicleType) Lower() string {
	return strings.ToLower(string(v))
}

// ParseVehicleType accepts exactly CAR or MOTORCYCLE.
func ParseVehicleType(s string) (VehicleType, error) {
	v := VehicleType(s)
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidVehicleType, s)
	}
	return v, nil
}
