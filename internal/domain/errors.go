package domain

import "errors"

var (
	ErrInvalidVehicleType = errors.New("vehicle type must be CAR or MOTORCYCLE")
	ErrInvalidRate        = errors.New("rate per hour must be a non-negative amount with at most two decimals")
	ErrMissingSpace       = errors.New("parking space is required")
	ErrAlreadyOccupied    = errors.New("parking space is already occupied")
	ErrNotActive          = errors.New("parking session is already finished")
	ErrInvalidBuilding    = errors.New("invalid building")
	ErrInvalidSpace       = errors.New("invalid parking space")
)
