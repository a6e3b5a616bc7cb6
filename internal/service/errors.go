package service

import (
	"errors"

	"github.com/jascaniojs/parking-business-api/internal/domain"
)

var (
	ErrValidation             = errors.New("invalid input")
	ErrNoSpaceAvailable       = errors.New("no empty spaces available")
	ErrSessionNotFound        = errors.New("parking session not found")
	ErrSpaceNotFound          = errors.New("parking space not found")
	ErrBuildingNotFound       = errors.New("building not found")
	ErrSessionAlreadyFinished = errors.New("parking session is already finished")
	ErrResidencyMismatch      = errors.New("invalid isResident value")
	ErrRateNotConfigured      = errors.New("price not configured for this vehicle type")
	ErrSpaceConflict          = errors.New("parking space already exists")
)

// Kind groups errors by how a caller should react to them.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindStateConflict
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindStateConflict:
		return "state_conflict"
	case KindConfiguration:
		return "configuration"
	}
	return "internal"
}

// ClientCorrectable reports whether the error text may be shown to callers.
func (k Kind) ClientCorrectable() bool {
	switch k {
	case KindValidation, KindConflict, KindNotFound, KindStateConflict:
		return true
	}
	return false
}

func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrValidation),
		errors.Is(err, domain.ErrInvalidVehicleType),
		errors.Is(err, domain.ErrInvalidRate),
		errors.Is(err, domain.ErrMissingSpace),
		errors.Is(err, domain.ErrInvalidBuilding),
		errors.Is(err, domain.ErrInvalidSpace):
		return KindValidation
	case errors.Is(err, ErrNoSpaceAvailable), errors.Is(err, ErrSpaceConflict):
		return KindConflict
	case errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrSpaceNotFound),
		errors.Is(err, ErrBuildingNotFound):
		return KindNotFound
	case errors.Is(err, ErrSessionAlreadyFinished), errors.Is(err, ErrResidencyMismatch):
		return KindStateConflict
	case errors.Is(err, ErrRateNotConfigured):
		return KindConfiguration
	}
	return KindInternal
}
