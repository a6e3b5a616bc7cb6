package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jascaniojs/parking-business-api/internal/domain"
	"github.com/jascaniojs/parking-business-api/internal/repository"
)

// Allocator picks and locks spaces. Every method must run on the
// repositories of an open transaction.
type Allocator struct{}

// Reserve locks the free matching space with the lowest (floor, number).
// Resident sessions may use any resident space regardless of vehicle class.
func (Allocator) Reserve(ctx context.Context, spaces repository.ParkingSpaceRepository, buildingID int, vt domain.VehicleType, isResident bool) (*domain.ParkingSpace, error) {
	space, err := spaces.FindAvailableForUpdate(ctx, repository.SpaceCriteria{
		BuildingID:  buildingID,
		VehicleType: vt,
		IsResident:  isResident,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoSpaceAvailable
	}
	if err != nil {
		return nil, fmt.Errorf("reserve space: %w", err)
	}
	return space, nil
}

// Occupy links a reserved space to its session.
func (Allocator) Occupy(ctx context.Context, spaces repository.ParkingSpaceRepository, space *domain.ParkingSpace, sessionID string) error {
	if err := space.Occupy(sessionID); err != nil {
		return err
	}
	err := spaces.Occupy(ctx, space.ID, sessionID)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: space %d", domain.ErrAlreadyOccupied, space.ID)
	}
	if err != nil {
		return fmt.Errorf("occupy space: %w", err)
	}
	return nil
}

// Release frees a space. Releasing a vacant space succeeds.
func (Allocator) Release(ctx context.Context, spaces repository.ParkingSpaceRepository, space *domain.ParkingSpace) error {
	space.Release()
	err := spaces.Release(ctx, space.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrSpaceNotFound
	}
	if err != nil {
		return fmt.Errorf("release space: %w", err)
	}
	return nil
}
