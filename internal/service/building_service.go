package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jascaniojs/parking-business-api/internal/domain"
	"github.com/jascaniojs/parking-business-api/internal/repository"
)

// BuildingService administers buildings, their spaces and their prices.
type BuildingService struct {
	store repository.Store
	repos repository.Repos
}

func NewBuildingService(store repository.Store) *BuildingService {
	return &BuildingService{store: store, repos: store}
}

// InTx runs fn with a BuildingService bound to a single transaction; any
// error rolls back everything fn created. fn must not call InTx again.
func (s *BuildingService) InTx(ctx context.Context, fn func(tx *BuildingService) error) error {
	return s.store.WithTx(ctx, func(r repository.Repos) error {
		return fn(&BuildingService{store: s.store, repos: r})
	})
}

func (s *BuildingService) CreateBuilding(ctx context.Context, dto domain.BuildingDTO) (*domain.Building, error) {
	b, err := domain.NewBuilding(dto)
	if err != nil {
		return nil, err
	}
	created, err := s.repos.Buildings().Create(ctx, b)
	if err != nil {
		return nil, err
	}
	log.Printf("BuildingService: created building %d (%s)", created.ID, created.Name)
	return created, nil
}

func (s *BuildingService) GetBuilding(ctx context.Context, id int) (*domain.Building, error) {
	b, err := s.repos.Buildings().FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBuildingNotFound
	}
	return b, err
}

func (s *BuildingService) ListBuildings(ctx context.Context) ([]domain.Building, error) {
	return s.repos.Buildings().FindAll(ctx)
}

// CreateParkingSpace adds a space to an existing building. Floors beyond the
// building's height are rejected.
func (s *BuildingService) CreateParkingSpace(ctx context.Context, buildingID int, dto domain.ParkingSpaceDTO) (*domain.ParkingSpace, error) {
	b, err := s.GetBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	space, err := domain.NewParkingSpace(b.ID, dto)
	if err != nil {
		return nil, err
	}
	if space.Floor > b.TotalFloors {
		return nil, fmt.Errorf("%w: floor %d exceeds %d floors of building %d", domain.ErrInvalidSpace, space.Floor, b.TotalFloors, b.ID)
	}
	created, err := s.repos.Spaces().Create(ctx, space)
	if errors.Is(err, repository.ErrDuplicateEntry) {
		return nil, fmt.Errorf("%w: %s", ErrSpaceConflict, space.SpaceCode())
	}
	return created, err
}

func (s *BuildingService) ListParkingSpaces(ctx context.Context, buildingID int) ([]domain.ParkingSpace, error) {
	if _, err := s.GetBuilding(ctx, buildingID); err != nil {
		return nil, err
	}
	return s.repos.Spaces().FindByBuildingID(ctx, buildingID)
}

// SetPrice creates or replaces the hourly rate of one vehicle class.
// Open sessions keep the rate they were created with.
func (s *BuildingService) SetPrice(ctx context.Context, buildingID int, dto domain.PriceDTO) (*domain.Price, error) {
	if _, err := s.GetBuilding(ctx, buildingID); err != nil {
		return nil, err
	}
	p, err := domain.NewPrice(buildingID, dto)
	if err != nil {
		return nil, err
	}
	saved, err := s.repos.Prices().Upsert(ctx, p)
	if err != nil {
		return nil, err
	}
	log.Printf("BuildingService: building %d %s rate set to %s", buildingID, saved.VehicleType, saved.RatePerHour.StringFixed(2))
	return saved, nil
}

func (s *BuildingService) ListPrices(ctx context.Context, buildingID int) ([]domain.Price, error) {
	if _, err := s.GetBuilding(ctx, buildingID); err != nil {
		return nil, err
	}
	return s.repos.Prices().FindByBuildingID(ctx, buildingID)
}
