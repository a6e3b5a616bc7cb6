package service

import (
	"context"
	"errors"
	"log"

	"github.com/jascaniojs/parking-business-api/internal/domain"
	"github.com/jascaniojs/parking-business-api/internal/repository"
)

// OccupancyService serves read-only occupancy projections without locks.
type OccupancyService struct {
	store repository.Store
}

func NewOccupancyService(store repository.Store) *OccupancyService {
	return &OccupancyService{store: store}
}

func (s *OccupancyService) GetOccupation(ctx context.Context) ([]domain.OccupancyView, error) {
	ctx, span := tracer.Start(ctx, "OccupancyService.GetOccupation")
	defer span.End()

	views, err := s.store.Spaces().FindOccupancy(ctx, nil)
	if err != nil {
		log.Printf("OccupancyService: occupation query failed: %v", err)
		return nil, fail(span, err)
	}
	return views, nil
}

func (s *OccupancyService) GetDashboard(ctx context.Context, buildingID int) (*domain.Dashboard, error) {
	ctx, span := tracer.Start(ctx, "OccupancyService.GetDashboard")
	defer span.End()

	building, err := s.store.Buildings().FindByID(ctx, buildingID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fail(span, ErrBuildingNotFound)
	}
	if err != nil {
		return nil, fail(span, err)
	}

	views, err := s.store.Spaces().FindOccupancy(ctx, &building.ID)
	if err != nil {
		log.Printf("OccupancyService: occupancy for building %d failed: %v", building.ID, err)
		return nil, fail(span, err)
	}
	prices, err := s.store.Prices().FindByBuildingID(ctx, building.ID)
	if err != nil {
		log.Printf("OccupancyService: prices for building %d failed: %v", building.ID, err)
		return nil, fail(span, err)
	}

	dashboard := domain.BuildDashboard(building.Name, views, prices)
	return &dashboard, nil
}
