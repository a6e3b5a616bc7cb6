package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jascaniojs/parking-business-api/internal/config"
	"github.com/jascaniojs/parking-business-api/internal/domain"
	"github.com/jascaniojs/parking-business-api/internal/repository/sqlstore"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.OccupancyEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.OccupancyEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Events() []domain.OccupancyEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.OccupancyEvent(nil), p.events...)
}

type fixture struct {
	store     *sqlstore.Store
	buildings *BuildingService
	parking   *ParkingService
	occupancy *OccupancyService
	clock     *fakeClock
	events    *recordingPublisher
	building  *domain.Building
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{
		DBDriver:      config.DriverSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "parking.db"),
		DBLockTimeout: time.Second,
	}
	store, err := sqlstore.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	f := &fixture{
		store:     store,
		buildings: NewBuildingService(store),
		occupancy: NewOccupancyService(store),
		clock:     newFakeClock(),
		events:    &recordingPublisher{},
	}
	f.parking = NewParkingService(store, WithClock(f.clock.Now), WithEventPublisher(f.events))
	f.building, err = f.buildings.CreateBuilding(context.Background(), domain.BuildingDTO{
		Name: "Central Tower", Address: "1 Main St", TotalFloors: 3,
	})
	if err != nil {
		t.Fatalf("create building: %v", err)
	}
	return f
}

func (f *fixture) addSpace(t *testing.T, floor, number int, vt string, resident bool) *domain.ParkingSpace {
	t.Helper()
	space, err := f.buildings.CreateParkingSpace(context.Background(), f.building.ID, domain.ParkingSpaceDTO{
		Floor: floor, Number: number, AllowedVehicleType: vt, IsForResidents: resident,
	})
	if err != nil {
		t.Fatalf("create space: %v", err)
	}
	return space
}

func (f *fixture) setRate(t *testing.T, vt, rate string) {
	t.Helper()
	r := decimal.RequireFromString(rate)
	if _, err := f.buildings.SetPrice(context.Background(), f.building.ID, domain.PriceDTO{VehicleType: vt, RatePerHour: &r}); err != nil {
		t.Fatalf("set price: %v", err)
	}
}

func boolPtr(b bool) *bool { return &b }

func (f *fixture) checkIn(vt string, resident bool) (*domain.CheckInResult, error) {
	return f.parking.CheckIn(context.Background(), domain.CheckInDTO{
		BuildingID: f.building.ID, VehicleType: vt, IsResident: boolPtr(resident),
	})
}

func (f *fixture) checkOut(sessionID string, resident bool) (*domain.CheckOutResult, error) {
	return f.parking.CheckOut(context.Background(), domain.CheckOutDTO{
		ParkingSessionID: sessionID, IsResident: boolPtr(resident),
	})
}
