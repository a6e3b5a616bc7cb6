package repository

import (
	"context"
	"errors"

	"github.com/jascaniojs/parking-business-api/internal/domain"
)

var ErrNotFound = errors.New("record not found")
var ErrDuplicateEntry = errors.New("record already exists")
var ErrLockTimeout = errors.New("timed out waiting for a row lock")

type BuildingRepository interface {
	Create(ctx context.Context, building *domain.Building) (*domain.Building, error)
	FindByID(ctx context.Context, id int) (*domain.Building, error)
	FindAll(ctx context.Context) ([]domain.Building, error)
}

// SpaceCriteria selects the spaces a session may be allocated to.
// Residents match any resident space; everyone else matches
// non-resident spaces of their vehicle class.
type SpaceCriteria struct {
	BuildingID  int
	VehicleType domain.VehicleType
	IsResident  bool
}

type ParkingSpaceRepository interface {
	Create(ctx context.Context, space *domain.ParkingSpace) (*domain.ParkingSpace, error)
	FindByID(ctx context.Context, id int) (*domain.ParkingSpace, error)
	FindByBuildingID(ctx context.Context, buildingID int) ([]domain.ParkingSpace, error)
	// FindAvailableForUpdate locks and returns the free matching space with
	// the lowest (floor, number). Rows locked by other transactions are skipped.
	FindAvailableForUpdate(ctx context.Context, c SpaceCriteria) (*domain.ParkingSpace, error)
	// Occupy links a vacant space to a session; ErrNotFound if the space is
	// gone or already occupied.
	Occupy(ctx context.Context, spaceID int, sessionID string) error
	Release(ctx context.Context, spaceID int) error
	// FindOccupancy returns every space, optionally limited to one building,
	// with the active session of occupied ones.
	FindOccupancy(ctx context.Context, buildingID *int) ([]domain.OccupancyView, error)
}

type ParkingSessionRepository interface {
	Create(ctx context.Context, session *domain.ParkingSession) (*domain.ParkingSession, error)
	FindByID(ctx context.Context, id string) (*domain.ParkingSession, error)
	// FindByIDForUpdate locks the session row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id string) (*domain.ParkingSession, error)
	Update(ctx context.Context, session *domain.ParkingSession) (*domain.ParkingSession, error)
	// FindCompleted pages completed non-resident sessions, newest check-out first.
	FindCompleted(ctx context.Context, q domain.HistoryQuery) ([]domain.ParkingSession, int, error)
}

type PriceRepository interface {
	// FindByBuildingAndVehicle returns the lowest-id price for the pair.
	FindByBuildingAndVehicle(ctx context.Context, buildingID int, vt domain.VehicleType) (*domain.Price, error)
	FindByBuildingID(ctx context.Context, buildingID int) ([]domain.Price, error)
	Upsert(ctx context.Context, price *domain.Price) (*domain.Price, error)
}

// Repos groups the repositories bound to one connection or transaction.
type Repos interface {
	Buildings() BuildingRepository
	Spaces() ParkingSpaceRepository
	Sessions() ParkingSessionRepository
	Prices() PriceRepository
}

// Store runs fn inside a single transaction; a non-nil return rolls it back.
type Store interface {
	Repos
	WithTx(ctx context.Context, fn func(Repos) error) error
	Ping(ctx context.Context) error
	Close() error
}
