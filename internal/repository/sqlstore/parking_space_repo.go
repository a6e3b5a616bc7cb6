package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/guregu/null.v4"

	"github.com/jascaniojs/parking-business-api/internal/domain"
	"github.com/jascaniojs/parking-business-api/internal/repository"
)

type parkingSpaceRepository struct {
	c conn
}

const spaceColumns = `id, building_id, floor, number, allowed_vehicle_type, is_for_residents, current_session_id, created_at, updated_at`

func (r *parkingSpaceRepository) Create(ctx context.Context, s *domain.ParkingSpace) (*domain.ParkingSpace, error) {
	now := time.Now().UTC()
	query := `INSERT INTO parking_spaces (building_id, floor, number, allowed_vehicle_type, is_for_residents, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`
	err := r.c.queryRow(ctx, query,
		s.BuildingID, s.Floor, s.Number, s.AllowedVehicleType, s.IsForResidents, now, now,
	).Scan(&s.ID)
	if err != nil {
		err = classify(err)
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, fmt.Errorf("%w: %s already exists in building %d", repository.ErrDuplicateEntry, s.SpaceCode(), s.BuildingID)
		}
		return nil, fmt.Errorf("ParkingSpaceRepository.Create: %w", err)
	}
	s.CreatedAt, s.UpdatedAt = now, now
	return s, nil
}

func (r *parkingSpaceRepository) FindByID(ctx context.Context, id int) (*domain.ParkingSpace, error) {
	s, err := scanSpace(r.c.queryRow(ctx, `SELECT `+spaceColumns+` FROM parking_spaces WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingSpaceRepository.FindByID: %w", err)
	}
	return s, nil
}

func (r *parkingSpaceRepository) FindByBuildingID(ctx context.Context, buildingID int) ([]domain.ParkingSpace, error) {
	query := `SELECT ` + spaceColumns + ` FROM parking_spaces WHERE building_id = ? ORDER BY floor, number`
	rows, err := r.c.query(ctx, query, buildingID)
	if err != nil {
		return nil, fmt.Errorf("ParkingSpaceRepository.FindByBuildingID: %w", err)
	}
	defer rows.Close()

	spaces := []domain.ParkingSpace{}
	for rows.Next() {
		s, err := scanSpace(rows)
		if err != nil {
			return nil, fmt.Errorf("ParkingSpaceRepository.FindByBuildingID (scanning row): %w", err)
		}
		spaces = append(spaces, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ParkingSpaceRepository.FindByBuildingID (rows error): %w", err)
	}
	return spaces, nil
}

func (r *parkingSpaceRepository) FindAvailableForUpdate(ctx context.Context, c repository.SpaceCriteria) (*domain.ParkingSpace, error) {
	query, args := availableSpaceQuery(r.c.d, c, r.c.tx)
	s, err := scanSpace(r.c.queryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingSpaceRepository.FindAvailableForUpdate: %w", classify(err))
	}
	return s, nil
}

// availableSpaceQuery selects the lowest (floor, number) free space matching c.
// Inside a transaction the row is locked and rows locked elsewhere are skipped.
func availableSpaceQuery(d dialect, c repository.SpaceCriteria, locked bool) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT ` + spaceColumns + ` FROM parking_spaces
	          WHERE building_id = ? AND current_session_id IS NULL AND is_for_residents = ?`)
	args := []any{c.BuildingID, c.IsResident}
	if !c.IsResident {
		b.WriteString(` AND allowed_vehicle_type = ?`)
		args = append(args, string(c.VehicleType))
	}
	b.WriteString(` ORDER BY floor, number LIMIT 1`)
	if locked {
		b.WriteString(d.skipLock)
	}
	return b.String(), args
}

func (r *parkingSpaceRepository) Occupy(ctx context.Context, spaceID int, sessionID string) error {
	query := `UPDATE parking_spaces SET current_session_id = ?, updated_at = ?
	          WHERE id = ? AND current_session_id IS NULL`
	res, err := r.c.exec(ctx, query, sessionID, time.Now().UTC(), spaceID)
	if err != nil {
		return fmt.Errorf("ParkingSpaceRepository.Occupy: %w", classify(err))
	}
	return requireRow(res, "ParkingSpaceRepository.Occupy")
}

func (r *parkingSpaceRepository) Release(ctx context.Context, spaceID int) error {
	query := `UPDATE parking_spaces SET current_session_id = NULL, updated_at = ? WHERE id = ?`
	res, err := r.c.exec(ctx, query, time.Now().UTC(), spaceID)
	if err != nil {
		return fmt.Errorf("ParkingSpaceRepository.Release: %w", classify(err))
	}
	return requireRow(res, "ParkingSpaceRepository.Release")
}

func (r *parkingSpaceRepository) FindOccupancy(ctx context.Context, buildingID *int) ([]domain.OccupancyView, error) {
	query := `SELECT s.id, s.building_id, s.floor, s.number, s.allowed_vehicle_type, s.is_for_residents,
	                 s.current_session_id, ps.vehicle_type
	          FROM parking_spaces s
	          LEFT JOIN parking_sessions ps ON ps.id = s.current_session_id`
	var args []any
	if buildingID != nil {
		query += ` WHERE s.building_id = ?`
		args = append(args, *buildingID)
	}
	query += ` ORDER BY s.building_id, s.floor, s.number`

	rows, err := r.c.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ParkingSpaceRepository.FindOccupancy: %w", err)
	}
	defer rows.Close()

	views := []domain.OccupancyView{}
	for rows.Next() {
		var s domain.ParkingSpace
		var sessionVehicle null.String
		if err := rows.Scan(
			&s.ID, &s.BuildingID, &s.Floor, &s.Number, &s.AllowedVehicleType, &s.IsForResidents,
			&s.CurrentSessionID, &sessionVehicle,
		); err != nil {
			return nil, fmt.Errorf("ParkingSpaceRepository.FindOccupancy (scanning row): %w", err)
		}
		var session *domain.ParkingSession
		if sessionVehicle.Valid {
			session = &domain.ParkingSession{
				ID:          s.CurrentSessionID.String,
				VehicleType: domain.VehicleType(sessionVehicle.String),
			}
		}
		views = append(views, domain.NewOccupancyView(s, session))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ParkingSpaceRepository.FindOccupancy (rows error): %w", err)
	}
	return views, nil
}

func scanSpace(row rowScanner) (*domain.ParkingSpace, error) {
	s := &domain.ParkingSpace{}
	if err := row.Scan(
		&s.ID, &s.BuildingID, &s.Floor, &s.Number, &s.AllowedVehicleType, &s.IsForResidents,
		&s.CurrentSessionID, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.CreatedAt = s.CreatedAt.In(time.UTC)
	s.UpdatedAt = s.UpdatedAt.In(time.UTC)
	return s, nil
}

func requireRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s (checking rows affected): %w", op, err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
