package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jascaniojs/parking-business-api/internal/domain"
	"github.com/jascaniojs/parking-business-api/internal/repository"
)

type parkingSessionRepository struct {
	c conn
}

const sessionColumns = `id, parking_space_id, vehicle_type, is_resident, rate_per_hour, check_in_at,
	check_out_at, calculated_charge, created_at, updated_at`

func (r *parkingSessionRepository) Create(ctx context.Context, s *domain.ParkingSession) (*domain.ParkingSession, error) {
	now := time.Now().UTC()
	query := `INSERT INTO parking_sessions
	          (id, parking_space_id, vehicle_type, is_resident, rate_per_hour, check_in_at, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.c.exec(ctx, query,
		s.ID, s.ParkingSpaceID, string(s.VehicleType), s.IsResident, s.RatePerHour, s.CheckInAt.UTC(), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("ParkingSessionRepository.Create: %w", classify(err))
	}
	s.CreatedAt, s.UpdatedAt = now, now
	return s, nil
}

func (r *parkingSessionRepository) FindByID(ctx context.Context, id string) (*domain.ParkingSession, error) {
	return r.findByID(ctx, id, "", "ParkingSessionRepository.FindByID")
}

func (r *parkingSessionRepository) FindByIDForUpdate(ctx context.Context, id string) (*domain.ParkingSession, error) {
	lock := ""
	if r.c.tx {
		lock = r.c.d.forUpdate
	}
	return r.findByID(ctx, id, lock, "ParkingSessionRepository.FindByIDForUpdate")
}

func (r *parkingSessionRepository) findByID(ctx context.Context, id, lock, op string) (*domain.ParkingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM parking_sessions WHERE id = ?` + lock
	s, err := scanSession(r.c.queryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	return s, nil
}

func (r *parkingSessionRepository) Update(ctx context.Context, s *domain.ParkingSession) (*domain.ParkingSession, error) {
	now := time.Now().UTC()
	query := `UPDATE parking_sessions
	          SET check_out_at = ?, calculated_charge = ?, updated_at = ?
	          WHERE id = ?`
	var checkOut any
	if s.CheckOutAt.Valid {
		checkOut = s.CheckOutAt.Time.UTC()
	}
	res, err := r.c.exec(ctx, query, checkOut, s.CalculatedCharge, now, s.ID)
	if err != nil {
		return nil, fmt.Errorf("ParkingSessionRepository.Update: %w", classify(err))
	}
	if err := requireRow(res, "ParkingSessionRepository.Update"); err != nil {
		return nil, err
	}
	s.UpdatedAt = now
	return s, nil
}

func (r *parkingSessionRepository) FindCompleted(ctx context.Context, q domain.HistoryQuery) ([]domain.ParkingSession, int, error) {
	where := []string{"check_out_at IS NOT NULL", "is_resident = ?"}
	args := []any{false}
	if q.StartDate != nil {
		where = append(where, "check_in_at >= ?")
		args = append(args, q.StartDate.UTC())
	}
	if q.EndDate != nil {
		where = append(where, "check_out_at <= ?")
		args = append(args, q.EndDate.UTC())
	}
	if q.ParkingSpaceID != nil {
		where = append(where, "parking_space_id = ?")
		args = append(args, *q.ParkingSpaceID)
	}
	cond := " WHERE " + strings.Join(where, " AND ")

	var total int
	if err := r.c.queryRow(ctx, `SELECT COUNT(*) FROM parking_sessions`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ParkingSessionRepository.FindCompleted (count): %w", err)
	}

	query := `SELECT ` + sessionColumns + ` FROM parking_sessions` + cond +
		` ORDER BY check_out_at DESC, id DESC LIMIT ? OFFSET ?`
	rows, err := r.c.query(ctx, query, append(args, q.Limit, q.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("ParkingSessionRepository.FindCompleted: %w", err)
	}
	defer rows.Close()

	sessions := []domain.ParkingSession{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ParkingSessionRepository.FindCompleted (scanning row): %w", err)
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ParkingSessionRepository.FindCompleted (rows error): %w", err)
	}
	return sessions, total, nil
}

func scanSession(row rowScanner) (*domain.ParkingSession, error) {
	s := &domain.ParkingSession{}
	var vehicleType string
	if err := row.Scan(
		&s.ID, &s.ParkingSpaceID, &vehicleType, &s.IsResident, &s.RatePerHour, &s.CheckInAt,
		&s.CheckOutAt, &s.CalculatedCharge, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.VehicleType = domain.VehicleType(vehicleType)
	s.CheckInAt = s.CheckInAt.In(time.UTC)
	if s.CheckOutAt.Valid {
		s.CheckOutAt.Time = s.CheckOutAt.Time.In(time.UTC)
	}
	s.CreatedAt = s.CreatedAt.In(time.UTC)
	s.UpdatedAt = s.UpdatedAt.In(time.UTC)
	return s, nil
}
