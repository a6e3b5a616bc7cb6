package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jascaniojs/parking-business-api/internal/domain"
	"github.com/jascaniojs/parking-business-api/internal/repository"
)

type buildingRepository struct {
	c conn
}

const buildingColumns = `id, name, address, total_floors, created_at, updated_at`

func (r *buildingRepository) Create(ctx context.Context, b *domain.Building) (*domain.Building, error) {
	now := time.Now().UTC()
	query := `INSERT INTO buildings (name, address, total_floors, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?) RETURNING id`
	if err := r.c.queryRow(ctx, query, b.Name, b.Address, b.TotalFloors, now, now).Scan(&b.ID); err != nil {
		return nil, fmt.Errorf("BuildingRepository.Create: %w", classify(err))
	}
	b.CreatedAt, b.UpdatedAt = now, now
	return b, nil
}

func (r *buildingRepository) FindByID(ctx context.Context, id int) (*domain.Building, error) {
	query := `SELECT ` + buildingColumns + ` FROM buildings WHERE id = ?`
	b, err := scanBuilding(r.c.queryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("BuildingRepository.FindByID: %w", err)
	}
	return b, nil
}

func (r *buildingRepository) FindAll(ctx context.Context) ([]domain.Building, error) {
	rows, err := r.c.query(ctx, `SELECT `+buildingColumns+` FROM buildings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("BuildingRepository.FindAll: %w", err)
	}
	defer rows.Close()

	buildings := []domain.Building{}
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, fmt.Errorf("BuildingRepository.FindAll (scanning row): %w", err)
		}
		buildings = append(buildings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("BuildingRepository.FindAll (rows error): %w", err)
	}
	return buildings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBuilding(row rowScanner) (*domain.Building, error) {
	b := &domain.Building{}
	if err := row.Scan(&b.ID, &b.Name, &b.Address, &b.TotalFloors, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.CreatedAt = b.CreatedAt.In(time.UTC)
	b.UpdatedAt = b.UpdatedAt.In(time.UTC)
	return b, nil
}
