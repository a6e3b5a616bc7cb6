package domain

import (
	"fmt"
	"strings"
	"time"
)

type Building struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	TotalFloors int       `json:"total_floors"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BuildingDTO struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address" binding:"required"`
	TotalFloors int    `json:"total_floors" binding:"required,min=1"`
}

func NewBuilding(dto BuildingDTO) (*Building, error) {
	name := strings.TrimSpace(dto.Name)
	address := strings.TrimSpace(dto.Address)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name is required", ErrInvalidBuilding)
	case address == "":
		return nil, fmt.Errorf("%w: address is required", ErrInvalidBuilding)
	case dto.TotalFloors < 1:
		return nil, fmt.Errorf("%w: total floors must be at least 1", ErrInvalidBuilding)
	}
	return &Building{Name: name, Address: address, TotalFloors: dto.TotalFloors}, nil
}
