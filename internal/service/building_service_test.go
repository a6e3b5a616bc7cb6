package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jascaniojs/parking-business-api/internal/domain"
)

func TestCreateParkingSpaceRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addSpace(t, 1, 1, "CAR", false)

	_, err := f.buildings.CreateParkingSpace(ctx, f.building.ID, domain.ParkingSpaceDTO{Floor: 1, Number: 1, AllowedVehicleType: "CAR"})
	if !errors.Is(err, ErrSpaceConflict) || KindOf(err) != KindConflict {
		t.Fatalf("duplicate err = %v", err)
	}

	_, err = f.buildings.CreateParkingSpace(ctx, f.building.ID, domain.ParkingSpaceDTO{Floor: 4, Number: 1})
	if KindOf(err) != KindValidation {
		t.Fatalf("floor above building err = %v", err)
	}

	_, err = f.buildings.CreateParkingSpace(ctx, f.building.ID+10, domain.ParkingSpaceDTO{Floor: 1, Number: 1})
	if !errors.Is(err, ErrBuildingNotFound) {
		t.Fatalf("unknown building err = %v", err)
	}

	spaces, err := f.buildings.ListParkingSpaces(ctx, f.building.ID)
	if err != nil || len(spaces) != 1 {
		t.Fatalf("spaces = %+v, %v", spaces, err)
	}
}

func TestSetPrice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bad := decimal.RequireFromString("-1")
	if _, err := f.buildings.SetPrice(ctx, f.building.ID, domain.PriceDTO{VehicleType: "CAR", RatePerHour: &bad}); KindOf(err) != KindValidation {
		t.Fatalf("negative rate err = %v", err)
	}

	f.setRate(t, "CAR", "5.00")
	f.setRate(t, "CAR", "6.00")
	f.setRate(t, "MOTORCYCLE", "2.00")
	prices, err := f.buildings.ListPrices(ctx, f.building.ID)
	if err != nil {
		t.Fatalf("list prices: %v", err)
	}
	if len(prices) != 2 || !prices[0].RatePerHour.Equal(decimal.NewFromInt(6)) {
		t.Fatalf("prices = %+v", prices)
	}
}

func TestCreateBuildingValidation(t *testing.T) {
	f := newFixture(t)
	_, err := f.buildings.CreateBuilding(context.Background(), domain.BuildingDTO{Name: " ", Address: "x", TotalFloors: 1})
	if KindOf(err) != KindValidation {
		t.Fatalf("err = %v", err)
	}
	all, err := f.buildings.ListBuildings(context.Background())
	if err != nil || len(all) != 1 {
		t.Fatalf("buildings = %+v, %v", all, err)
	}
}
