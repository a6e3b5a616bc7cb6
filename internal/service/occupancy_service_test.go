package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestGetOccupation(t *testing.T) {
	f := newFixture(t)
	f.setRate(t, "CAR", "5.00")
	car := f.addSpace(t, 1, 1, "CAR", false)
	resident := f.addSpace(t, 1, 2, "CAR", true)
	f.addSpace(t, 2, 1, "MOTORCYCLE", false)

	if _, err := f.checkIn("MOTORCYCLE", true); err != nil {
		t.Fatalf("resident check in: %v", err)
	}

	views, err := f.occupancy.GetOccupation(context.Background())
	if err != nil {
		t.Fatalf("occupation: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("views = %d, want 3", len(views))
	}
	if views[0].SpaceID != car.ID || views[0].IsOccupied || views[0].VehicleType.String != "CAR" {
		t.Fatalf("car view = %+v", views[0])
	}
	if views[1].SpaceID != resident.ID || !views[1].IsOccupied || views[1].VehicleType.String != "MOTORCYCLE" {
		t.Fatalf("resident view = %+v", views[1])
	}
	if views[2].Floor != 2 || views[2].VehicleType.String != "MOTORCYCLE" {
		t.Fatalf("motorcycle view = %+v", views[2])
	}
}

func TestGetDashboard(t *testing.T) {
	f := newFixture(t)
	f.setRate(t, "CAR", "4.50")
	for i := 1; i <= 6; i++ {
		f.addSpace(t, 1, i, "CAR", false)
	}
	f.addSpace(t, 2, 1, "", true)

	if _, err := f.checkIn("CAR", false); err != nil {
		t.Fatalf("check in: %v", err)
	}

	d, err := f.occupancy.GetDashboard(context.Background(), f.building.ID)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if d.PageTitle != "Central Tower" {
		t.Fatalf("page title = %q", d.PageTitle)
	}
	if d.Stats.PaidCar != 5 || d.Stats.Residential != 1 || d.Stats.PaidMotorcycle != 0 {
		t.Fatalf("stats = %+v", d.Stats)
	}
	if !d.Fee.Car.Equal(decimal.RequireFromString("4.5")) || !d.Fee.Motorcycle.IsZero() {
		t.Fatalf("fee = %+v", d.Fee)
	}
	if len(d.Floors) != 2 || len(d.Floors[0].Rows[0]) != 7 {
		t.Fatalf("floors = %+v", d.Floors)
	}
	if d.Floors[0].Rows[0][0].Status != "occupied" {
		t.Fatalf("first spot = %+v", d.Floors[0].Rows[0][0])
	}
}

func TestGetDashboardUnknownBuilding(t *testing.T) {
	f := newFixture(t)
	_, err := f.occupancy.GetDashboard(context.Background(), f.building.ID+1)
	if !errors.Is(err, ErrBuildingNotFound) || KindOf(err) != KindNotFound {
		t.Fatalf("err = %v, want %v", err, ErrBuildingNotFound)
	}
}
