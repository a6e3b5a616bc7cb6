package domain

import (
	"errors"
	"testing"
)

func TestParkingSpaceOccupyRelease(t *testing.T) {
	space, err := NewParkingSpace(1, ParkingSpaceDTO{Floor: 2, Number: 7, AllowedVehicleType: "CAR"})
	if err != nil {
		t.Fatalf("new space: %v", err)
	}
	if got := space.SpaceCode(); got != "Floor 2 - Space 7" {
		t.Fatalf("space code = %q", got)
	}
	if !space.IsAvailable() {
		t.Fatal("expected new space to be available")
	}
	if err := space.Occupy("s-1"); err != nil {
		t.Fatalf("occupy: %v", err)
	}
	if err := space.Occupy("s-2"); !errors.Is(err, ErrAlreadyOccupied) {
		t.Fatalf("second occupy err = %v, want %v", err, ErrAlreadyOccupied)
	}
	if space.CurrentSessionID.String != "s-1" {
		t.Fatalf("current session = %q, want s-1", space.CurrentSessionID.String)
	}
	space.Release()
	space.Release()
	if !space.IsAvailable() {
		t.Fatal("expected released space to be available")
	}
}

func TestNewParkingSpaceValidation(t *testing.T) {
	tests := []struct {
		name       string
		buildingID int
		dto        ParkingSpaceDTO
		want       error
	}{
		{name: "no building", dto: ParkingSpaceDTO{Floor: 1, Number: 1}, want: ErrInvalidSpace},
		{name: "floor zero", buildingID: 1, dto: ParkingSpaceDTO{Number: 1}, want: ErrInvalidSpace},
		{name: "bad vehicle", buildingID: 1, dto: ParkingSpaceDTO{Floor: 1, Number: 1, AllowedVehicleType: "BUS"}, want: ErrInvalidVehicleType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewParkingSpace(tt.buildingID, tt.dto); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseVehicleType(t *testing.T) {
	if v, err := ParseVehicleType("MOTORCYCLE"); err != nil || v != VehicleMotorcycle {
		t.Fatalf("parse MOTORCYCLE = %q, %v", v, err)
	}
	for _, in := range []string{"TRUCK", "car", " CAR ", "Motorcycle", ""} {
		if _, err := ParseVehicleType(in); !errors.Is(err, ErrInvalidVehicleType) {
			t.Fatalf("ParseVehicleType(%q) err = %v, want ErrInvalidVehicleType", in, err)
		}
	}
}
