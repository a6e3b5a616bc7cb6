package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jascaniojs/parking-business-api/internal/config"
	"github.com/jascaniojs/parking-business-api/internal/repository/sqlstore"
	"github.com/jascaniojs/parking-business-api/internal/service"
)

const seedJSON = `{
  "building": {"name": "Riverside", "address": "3 Dock Rd", "totalFloors": 2},
  "prices": [
    {"vehicleType": "CAR", "ratePerHour": 3.5},
    {"vehicleType": "MOTORCYCLE", "ratePerHour": 1.2}
  ],
  "parkingSpaces": [
    {"range": [1, 4], "floor": 1, "isForResidents": false, "allowedVehicleType": "CAR"},
    {"range": [5, 6], "floor": 1, "isForResidents": false, "allowedVehicleType": "MOTORCYCLE"},
    {"range": [1, 3], "floor": 2, "isForResidents": true, "allowedVehicleType": null}
  ]
}`

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

func TestLoadAndRun(t *testing.T) {
	data, err := Load(writeSeed(t, seedJSON))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if data.ParkingSpaces[2].AllowedVehicleType.Valid {
		t.Fatal("null allowedVehicleType decoded as valid")
	}

	cfg := &config.Config{
		DBDriver:      config.DriverSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "parking.db"),
		DBLockTimeout: time.Second,
	}
	store, err := sqlstore.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	buildings := service.NewBuildingService(store)
	summary, err := Run(context.Background(), buildings, data)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Prices != 2 || summary.Spaces != 9 {
		t.Fatalf("summary = %+v", summary)
	}

	spaces, err := buildings.ListParkingSpaces(context.Background(), summary.Building.ID)
	if err != nil {
		t.Fatalf("list spaces: %v", err)
	}
	residents := 0
	for _, s := range spaces {
		if s.IsForResidents {
			residents++
		}
	}
	if len(spaces) != 9 || residents != 3 {
		t.Fatalf("spaces = %d, residents = %d", len(spaces), residents)
	}

	prices, err := buildings.ListPrices(context.Background(), summary.Building.ID)
	if err != nil {
		t.Fatalf("list prices: %v", err)
	}
	if len(prices) != 2 || prices[0].RatePerHour.StringFixed(2) != "3.50" {
		t.Fatalf("prices = %+v", prices)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := Load(writeSeed(t, "{")); err == nil {
		t.Fatal("expected error for malformed json")
	}
	bad := `{"building": {"name": "x", "address": "y", "totalFloors": 1},
	  "parkingSpaces": [{"range": [5, 2], "floor": 1, "allowedVehicleType": "CAR"}]}`
	if _, err := Load(writeSeed(t, bad)); err == nil {
		t.Fatal("expected error for inverted range")
	}
}

func TestRunRollsBackOnFailure(t *testing.T) {
	// Floor 5 exceeds the building height, so the last range fails.
	bad := `{
	  "building": {"name": "Half Built", "address": "9 Pier Ln", "totalFloors": 2},
	  "prices": [{"vehicleType": "CAR", "ratePerHour": 2}],
	  "parkingSpaces": [
	    {"range": [1, 3], "floor": 1, "isForResidents": false, "allowedVehicleType": "CAR"},
	    {"range": [1, 2], "floor": 5, "isForResidents": false, "allowedVehicleType": "CAR"}
	  ]
	}`
	data, err := Load(writeSeed(t, bad))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cfg := &config.Config{
		DBDriver:      config.DriverSQLite,
		SQLitePath:    filepath.Join(t.TempDir(), "parking.db"),
		DBLockTimeout: time.Second,
	}
	store, err := sqlstore.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	buildings := service.NewBuildingService(store)
	if _, err := Run(context.Background(), buildings, data); err == nil {
		t.Fatal("expected Run to fail")
	}
	all, err := buildings.ListBuildings(context.Background())
	if err != nil {
		t.Fatalf("list buildings: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("buildings after failed seed = %+v, want none", all)
	}

	// A corrected file seeds cleanly on the same database.
	data.ParkingSpaces[1].Floor = 2
	summary, err := Run(context.Background(), buildings, data)
	if err != nil {
		t.Fatalf("re-run: %v", err)
	}
	if summary.Spaces != 5 {
		t.Fatalf("spaces = %d, want 5", summary.Spaces)
	}
}
