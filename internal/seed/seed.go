// Package seed loads a building, its prices and its parking spaces from a
// JSON description.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/guregu/null.v4"

	"github.com/jascaniojs/parking-business-api/internal/domain"
	"github.com/jascaniojs/parking-business-api/internal/service"
)

type Data struct {
	Building      BuildingData `json:"building"`
	Prices        []PriceData  `json:"prices"`
	ParkingSpaces []SpaceRange `json:"parkingSpaces"`
}

type BuildingData struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	TotalFloors int    `json:"totalFloors"`
}

type PriceData struct {
	VehicleType string          `json:"vehicleType"`
	RatePerHour decimal.Decimal `json:"ratePerHour"`
}

// SpaceRange describes spaces Range[0]..Range[1] (inclusive) on one floor.
type SpaceRange struct {
	Range              [2]int      `json:"range"`
	Floor              int         `json:"floor"`
	IsForResidents     bool        `json:"isForResidents"`
	AllowedVehicleType null.String `json:"allowedVehicleType"`
}

func (r SpaceRange) describe() string {
	if r.IsForResidents {
		return "resident spaces"
	}
	return r.AllowedVehicleType.String + " spaces"
}

type Summary struct {
	Building *domain.Building
	Prices   int
	Spaces   int
}

func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return &data, nil
}

func (d *Data) Validate() error {
	var errs []error
	for i, r := range d.ParkingSpaces {
		if r.Range[0] < 1 || r.Range[1] < r.Range[0] {
			errs = append(errs, fmt.Errorf("parkingSpaces[%d]: invalid range %v", i, r.Range))
		}
	}
	return errors.Join(errs...)
}

// Run creates the building, then its prices, then every space in each range,
// all in one transaction: a failure leaves nothing behind.
func Run(ctx context.Context, buildings *service.BuildingService, d *Data) (*Summary, error) {
	var summary *Summary
	err := buildings.InTx(ctx, func(tx *service.BuildingService) error {
		var err error
		summary, err = seedBuilding(ctx, tx, d)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Seed: created %d parking spaces", summary.Spaces)
	return summary, nil
}

func seedBuilding(ctx context.Context, buildings *service.BuildingService, d *Data) (*Summary, error) {
	log.Println("Seed: creating building...")
	b, err := buildings.CreateBuilding(ctx, domain.BuildingDTO{
		Name:        d.Building.Name,
		Address:     d.Building.Address,
		TotalFloors: d.Building.TotalFloors,
	})
	if err != nil {
		return nil, fmt.Errorf("create building: %w", err)
	}
	log.Printf("Seed: created building %s (ID: %d)", b.Name, b.ID)

	summary := &Summary{Building: b}
	for _, p := range d.Prices {
		rate := p.RatePerHour
		saved, err := buildings.SetPrice(ctx, b.ID, domain.PriceDTO{VehicleType: p.VehicleType, RatePerHour: &rate})
		if err != nil {
			return nil, fmt.Errorf("create %s price: %w", p.VehicleType, err)
		}
		summary.Prices++
		log.Printf("Seed: created pricing %s %s/hour", saved.VehicleType, saved.RatePerHour.StringFixed(2))
	}

	for _, r := range d.ParkingSpaces {
		for number := r.Range[0]; number <= r.Range[1]; number++ {
			_, err := buildings.CreateParkingSpace(ctx, b.ID, domain.ParkingSpaceDTO{
				Floor:              r.Floor,
				Number:             number,
				AllowedVehicleType: r.AllowedVehicleType.String,
				IsForResidents:     r.IsForResidents,
			})
			if err != nil {
				return nil, fmt.Errorf("create space %d on floor %d: %w", number, r.Floor, err)
			}
			summary.Spaces++
		}
		log.Printf("Seed: created spaces %d-%d: floor %d, %s", r.Range[0], r.Range[1], r.Floor, r.describe())
	}
	return summary, nil
}
