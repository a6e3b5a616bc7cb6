package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

const (
	spotsPerAisle  = 5
	spotsPerStreet = 15
)

type SpotStatus string

const (
	SpotAvailable SpotStatus = "available"
	SpotOccupied  SpotStatus = "occupied"
)

// DashboardItem is one cell of a floor row: a spot, an aisle marker or a
// street break. Exactly one of the Is* flags is set.
type DashboardItem struct {
	IsSpot      bool       `json:"isSpot,omitempty"`
	IsAisle     bool       `json:"isAisle,omitempty"`
	IsStreet    bool       `json:"isStreet,omitempty"`
	ID          string     `json:"id,omitempty"`
	Status      SpotStatus `json:"status,omitempty"`
	Residential bool       `json:"residential,omitempty"`
	Vehicle     string     `json:"vehicle,omitempty"`
}

type DashboardFloor struct {
	Name string            `json:"name"`
	Rows [][]DashboardItem `json:"rows"`
}

type DashboardStats struct {
	Residential    int `json:"residential"`
	PaidCar        int `json:"paidCar"`
	PaidMotorcycle int `json:"paidMotorcycle"`
}

type DashboardFee struct {
	Car        decimal.Decimal `json:"car"`
	Motorcycle decimal.Decimal `json:"motorcycle"`
}

type Dashboard struct {
	PageTitle string           `json:"pageTitle"`
	Stats     DashboardStats   `json:"stats"`
	Fee       DashboardFee     `json:"fee"`
	Floors    []DashboardFloor `json:"floors"`
}

// BuildDashboard lays out a building's occupancy floor by floor.
func BuildDashboard(buildingName string, occupancy []OccupancyView, prices []Price) Dashboard {
	return Dashboard{
		PageTitle: buildingName,
		Stats:     dashboardStats(occupancy),
		Fee:       dashboardFee(prices),
		Floors:    dashboardFloors(occupancy),
	}
}

func dashboardStats(occupancy []OccupancyView) DashboardStats {
	var stats DashboardStats
	for _, v := range occupancy {
		if v.IsOccupied {
			continue
		}
		switch {
		case v.IsResident:
			stats.Residential++
		case v.VehicleType.String == string(VehicleCar):
			stats.PaidCar++
		case v.VehicleType.String == string(VehicleMotorcycle):
			stats.PaidMotorcycle++
		}
	}
	return stats
}

func dashboardFee(prices []Price) DashboardFee {
	fee := DashboardFee{Car: decimal.Zero, Motorcycle: decimal.Zero}
	var haveCar, haveMotorcycle bool
	for _, p := range prices {
		switch {
		case p.VehicleType == VehicleCar && !haveCar:
			fee.Car, haveCar = p.RatePerHour, true
		case p.VehicleType == VehicleMotorcycle && !haveMotorcycle:
			fee.Motorcycle, haveMotorcycle = p.RatePerHour, true
		}
	}
	return fee
}

func dashboardFloors(occupancy []OccupancyView) []DashboardFloor {
	byFloor := make(map[int][]OccupancyView)
	for _, v := range occupancy {
		byFloor[v.Floor] = append(byFloor[v.Floor], v)
	}
	floorNumbers := make([]int, 0, len(byFloor))
	for f := range byFloor {
		floorNumbers = append(floorNumbers, f)
	}
	sort.Ints(floorNumbers)

	floors := make([]DashboardFloor, 0, len(floorNumbers))
	for _, f := range floorNumbers {
		spaces := byFloor[f]
		sort.SliceStable(spaces, func(i, j int) bool { return spaces[i].Number < spaces[j].Number })
		floors = append(floors, DashboardFloor{
			Name: fmt.Sprintf("Floor %d", f),
			Rows: floorRows(spaces),
		})
	}
	return floors
}

func floorRows(spaces []OccupancyView) [][]DashboardItem {
	rows := [][]DashboardItem{}
	var row []DashboardItem
	inRow := 0
	for _, space := range spaces {
		if inRow > 0 && inRow%spotsPerAisle == 0 {
			row = append(row, DashboardItem{IsAisle: true})
		}
		row = append(row, dashboardSpot(space))
		inRow++
		if inRow%spotsPerStreet == 0 {
			rows = append(rows, row, []DashboardItem{{IsStreet: true}})
			row = nil
			inRow = 0
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

func dashboardSpot(v OccupancyView) DashboardItem {
	spot := DashboardItem{
		IsSpot: true,
		ID:     fmt.Sprintf("#%d", v.Number),
		Status: SpotAvailable,
	}
	if v.IsOccupied {
		spot.Status = SpotOccupied
	}
	if v.IsResident {
		spot.Residential = true
		if !v.IsOccupied {
			return spot
		}
	}
	if v.VehicleType.Valid {
		spot.Vehicle = VehicleType(v.VehicleType.String).Lower()
	}
	return spot
}
