package domain

import "gopkg.in/guregu/null.v4"

// OccupancyView is the read projection of one space.
type OccupancyView struct {
	SpaceID     int         `json:"space_id"`
	BuildingID  int         `json:"building_id"`
	Number      int         `json:"number"`
	Floor       int         `json:"floor"`
	VehicleType null.String `json:"vehicle_type"`
	IsOccupied  bool        `json:"is_occupied"`
	IsResident  bool        `json:"is_resident"`
}

// NewOccupancyView projects a space and, when occupied, its active session.
// Vacant resident spaces report no vehicle class.
func NewOccupancyView(space ParkingSpace, session *ParkingSession) OccupancyView {
	v := OccupancyView{
		SpaceID:    space.ID,
		BuildingID: space.BuildingID,
		Number:     space.Number,
		Floor:      space.Floor,
		IsOccupied: !space.IsAvailable(),
		IsResident: space.IsForResidents,
	}
	switch {
	case v.IsOccupied && session != nil:
		v.VehicleType = null.StringFrom(string(session.VehicleType))
	case space.IsForResidents:
	default:
		v.VehicleType = space.AllowedVehicleType
	}
	return v
}
