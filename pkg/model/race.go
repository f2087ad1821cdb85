package model

import "time"

const RaceTypePoints = 1

type Race struct {
	ID        int       `json:"id"`
	Series    Series    `json:"series"`
	Season    int       `json:"season"`
	Name      string    `json:"name"`
	TrackName string    `json:"trackName"`
	Date      time.Time `json:"date"`
	TypeID    int       `json:"typeId"`
}

func (r *Race) IsPointsRace() bool {
	return r.TypeID == RaceTypePoints
}

type Driver struct {
	ID              int          `json:"id"`
	Name            string       `json:"name"`
	Team            string       `json:"team"`
	RawManufacturer string       `json:"rawManufacturer"`
	Manufacturer    Manufacturer `json:"manufacturer"`
}

// DriverResult is the result of one driver in one race.
type DriverResult struct {
	RaceID     int    `json:"raceId"`
	DriverID   int    `json:"driverId"`
	DriverName string `json:"driverName"`
	Team       string `json:"team"`
	Ps         int    `json:"ps"` // finishing position, 1 = winner
}
