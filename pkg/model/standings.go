package model

import (
	"time"

	"github.com/aarondl/opt/null"
	"github.com/shopspring/decimal"
)

// StandingRow is the best finisher of a manufacturer in a race together with
// the points awarded to the manufacturer.
type StandingRow struct {
	RaceID       int                 `json:"raceId"`
	Manufacturer Manufacturer        `json:"manufacturer"`
	Series       null.Val[Series]    `json:"series"`
	RaceName     null.Val[string]    `json:"raceName"`
	RaceDate     null.Val[time.Time] `json:"raceDate"`
	DriverID     int                 `json:"driverId"`
	DriverName   string              `json:"driverName"`
	Team         string              `json:"team"`
	Ps           int                 `json:"ps"`
	Points       int                 `json:"points"`
}

type CumulativeRow struct {
	StandingRow
	CumSum int `json:"cumsum"`
}

// ManufacturerSummary condenses the standing rows of a manufacturer within a series scope.
// WinPct is unset if the manufacturer has no entries in scope.
type ManufacturerSummary struct {
	Manufacturer Manufacturer              `json:"manufacturer"`
	Races        int                       `json:"races"`
	Wins         int                       `json:"wins"`
	WinPct       null.Val[decimal.Decimal] `json:"winPct"`
	Points       int                       `json:"points"`
}
