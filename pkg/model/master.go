package model

import (
	"time"

	"github.com/aarondl/opt/null"
)

// MasterRow joins a DriverResult with driver and race metadata.
// Metadata not found during the join stays unset.
type MasterRow struct {
	DriverResult
	Manufacturer Manufacturer        `json:"manufacturer"`
	DriverFound  bool                `json:"driverFound"`
	Series       null.Val[Series]    `json:"series"`
	RaceName     null.Val[string]    `json:"raceName"`
	RaceDate     null.Val[time.Time] `json:"raceDate"`
	TrackName    null.Val[string]    `json:"trackName"`
}
