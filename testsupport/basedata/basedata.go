package basedata

import (
	"time"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
)

// TestTime is the reference "now" used by tests. Races before it have been run.
func TestTime() time.Time {
	return time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)
}

func raceDate(s string) time.Time {
	t, _ := time.ParseInLocation("2006-01-02", s, time.UTC)
	return t
}

func SampleRoster() []model.Driver {
	return []model.Driver{
		{ID: 1, Name: "Driver One", RawManufacturer: "Chevy Camaro", Manufacturer: model.Chevrolet},
		{ID: 2, Name: "Driver Two", RawManufacturer: "Ford Mustang", Manufacturer: model.Ford},
		{ID: 3, Name: "Driver Three", RawManufacturer: "Toyota Camry", Manufacturer: model.Toyota},
		{ID: 4, Name: "Driver Four", RawManufacturer: "Chevy Camaro", Manufacturer: model.Chevrolet},
		{ID: 5, Name: "Driver Five", RawManufacturer: "Ford Mustang", Manufacturer: model.Ford},
	}
}

// SampleRaces returns two past cup points races, one xfinity points race,
// one exhibition race and one future race.
func SampleRaces() []model.Race {
	return []model.Race{
		{ID: 500, Series: model.SeriesCup, Season: 2023, Name: "Daytona 500",
			Date: raceDate("2023-02-19"), TypeID: model.RaceTypePoints},
		{ID: 501, Series: model.SeriesCup, Season: 2023, Name: "Clash",
			Date: raceDate("2023-02-05"), TypeID: 2},
		{ID: 502, Series: model.SeriesCup, Season: 2023, Name: "Fontana",
			Date: raceDate("2023-02-26"), TypeID: model.RaceTypePoints},
		{ID: 600, Series: model.SeriesXfinity, Season: 2023, Name: "Beef It's What's for Dinner 300",
			Date: raceDate("2023-02-18"), TypeID: model.RaceTypePoints},
		{ID: 503, Series: model.SeriesCup, Season: 2023, Name: "Phoenix",
			Date: raceDate("2023-11-05"), TypeID: model.RaceTypePoints},
	}
}

// SampleResults returns results for the races 500, 502 and 600
func SampleResults() []model.DriverResult {
	return []model.DriverResult{
		{RaceID: 500, DriverID: 1, Ps: 1},
		{RaceID: 500, DriverID: 2, Ps: 2},
		{RaceID: 500, DriverID: 3, Ps: 3},
		{RaceID: 500, DriverID: 4, Ps: 4},
		{RaceID: 500, DriverID: 5, Ps: 5},

		{RaceID: 502, DriverID: 5, Ps: 1},
		{RaceID: 502, DriverID: 3, Ps: 2},
		{RaceID: 502, DriverID: 4, Ps: 3},
		{RaceID: 502, DriverID: 1, Ps: 4},
		{RaceID: 502, DriverID: 2, Ps: 5},

		{RaceID: 600, DriverID: 3, Ps: 1},
		{RaceID: 600, DriverID: 4, Ps: 2},
		{RaceID: 600, DriverID: 2, Ps: 3},
	}
}
