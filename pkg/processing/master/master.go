package master

import (
	"github.com/aarondl/opt/null"
	"github.com/samber/lo"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
)

// Build joins driver and race metadata onto the results (left join).
// Every result produces exactly one row, metadata that cannot be found stays unset.
func Build(
	results []model.DriverResult,
	drivers []model.Driver,
	races []model.Race,
) []model.MasterRow {
	driverLookup := lo.KeyBy(drivers, func(d model.Driver) int { return d.ID })
	raceLookup := lo.KeyBy(races, func(r model.Race) int { return r.ID })

	return lo.Map(results, func(res model.DriverResult, _ int) model.MasterRow {
		row := model.MasterRow{
			DriverResult: res,
			Manufacturer: model.UnknownManufacturer,
		}
		if d, ok := driverLookup[res.DriverID]; ok {
			row.DriverFound = true
			row.Manufacturer = d.Manufacturer
			if row.DriverName == "" {
				row.DriverName = d.Name
			}
		}
		if r, ok := raceLookup[res.RaceID]; ok {
			row.Series = null.From(r.Series)
			row.RaceName = null.From(r.Name)
			row.RaceDate = null.From(r.Date)
			row.TrackName = null.From(r.TrackName)
		}
		return row
	})
}
