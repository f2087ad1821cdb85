package schedule

import (
	"time"

	"github.com/samber/lo"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
)

// Filter returns the points races which took place before now.
// The order of races is kept.
func Filter(races []model.Race, now time.Time) []model.Race {
	return lo.Filter(races, func(r model.Race, _ int) bool {
		return r.Date.Before(now) && r.IsPointsRace()
	})
}
