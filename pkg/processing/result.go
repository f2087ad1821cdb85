package processing

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing/results"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing/standings"
)

// Result is the outcome of a single run
type Result struct {
	RunID     uuid.UUID
	Year      int
	CreatedAt time.Time
	Races     []model.Race // eligible races
	Master    []model.MasterRow
	Standings *standings.Standings
	Skipped   []results.SkippedRace
}

func (r *Result) SkippedCount() int {
	return len(r.Skipped)
}

// Partial reports whether races were skipped
func (r *Result) Partial() bool {
	return len(r.Skipped) > 0
}

// MasterRows returns the master rows within the series scope
func (r *Result) MasterRows(f model.SeriesFilter) []model.MasterRow {
	return lo.Filter(r.Master, func(row model.MasterRow, _ int) bool {
		return f.Matches(row.Series)
	})
}

// FinishPositions returns the finishing positions of all entries per manufacturer
func (r *Result) FinishPositions(f model.SeriesFilter) map[model.Manufacturer][]int {
	rows := r.MasterRows(f)
	ret := make(map[model.Manufacturer][]int, len(model.Manufacturers))
	for _, m := range model.Manufacturers {
		ret[m] = lo.FilterMap(rows, func(row model.MasterRow, _ int) (int, bool) {
			return row.Ps, row.Manufacturer == m
		})
	}
	return ret
}
