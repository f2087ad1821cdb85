package standings

import (
	"errors"
	"fmt"

	"github.com/aarondl/opt/null"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
)

// ErrNoEntries is returned if a percentage is requested for a manufacturer
// without standing rows in the requested scope.
var ErrNoEntries = errors.New("no race entries")

func (s *Standings) scope(m model.Manufacturer, f model.SeriesFilter) []model.StandingRow {
	return lo.Filter(s.rows, func(r model.StandingRow, _ int) bool {
		return r.Manufacturer == m && f.Matches(r.Series)
	})
}

// Entries returns the number of standing rows of the manufacturer within the scope
func (s *Standings) Entries(m model.Manufacturer, f model.SeriesFilter) int {
	return len(s.scope(m, f))
}

func (s *Standings) TotalWins(m model.Manufacturer, f model.SeriesFilter) int {
	return lo.CountBy(s.scope(m, f), func(r model.StandingRow) bool { return r.Ps == 1 })
}

// WinPercentage returns wins/entries*100. The entries are the races the manufacturer
// took part in within the scope, not the number of races of the schedule.
func (s *Standings) WinPercentage(m model.Manufacturer, f model.SeriesFilter) (decimal.Decimal, error) {
	entries := s.Entries(m, f)
	if entries == 0 {
		return decimal.Zero, fmt.Errorf("%w for %s in series %s", ErrNoEntries, m, f)
	}
	return decimal.NewFromInt(int64(s.TotalWins(m, f))).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(entries))), nil
}

func (s *Standings) TotalPoints(m model.Manufacturer, f model.SeriesFilter) int {
	return lo.SumBy(s.scope(m, f), func(r model.StandingRow) int { return r.Points })
}

// CumulativePoints returns the standing rows of the manufacturer in chronological order
// with the running total of points.
func (s *Standings) CumulativePoints(m model.Manufacturer, f model.SeriesFilter) []model.CumulativeRow {
	sum := 0
	return lo.Map(s.scope(m, f), func(r model.StandingRow, _ int) model.CumulativeRow {
		sum += r.Points
		return model.CumulativeRow{StandingRow: r, CumSum: sum}
	})
}

// Summary returns wins, win percentage and points for every manufacturer
func (s *Standings) Summary(f model.SeriesFilter) []model.ManufacturerSummary {
	return lo.Map(model.Manufacturers, func(m model.Manufacturer, _ int) model.ManufacturerSummary {
		ret := model.ManufacturerSummary{
			Manufacturer: m,
			Races:        s.Entries(m, f),
			Wins:         s.TotalWins(m, f),
			Points:       s.TotalPoints(m, f),
		}
		if pct, err := s.WinPercentage(m, f); err == nil {
			ret.WinPct = null.From(pct.Round(2))
		}
		return ret
	})
}
