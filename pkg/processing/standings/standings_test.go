//nolint:funlen // ok for tests
package standings

import (
	"testing"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing/master"
	"github.com/mpapenbr/nascar-mfg-standings/testsupport/basedata"
)

var cup = model.FilterFor(model.SeriesCup)

func sampleMaster() []model.MasterRow {
	return master.Build(basedata.SampleResults(), basedata.SampleRoster(), basedata.SampleRaces())
}

type rowKey struct {
	RaceID int
	Mfg    model.Manufacturer
	Driver int
	Ps     int
	Points int
}

func keys(rows []model.StandingRow) []rowKey {
	return lo.Map(rows, func(r model.StandingRow, _ int) rowKey {
		return rowKey{r.RaceID, r.Manufacturer, r.DriverID, r.Ps, r.Points}
	})
}

func TestAggregate(t *testing.T) {
	s := Aggregate(sampleMaster())

	// chronological: 600 (02-18), 500 (02-19), 502 (02-26)
	want := []rowKey{
		{600, model.Chevrolet, 4, 2, 39},
		{600, model.Ford, 2, 3, 38},
		{600, model.Toyota, 3, 1, 40},
		{500, model.Chevrolet, 1, 1, 40},
		{500, model.Ford, 2, 2, 39},
		{500, model.Toyota, 3, 3, 38},
		{502, model.Chevrolet, 4, 3, 38},
		{502, model.Ford, 5, 1, 40},
		{502, model.Toyota, 3, 2, 39},
	}
	if diff := cmp.Diff(want, keys(s.Rows(model.SeriesFilterAll))); diff != "" {
		t.Errorf("Aggregate() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, RuleSimple, s.ScoringRule())
}

func TestAggregateGraduated(t *testing.T) {
	s := Aggregate(sampleMaster(), WithScoringRule(RuleGraduated))
	got := lo.Map(s.Rows(cup), func(r model.StandingRow, _ int) int { return r.Points })
	assert.Equal(t, []int{40, 34, 33, 33, 40, 34}, got)
}

func TestAggregateBestEntryPerManufacturer(t *testing.T) {
	rows := sampleMaster()
	s := Aggregate(rows)
	for _, sr := range s.Rows(model.SeriesFilterAll) {
		minPs := lo.Min(lo.FilterMap(rows, func(r model.MasterRow, _ int) (int, bool) {
			return r.Ps, r.RaceID == sr.RaceID && r.Manufacturer == sr.Manufacturer
		}))
		assert.Equal(t, minPs, sr.Ps, "race %d %s", sr.RaceID, sr.Manufacturer)
	}
	// one row per (race, manufacturer)
	grouped := lo.GroupBy(s.Rows(model.SeriesFilterAll), func(r model.StandingRow) rowKey {
		return rowKey{RaceID: r.RaceID, Mfg: r.Manufacturer}
	})
	for k, v := range grouped {
		assert.Len(t, v, 1, "%+v", k)
	}
}

func TestAggregateTies(t *testing.T) {
	rows := []model.MasterRow{
		{DriverResult: model.DriverResult{RaceID: 1, DriverID: 7, Ps: 3}, Manufacturer: model.Ford},
		{DriverResult: model.DriverResult{RaceID: 1, DriverID: 4, Ps: 3}, Manufacturer: model.Ford},
		{DriverResult: model.DriverResult{RaceID: 1, DriverID: 2, Ps: 5}, Manufacturer: model.Ford},
	}

	s := Aggregate(rows)
	assert.Equal(t, []rowKey{{1, model.Ford, 4, 3, 38}}, keys(s.Rows(model.SeriesFilterAll)))

	s = Aggregate(rows, WithTiePolicy(TieKeepAll))
	assert.Equal(t, []rowKey{
		{1, model.Ford, 7, 3, 38},
		{1, model.Ford, 4, 3, 38},
	}, keys(s.Rows(model.SeriesFilterAll)))
}

func TestAggregateIgnoresUnknownManufacturer(t *testing.T) {
	rows := []model.MasterRow{
		{DriverResult: model.DriverResult{RaceID: 1, DriverID: 1, Ps: 1}, Manufacturer: model.UnknownManufacturer},
		{DriverResult: model.DriverResult{RaceID: 1, DriverID: 2, Ps: 2}, Manufacturer: model.Toyota},
	}
	s := Aggregate(rows)
	assert.Equal(t, []rowKey{{1, model.Toyota, 2, 2, 39}}, keys(s.Rows(model.SeriesFilterAll)))
	assert.Equal(t, 0, s.TotalWins(model.Toyota, model.SeriesFilterAll))
}

func TestAggregateUndatedRacesLast(t *testing.T) {
	rows := []model.MasterRow{
		{DriverResult: model.DriverResult{RaceID: 1, DriverID: 1, Ps: 1}, Manufacturer: model.Ford},
		{
			DriverResult: model.DriverResult{RaceID: 2, DriverID: 1, Ps: 2},
			Manufacturer: model.Ford,
			RaceDate:     null.From(time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)),
		},
	}
	s := Aggregate(rows)
	assert.Equal(t, []int{2, 1}, lo.Map(s.Rows(model.SeriesFilterAll),
		func(r model.StandingRow, _ int) int { return r.RaceID }))
	assert.Equal(t, 2, s.Races(model.SeriesFilterAll))
	// no series known: only visible in the wildcard scope
	assert.Empty(t, s.Rows(cup))
}

func TestStats(t *testing.T) {
	s := Aggregate(sampleMaster())

	assert.Equal(t, 1, s.TotalWins(model.Chevrolet, cup))
	assert.Equal(t, 1, s.TotalWins(model.Ford, cup))
	assert.Equal(t, 0, s.TotalWins(model.Toyota, cup))
	assert.Equal(t, 1, s.TotalWins(model.Toyota, model.SeriesFilterAll))

	assert.Equal(t, 78, s.TotalPoints(model.Chevrolet, cup))
	assert.Equal(t, 117, s.TotalPoints(model.Chevrolet, model.SeriesFilterAll))

	pct, err := s.WinPercentage(model.Chevrolet, cup)
	require.NoError(t, err)
	assert.True(t, pct.Equal(decimal.NewFromInt(50)), "got %s", pct)

	pct, err = s.WinPercentage(model.Toyota, model.SeriesFilterAll)
	require.NoError(t, err)
	assert.Equal(t, "33.33", pct.StringFixed(2))

	totalWins := lo.SumBy(model.Manufacturers, func(m model.Manufacturer) int {
		return s.TotalWins(m, model.SeriesFilterAll)
	})
	assert.LessOrEqual(t, totalWins, s.Races(model.SeriesFilterAll))
}

func TestWinPercentageNoEntries(t *testing.T) {
	s := Aggregate(sampleMaster())
	truck := model.FilterFor(model.SeriesTruck)

	pct, err := s.WinPercentage(model.Ford, truck)
	assert.ErrorIs(t, err, ErrNoEntries)
	assert.True(t, pct.IsZero())

	_, err = Aggregate(nil).WinPercentage(model.Ford, model.SeriesFilterAll)
	assert.ErrorIs(t, err, ErrNoEntries)
}

func TestCumulativePoints(t *testing.T) {
	s := Aggregate(sampleMaster())

	got := s.CumulativePoints(model.Ford, model.SeriesFilterAll)
	require.Len(t, got, 3)
	assert.Equal(t, []int{600, 500, 502}, lo.Map(got, func(r model.CumulativeRow, _ int) int {
		return r.RaceID
	}))
	assert.Equal(t, []int{38, 77, 117}, lo.Map(got, func(r model.CumulativeRow, _ int) int {
		return r.CumSum
	}))
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i].CumSum, got[i-1].CumSum)
	}
	assert.Equal(t, s.TotalPoints(model.Ford, model.SeriesFilterAll), got[len(got)-1].CumSum)

	cupOnly := s.CumulativePoints(model.Ford, cup)
	assert.Equal(t, []int{39, 79}, lo.Map(cupOnly, func(r model.CumulativeRow, _ int) int {
		return r.CumSum
	}))
	assert.Empty(t, s.CumulativePoints(model.Ford, model.FilterFor(model.SeriesTruck)))
}

func TestSummary(t *testing.T) {
	s := Aggregate(sampleMaster())
	got := s.Summary(cup)
	require.Len(t, got, 3)
	assert.Equal(t, model.Chevrolet, got[0].Manufacturer)
	assert.Equal(t, 2, got[0].Races)
	assert.Equal(t, 1, got[0].Wins)
	assert.Equal(t, 78, got[0].Points)
	assert.Equal(t, "50", got[0].WinPct.MustGet().String())
	assert.Equal(t, "0", got[2].WinPct.MustGet().String())

	empty := s.Summary(model.FilterFor(model.SeriesTruck))
	assert.True(t, empty[0].WinPct.IsNull())
}

func TestLastRaceDate(t *testing.T) {
	s := Aggregate(sampleMaster())
	d, ok := s.LastRaceDate(model.SeriesFilterAll)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2023, 2, 26, 0, 0, 0, 0, time.UTC), d)
	_, ok = s.LastRaceDate(model.FilterFor(model.SeriesTruck))
	assert.False(t, ok)
}
