package standings

import (
	"cmp"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
)

type (
	Option func(*config)
	config struct {
		rule ScoringRule
		tie  TiePolicy
	}
)

func WithScoringRule(rule ScoringRule) Option {
	return func(c *config) {
		c.rule = rule
	}
}

func WithTiePolicy(p TiePolicy) Option {
	return func(c *config) {
		c.tie = p
	}
}

// Standings holds the manufacturer standing rows of all races in chronological order.
type Standings struct {
	rows []model.StandingRow
	rule ScoringRule
}

// Aggregate computes the standing rows for every race and manufacturer found in rows.
// For each race the best placed entry of each manufacturer scores points according
// to the scoring rule. Rows of unknown manufacturers are ignored.
func Aggregate(rows []model.MasterRow, opts ...Option) *Standings {
	cfg := &config{rule: RuleSimple, tie: TieLowestDriverID}
	for _, opt := range opts {
		opt(cfg)
	}

	byRace := lo.GroupBy(rows, func(r model.MasterRow) int { return r.RaceID })
	raceIDs := lo.Uniq(lo.Map(rows, func(r model.MasterRow, _ int) int { return r.RaceID }))

	ret := make([]model.StandingRow, 0, len(raceIDs)*len(model.Manufacturers))
	for _, raceID := range raceIDs {
		raceRows := byRace[raceID]
		for _, mfg := range model.Manufacturers {
			entries := lo.Filter(raceRows, func(r model.MasterRow, _ int) bool {
				return r.Manufacturer == mfg
			})
			if len(entries) == 0 {
				continue
			}
			best := lo.MinBy(entries, func(a, b model.MasterRow) bool { return a.Ps < b.Ps })
			tied := lo.Filter(entries, func(r model.MasterRow, _ int) bool { return r.Ps == best.Ps })
			if cfg.tie != TieKeepAll {
				tied = []model.MasterRow{lo.MinBy(tied, func(a, b model.MasterRow) bool {
					return a.DriverID < b.DriverID
				})}
			}
			for i := range tied {
				ret = append(ret, standingRow(&tied[i], cfg.rule))
			}
		}
	}
	slices.SortStableFunc(ret, compareChronological)
	return &Standings{rows: ret, rule: cfg.rule}
}

func standingRow(r *model.MasterRow, rule ScoringRule) model.StandingRow {
	return model.StandingRow{
		RaceID:       r.RaceID,
		Manufacturer: r.Manufacturer,
		Series:       r.Series,
		RaceName:     r.RaceName,
		RaceDate:     r.RaceDate,
		DriverID:     r.DriverID,
		DriverName:   r.DriverName,
		Team:         r.Team,
		Ps:           r.Ps,
		Points:       rule.Points(r.Ps),
	}
}

// races without a known date are placed after all dated races
func compareChronological(a, b model.StandingRow) int {
	da, okA := a.RaceDate.Get()
	db, okB := b.RaceDate.Get()
	switch {
	case okA && okB:
		if c := da.Compare(db); c != 0 {
			return c
		}
	case okA:
		return -1
	case okB:
		return 1
	}
	if c := cmp.Compare(a.RaceID, b.RaceID); c != 0 {
		return c
	}
	return cmp.Compare(mfgOrder(a.Manufacturer), mfgOrder(b.Manufacturer))
}

func mfgOrder(m model.Manufacturer) int {
	if idx := slices.Index(model.Manufacturers, m); idx >= 0 {
		return idx
	}
	return len(model.Manufacturers)
}

func (s *Standings) ScoringRule() ScoringRule {
	return s.rule
}

// Rows returns the standing rows within the series scope
func (s *Standings) Rows(f model.SeriesFilter) []model.StandingRow {
	return lo.Filter(s.rows, func(r model.StandingRow, _ int) bool {
		return f.Matches(r.Series)
	})
}

// Races returns the number of distinct races within the series scope
func (s *Standings) Races(f model.SeriesFilter) int {
	return len(lo.Uniq(lo.Map(s.Rows(f), func(r model.StandingRow, _ int) int { return r.RaceID })))
}

// LastRaceDate returns the date of the latest race with a known date
func (s *Standings) LastRaceDate(f model.SeriesFilter) (time.Time, bool) {
	var ret time.Time
	found := false
	for _, r := range s.Rows(f) {
		if d, ok := r.RaceDate.Get(); ok && (!found || d.After(ret)) {
			ret, found = d, true
		}
	}
	return ret, found
}
