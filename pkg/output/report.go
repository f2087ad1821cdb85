package output

import (
	"time"

	"github.com/samber/lo"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing/results"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing/standings"
)

const dateLayout = "2006-01-02"

// Report is the serializable view of a run within a series scope
type Report struct {
	RunID       string            `json:"runId" yaml:"runId"`
	Year        int               `json:"year" yaml:"year"`
	Series      string            `json:"series" yaml:"series"`
	ScoringRule string            `json:"scoringRule" yaml:"scoringRule"`
	CreatedAt   time.Time         `json:"createdAt" yaml:"createdAt"`
	Partial     bool              `json:"partial" yaml:"partial"`
	Summary     []SummaryEntry    `json:"summary" yaml:"summary"`
	Standings   []StandingEntry   `json:"standings" yaml:"standings"`
	Cumulative  []CumulativeEntry `json:"cumulative" yaml:"cumulative"`
	Skipped     []SkippedEntry    `json:"skipped" yaml:"skipped"`
}

// SummaryEntry carries the metrics of a manufacturer.
// WinPct is empty if the manufacturer has no entries.
type SummaryEntry struct {
	Manufacturer string `json:"manufacturer" yaml:"manufacturer"`
	Races        int    `json:"races" yaml:"races"`
	Wins         int    `json:"wins" yaml:"wins"`
	WinPct       string `json:"winPct,omitempty" yaml:"winPct,omitempty"`
	Points       int    `json:"points" yaml:"points"`
}

type StandingEntry struct {
	RaceID       int    `json:"raceId" yaml:"raceId"`
	RaceName     string `json:"raceName,omitempty" yaml:"raceName,omitempty"`
	RaceDate     string `json:"raceDate,omitempty" yaml:"raceDate,omitempty"`
	Series       string `json:"series,omitempty" yaml:"series,omitempty"`
	Manufacturer string `json:"manufacturer" yaml:"manufacturer"`
	DriverID     int    `json:"driverId" yaml:"driverId"`
	DriverName   string `json:"driverName,omitempty" yaml:"driverName,omitempty"`
	Team         string `json:"team,omitempty" yaml:"team,omitempty"`
	Ps           int    `json:"ps" yaml:"ps"`
	Points       int    `json:"points" yaml:"points"`
}

type CumulativeEntry struct {
	StandingEntry `yaml:",inline"`
	CumSum        int `json:"cumsum" yaml:"cumsum"`
}

type SkippedEntry struct {
	RaceID     int    `json:"raceId" yaml:"raceId"`
	RaceName   string `json:"raceName" yaml:"raceName"`
	Series     string `json:"series" yaml:"series"`
	Endpoint   string `json:"endpoint" yaml:"endpoint"`
	StatusCode int    `json:"statusCode,omitempty" yaml:"statusCode,omitempty"`
	Error      string `json:"error" yaml:"error"`
}

// NewReport creates the report of res restricted to the series scope f
func NewReport(res *processing.Result, f model.SeriesFilter) *Report {
	return &Report{
		RunID:       res.RunID.String(),
		Year:        res.Year,
		Series:      f.String(),
		ScoringRule: res.Standings.ScoringRule().Name(),
		CreatedAt:   res.CreatedAt,
		Partial:     res.Partial(),
		Summary:     SummaryEntries(res.Standings, f),
		Standings:   StandingEntries(res.Standings.Rows(f)),
		Cumulative: lo.FlatMap(model.Manufacturers,
			func(m model.Manufacturer, _ int) []CumulativeEntry {
				return CumulativeEntries(res.Standings.CumulativePoints(m, f))
			}),
		Skipped: SkippedEntries(res.Skipped),
	}
}

func SummaryEntries(s *standings.Standings, f model.SeriesFilter) []SummaryEntry {
	return lo.Map(s.Summary(f), func(item model.ManufacturerSummary, _ int) SummaryEntry {
		ret := SummaryEntry{
			Manufacturer: string(item.Manufacturer),
			Races:        item.Races,
			Wins:         item.Wins,
			Points:       item.Points,
		}
		if pct, ok := item.WinPct.Get(); ok {
			ret.WinPct = pct.StringFixed(2)
		}
		return ret
	})
}

func StandingEntries(rows []model.StandingRow) []StandingEntry {
	return lo.Map(rows, func(row model.StandingRow, _ int) StandingEntry {
		return standingEntry(&row)
	})
}

func CumulativeEntries(rows []model.CumulativeRow) []CumulativeEntry {
	return lo.Map(rows, func(row model.CumulativeRow, _ int) CumulativeEntry {
		return CumulativeEntry{StandingEntry: standingEntry(&row.StandingRow), CumSum: row.CumSum}
	})
}

func SkippedEntries(skipped []results.SkippedRace) []SkippedEntry {
	return lo.Map(skipped, func(item results.SkippedRace, _ int) SkippedEntry {
		ret := SkippedEntry{
			RaceID:   item.Race.ID,
			RaceName: item.Race.Name,
			Series:   item.Race.Series.String(),
		}
		if item.Err != nil {
			ret.Error = item.Err.Error()
			ret.Endpoint = string(item.Err.Endpoint)
			ret.StatusCode = item.Err.StatusCode
		}
		return ret
	})
}

func standingEntry(row *model.StandingRow) StandingEntry {
	ret := StandingEntry{
		RaceID:       row.RaceID,
		RaceName:     row.RaceName.GetOr(""),
		Manufacturer: string(row.Manufacturer),
		DriverID:     row.DriverID,
		DriverName:   row.DriverName,
		Team:         row.Team,
		Ps:           row.Ps,
		Points:       row.Points,
	}
	if d, ok := row.RaceDate.Get(); ok {
		ret.RaceDate = d.Format(dateLayout)
	}
	if s, ok := row.Series.Get(); ok {
		ret.Series = s.String()
	}
	return ret
}
