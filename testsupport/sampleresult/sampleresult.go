// Package sampleresult provides a complete pipeline result built from the basedata samples.
package sampleresult

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing/master"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing/results"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing/schedule"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing/standings"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/provider"
	"github.com/mpapenbr/nascar-mfg-standings/testsupport/basedata"
)

var RunID = uuid.MustParse("6f1d3c52-8a8e-4f5e-9d8a-3f0c2b7d4e11")

// SkippedRace is the race reported as skipped by Result
var SkippedRace = model.Race{
	ID:     601,
	Series: model.SeriesXfinity,
	Season: 2023,
	Name:   "Atlanta",
	Date:   time.Date(2023, 2, 25, 0, 0, 0, 0, time.UTC),
	TypeID: model.RaceTypePoints,
}

// Result returns a result of the sample data scored with the given options.
// One xfinity race is reported as skipped.
func Result(opts ...standings.Option) *processing.Result {
	rows := master.Build(basedata.SampleResults(), basedata.SampleRoster(), basedata.SampleRaces())
	return &processing.Result{
		RunID:     RunID,
		Year:      2023,
		CreatedAt: basedata.TestTime(),
		Races:     schedule.Filter(basedata.SampleRaces(), basedata.TestTime()),
		Master:    rows,
		Standings: standings.Aggregate(rows, opts...),
		Skipped: []results.SkippedRace{
			{
				Race: SkippedRace,
				Err: &provider.FetchError{
					Endpoint:   provider.EndpointLoopStats,
					URL:        "http://feed.local/loopstats/prod/2023/2/601.json",
					StatusCode: http.StatusBadGateway,
					Err:        provider.ErrUnexpectedStatus,
				},
			},
		},
	}
}
