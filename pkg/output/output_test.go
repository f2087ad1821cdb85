package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
	"github.com/mpapenbr/nascar-mfg-standings/testsupport/sampleresult"
)

var cup = model.FilterFor(model.SeriesCup)

func TestNewReport(t *testing.T) {
	r := NewReport(sampleresult.Result(), cup)

	assert.Equal(t, sampleresult.RunID.String(), r.RunID)
	assert.Equal(t, "cup", r.Series)
	assert.Equal(t, "simple", r.ScoringRule)
	assert.True(t, r.Partial)

	want := []SummaryEntry{
		{Manufacturer: "Chevrolet", Races: 2, Wins: 1, WinPct: "50.00", Points: 78},
		{Manufacturer: "Ford", Races: 2, Wins: 1, WinPct: "50.00", Points: 79},
		{Manufacturer: "Toyota", Races: 2, Wins: 0, WinPct: "0.00", Points: 77},
	}
	if diff := cmp.Diff(want, r.Summary); diff != "" {
		t.Errorf("Summary mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, r.Standings, 6)
	assert.Equal(t, StandingEntry{
		RaceID:       500,
		RaceName:     "Daytona 500",
		RaceDate:     "2023-02-19",
		Series:       "cup",
		Manufacturer: "Chevrolet",
		DriverID:     1,
		DriverName:   "Driver One",
		Ps:           1,
		Points:       40,
	}, r.Standings[0])

	ford := lo.Filter(r.Cumulative, func(e CumulativeEntry, _ int) bool {
		return e.Manufacturer == "Ford"
	})
	assert.Equal(t, []int{39, 79}, lo.Map(ford, func(e CumulativeEntry, _ int) int {
		return e.CumSum
	}))

	require.Len(t, r.Skipped, 1)
	assert.Equal(t, 601, r.Skipped[0].RaceID)
	assert.Equal(t, "xfinity", r.Skipped[0].Series)
	assert.Equal(t, "loopstats", r.Skipped[0].Endpoint)
	assert.Equal(t, 502, r.Skipped[0].StatusCode)
}

func TestNewReportNoEntries(t *testing.T) {
	r := NewReport(sampleresult.Result(), model.FilterFor(model.SeriesTruck))
	require.Len(t, r.Summary, 3)
	for _, s := range r.Summary {
		assert.Empty(t, s.WinPct)
		assert.Zero(t, s.Points)
	}
	assert.Empty(t, r.Standings)
	assert.Empty(t, r.Cumulative)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("csv")
	var cfgErr *model.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "output", cfgErr.Parameter)
}

func TestWriteJSON(t *testing.T) {
	r := NewReport(sampleresult.Result(), model.SeriesFilterAll)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, r))

	var got Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "all", got.Series)
	assert.Len(t, got.Standings, 9)
	assert.Contains(t, buf.String(), `"cumsum": 117`)
}

func TestWriteYAML(t *testing.T) {
	r := NewReport(sampleresult.Result(), cup)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, r))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "simple", got["scoringRule"])
	assert.Contains(t, buf.String(), "cumsum: 79")
	assert.Contains(t, buf.String(), "winPct: \"50.00\"")
}

func TestWriteTable(t *testing.T) {
	r := NewReport(sampleresult.Result(), cup)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTable, r))

	out := buf.String()
	for _, s := range []string{
		"Manufacturer standings 2023 (series: cup, scoring: simple)",
		"1 race(s) skipped",
		"Daytona 500",
		"Driver One",
		"Skipped races",
		"Atlanta",
		"50.00",
	} {
		assert.Contains(t, out, s)
	}
}
