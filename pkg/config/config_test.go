package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing/standings"
)

func validSettings() Settings {
	return Settings{
		Year:           2023,
		Series:         []string{"cup", "2"},
		ScoringRule:    "graduated",
		TiePolicy:      "keep-all",
		SeriesFilter:   "xfinity",
		RequestTimeout: "5s",
		Retries:        1,
		TimeZone:       "UTC",
	}
}

func TestNewRunConfig(t *testing.T) {
	cfg, err := NewRunConfig(validSettings())
	require.NoError(t, err)
	assert.Equal(t, 2023, cfg.Year)
	assert.Equal(t, []model.Series{model.SeriesCup, model.SeriesXfinity}, cfg.Series)
	assert.Equal(t, standings.RuleGraduated, cfg.ScoringRule)
	assert.Equal(t, standings.TieKeepAll, cfg.TiePolicy)
	assert.Equal(t, model.FilterFor(model.SeriesXfinity), cfg.SeriesFilter)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.UTC, cfg.Location)
}

func TestNewRunConfigDefaultsToAllSeries(t *testing.T) {
	s := validSettings()
	s.Series = nil
	s.TimeZone = ""
	cfg, err := NewRunConfig(s)
	require.NoError(t, err)
	assert.Equal(t, model.AllSeries, cfg.Series)
	assert.Equal(t, time.Local, cfg.Location)
}

func TestNewRunConfigInvalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *Settings)
		param  string
	}{
		{"year", func(s *Settings) { s.Year = 0 }, "year"},
		{"retries", func(s *Settings) { s.Retries = -1 }, "retries"},
		{"series", func(s *Settings) { s.Series = []string{"arca"} }, "series"},
		{"rule", func(s *Settings) { s.ScoringRule = "f1" }, "scoring rule"},
		{"tie", func(s *Settings) { s.TiePolicy = "random" }, "tie policy"},
		{"filter", func(s *Settings) { s.SeriesFilter = "modified" }, "series filter"},
		{"timeout", func(s *Settings) { s.RequestTimeout = "soon" }, "request timeout"},
		{"zone", func(s *Settings) { s.TimeZone = "Mars/Olympus" }, "time zone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.modify(&s)
			_, err := NewRunConfig(s)
			var cfgErr *model.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.param, cfgErr.Parameter)
		})
	}
}
