package config

import (
	"fmt"
	"time"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing/standings"
)

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	Year              int      // season to process
	Series            []string // series to process (cup, xfinity, truck)
	ScoringRule       string   // scoring rule for manufacturer points (simple, graduated)
	TiePolicy         string   // how ties of a manufacturer's best entries are handled
	SeriesFilter      string   // series scope for the displayed standings (all, cup, xfinity, truck)
	BaseURL           string   // base URL of the statistics feed
	RequestTimeout    string   // timeout for a single request to the feed
	Retries           int      // number of retries for a failed request
	TimeZone          string   // zone of the race dates delivered by the feed
	LogLevel          string   // sets the log level (zap log level values)
	LogFormat         string   // text vs json
	LogFilter         string   // zapfilter rules
	EnableTelemetry   bool     // enable telemetry
	TelemetryEndpoint string   // endpoint for telemetry, "stdout" writes to stdout
	OutputFormat      string   // table, json or yaml
	ServerAddr        string   // listen addr for the HTTP server
	RefreshInterval   string   // interval for recomputing the standings in server mode
	CORSOrigins       []string // allowed origins for the HTTP API
	NatsURL           string   // if set, results are published to this NATS server
	NatsSubject       string   // subject prefix for published results
	WaitForServices   string   // duration to wait for the NATS server to become reachable
)

// Config holds the validated values needed for a run
type Config struct {
	Year           int
	Series         []model.Series
	ScoringRule    standings.ScoringRule
	TiePolicy      standings.TiePolicy
	SeriesFilter   model.SeriesFilter
	RequestTimeout time.Duration
	Retries        int
	Location       *time.Location
}

// Settings are the raw values a Config is built from
type Settings struct {
	Year           int
	Series         []string
	ScoringRule    string
	TiePolicy      string
	SeriesFilter   string
	RequestTimeout string
	Retries        int
	TimeZone       string
}

// CurrentSettings returns the settings resolved from flags, env and config file
func CurrentSettings() Settings {
	return Settings{
		Year:           Year,
		Series:         Series,
		ScoringRule:    ScoringRule,
		TiePolicy:      TiePolicy,
		SeriesFilter:   SeriesFilter,
		RequestTimeout: RequestTimeout,
		Retries:        Retries,
		TimeZone:       TimeZone,
	}
}

// NewRunConfig validates the settings. Invalid values are reported as model.ConfigurationError.
func NewRunConfig(s Settings) (*Config, error) {
	ret := &Config{Year: s.Year, Retries: s.Retries}
	if s.Year < 1949 {
		return nil, &model.ConfigurationError{Parameter: "year", Value: fmt.Sprint(s.Year)}
	}
	if s.Retries < 0 {
		return nil, &model.ConfigurationError{Parameter: "retries", Value: fmt.Sprint(s.Retries)}
	}
	if len(s.Series) == 0 {
		ret.Series = model.AllSeries
	}
	for _, v := range s.Series {
		series, err := model.ParseSeries(v)
		if err != nil {
			return nil, err
		}
		ret.Series = append(ret.Series, series)
	}
	var err error
	if ret.ScoringRule, err = standings.ParseScoringRule(s.ScoringRule); err != nil {
		return nil, err
	}
	if ret.TiePolicy, err = standings.ParseTiePolicy(s.TiePolicy); err != nil {
		return nil, err
	}
	if ret.SeriesFilter, err = model.ParseSeriesFilter(s.SeriesFilter); err != nil {
		return nil, err
	}
	if ret.RequestTimeout, err = time.ParseDuration(s.RequestTimeout); err != nil ||
		ret.RequestTimeout <= 0 {
		return nil, &model.ConfigurationError{Parameter: "request timeout", Value: s.RequestTimeout}
	}
	ret.Location = time.Local
	if s.TimeZone != "" {
		if ret.Location, err = time.LoadLocation(s.TimeZone); err != nil {
			return nil, &model.ConfigurationError{Parameter: "time zone", Value: s.TimeZone}
		}
	}
	return ret, nil
}
