// Package util contains the setup shared by the commands.
package util

import (
	"os"

	"github.com/mpapenbr/nascar-mfg-standings/log"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/config"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/provider"
	"github.com/mpapenbr/nascar-mfg-standings/version"
)

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// SetupLogger creates the logger configured by log-level, log-format and log-filter
// and installs it as default logger.
func SetupLogger() (*log.Logger, error) {
	opts := []log.Option{log.WithCaller(true), log.AddCallerSkip(1)}
	if config.LogFilter != "" {
		filter, err := log.WithFilter(config.LogFilter)
		if err != nil {
			return nil, err
		}
		opts = append(opts, filter)
	}
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			opts...)
	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.DebugLevel),
			opts...)
	}
	log.ResetDefault(logger)
	return logger, nil
}

// NewClient creates the feed client for the run configuration
func NewClient(cfg *config.Config, logger *log.Logger) *provider.Client {
	return provider.NewClient(
		provider.WithBaseURL(config.BaseURL),
		provider.WithTimeout(cfg.RequestTimeout),
		provider.WithRetries(cfg.Retries, provider.DefaultRetryWait),
		provider.WithLocation(cfg.Location),
		provider.WithUserAgent("nms/"+version.Version),
		provider.WithLogger(logger.Named("provider")),
	)
}

// NewProcessor creates the pipeline for the run configuration
//
//nolint:whitespace // can't make both editor and linter happy
func NewProcessor(
	cfg *config.Config, source processing.DataSource, logger *log.Logger,
) *processing.Processor {
	return processing.NewProcessor(source,
		processing.WithYear(cfg.Year),
		processing.WithSeries(cfg.Series...),
		processing.WithScoringRule(cfg.ScoringRule),
		processing.WithTiePolicy(cfg.TiePolicy),
		processing.WithLogger(logger.Named("processing")),
	)
}

// LogConfig writes the effective run configuration with debug level
func LogConfig(cfg *config.Config) {
	log.Debug("Config:",
		log.String("baseUrl", config.BaseURL),
		log.Int("year", cfg.Year),
		log.Any("series", cfg.Series),
		log.String("scoringRule", cfg.ScoringRule.Name()),
		log.String("tiePolicy", string(cfg.TiePolicy)),
		log.Stringer("seriesFilter", cfg.SeriesFilter),
		log.Duration("requestTimeout", cfg.RequestTimeout),
		log.Int("retries", cfg.Retries),
		log.String("timeZone", cfg.Location.String()),
	)
}
