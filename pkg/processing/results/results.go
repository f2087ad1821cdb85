package results

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/mpapenbr/nascar-mfg-standings/log"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/provider"
)

var meter = otel.Meter("results")

type (
	// RaceFetcher delivers the complete driver results of a single race or an error
	RaceFetcher interface {
		RaceResults(
			ctx context.Context,
			year int,
			series model.Series,
			raceID int,
		) ([]model.DriverResult, error)
	}

	// SkippedRace records a race which was left out because its results could not be fetched.
	SkippedRace struct {
		Race model.Race
		Err  *provider.FetchError
	}

	Option   func(*Compiler)
	Compiler struct {
		fetcher RaceFetcher
		year    int
		l       *log.Logger
		skipped metric.Int64Counter
	}
)

func WithYear(year int) Option {
	return func(c *Compiler) {
		c.year = year
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Compiler) {
		c.l = l
	}
}

func NewCompiler(fetcher RaceFetcher, opts ...Option) *Compiler {
	c := &Compiler{
		fetcher: fetcher,
		l:       log.Default().Named("results"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.skipped, _ = meter.Int64Counter("races_skipped",
		metric.WithDescription("races skipped because their results could not be fetched"))
	return c
}

// Compile fetches the results of all races and concatenates them.
// A race whose results cannot be fetched is skipped and reported in the returned list.
// An error is only returned if ctx is done.
func (c *Compiler) Compile(
	ctx context.Context,
	races []model.Race,
) (ret []model.DriverResult, skipped []SkippedRace, err error) {
	seen := make(map[int]struct{}, len(races))
	for i := range races {
		race := races[i]
		if _, ok := seen[race.ID]; ok {
			continue
		}
		seen[race.ID] = struct{}{}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, ctxErr
		}

		year := c.year
		if year == 0 {
			year = race.Season
		}
		data, fetchErr := c.fetcher.RaceResults(ctx, year, race.Series, race.ID)
		if fetchErr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, nil, ctxErr
			}
			skipped = append(skipped, SkippedRace{Race: race, Err: asFetchError(fetchErr)})
			c.skipped.Add(ctx, 1, metric.WithAttributes(
				attribute.String("series", race.Series.String())))
			c.l.Warn("skipping race",
				log.Int("raceId", race.ID),
				log.String("race", race.Name),
				log.ErrorField(fetchErr))
			continue
		}
		for j := range data {
			data[j].RaceID = race.ID
		}
		c.l.Debug("compiled race",
			log.Int("raceId", race.ID),
			log.Int("results", len(data)))
		ret = append(ret, data...)
	}
	return ret, skipped, nil
}

func asFetchError(err error) *provider.FetchError {
	var fe *provider.FetchError
	if errors.As(err, &fe) {
		return fe
	}
	return &provider.FetchError{
		Endpoint: provider.EndpointLoopStats,
		Err:      err,
	}
}
