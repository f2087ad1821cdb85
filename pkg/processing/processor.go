package processing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mpapenbr/nascar-mfg-standings/log"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing/master"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing/results"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing/schedule"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing/standings"
)

var tracer = otel.Tracer("processing")

// DataSource is the read-only access to the statistics feed
type DataSource interface {
	results.RaceFetcher
	Drivers(ctx context.Context) ([]model.Driver, error)
	Schedule(ctx context.Context, year int, series model.Series) ([]model.Race, error)
}

type (
	ProcessorOption func(proc *Processor)
	Processor       struct {
		source    DataSource
		year      int
		series    []model.Series
		rule      standings.ScoringRule
		tiePolicy standings.TiePolicy
		now       func() time.Time
		l         *log.Logger
	}
)

func WithYear(year int) ProcessorOption {
	return func(proc *Processor) {
		proc.year = year
	}
}

func WithSeries(series ...model.Series) ProcessorOption {
	return func(proc *Processor) {
		proc.series = series
	}
}

func WithScoringRule(rule standings.ScoringRule) ProcessorOption {
	return func(proc *Processor) {
		proc.rule = rule
	}
}

func WithTiePolicy(p standings.TiePolicy) ProcessorOption {
	return func(proc *Processor) {
		proc.tiePolicy = p
	}
}

// WithClock replaces time.Now when deciding which races have been run
func WithClock(now func() time.Time) ProcessorOption {
	return func(proc *Processor) {
		proc.now = now
	}
}

func WithLogger(l *log.Logger) ProcessorOption {
	return func(proc *Processor) {
		proc.l = l
	}
}

func NewProcessor(source DataSource, opts ...ProcessorOption) *Processor {
	ret := &Processor{
		source:    source,
		year:      time.Now().Year(),
		series:    model.AllSeries,
		rule:      standings.RuleSimple,
		tiePolicy: standings.TieLowestDriverID,
		now:       time.Now,
		l:         log.Default().Named("processing"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Run fetches the feed data and computes the standings.
// Failing roster or schedule requests abort the run, failing race results are skipped
// and reported in Result.Skipped.
func (p *Processor) Run(ctx context.Context) (*Result, error) {
	runID := uuid.New()
	ctx, span := tracer.Start(ctx, "run", trace.WithAttributes(
		attribute.String("runId", runID.String()),
		attribute.Int("year", p.year)))
	defer span.End()
	l := p.l.WithFields(log.String("runId", runID.String()))
	start := p.now()

	drivers, err := p.source.Drivers(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("fetch driver roster: %w", err)
	}

	races, err := p.fetchSchedule(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	eligible := schedule.Filter(races, start)
	l.Info("schedule filtered",
		log.Int("races", len(races)),
		log.Int("eligible", len(eligible)))

	compiler := results.NewCompiler(p.source,
		results.WithYear(p.year),
		results.WithLogger(l.Named("results")))
	driverResults, skipped, err := compiler.Compile(ctx, eligible)
	if err != nil {
		return nil, err
	}

	rows := master.Build(driverResults, drivers, eligible)
	agg := standings.Aggregate(rows,
		standings.WithScoringRule(p.rule),
		standings.WithTiePolicy(p.tiePolicy))

	l.Info("standings computed",
		log.Int("results", len(driverResults)),
		log.Int("skipped", len(skipped)),
		log.String("rule", p.rule.Name()))

	return &Result{
		RunID:     runID,
		Year:      p.year,
		CreatedAt: start,
		Races:     eligible,
		Master:    rows,
		Standings: agg,
		Skipped:   skipped,
	}, nil
}

func (p *Processor) fetchSchedule(ctx context.Context) ([]model.Race, error) {
	var ret []model.Race
	for _, s := range p.series {
		races, err := p.source.Schedule(ctx, p.year, s)
		if err != nil {
			return nil, fmt.Errorf("fetch schedule for series %s: %w", s, err)
		}
		ret = append(ret, races...)
	}
	return lo.UniqBy(ret, func(r model.Race) int { return r.ID }), nil
}
