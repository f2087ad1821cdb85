package server

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/mpapenbr/nascar-mfg-standings/log"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/api"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing"
)

type (
	Pipeline interface {
		Run(ctx context.Context) (*processing.Result, error)
	}
	// BuildFunc creates the pipeline and the default series scope from the current configuration
	BuildFunc func() (Pipeline, model.SeriesFilter, error)
	Publisher interface {
		Publish(ctx context.Context, res *processing.Result) error
	}
	RefresherOption func(*Refresher)

	// Refresher recomputes the standings periodically and on demand.
	// The latest successful result is kept in the store.
	Refresher struct {
		build     BuildFunc
		store     *api.Store
		publisher Publisher
		interval  time.Duration
		trigger   chan struct{}
		filter    atomic.Int64
		l         *log.Logger
	}
)

func WithPublisher(p Publisher) RefresherOption {
	return func(r *Refresher) {
		r.publisher = p
	}
}

func WithInterval(d time.Duration) RefresherOption {
	return func(r *Refresher) {
		r.interval = d
	}
}

func WithRefreshLogger(l *log.Logger) RefresherOption {
	return func(r *Refresher) {
		r.l = l
	}
}

func NewRefresher(build BuildFunc, store *api.Store, opts ...RefresherOption) *Refresher {
	ret := &Refresher{
		build:    build,
		store:    store,
		interval: 15 * time.Minute,
		trigger:  make(chan struct{}, 1),
		l:        log.Default().Named("refresh"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Filter returns the series scope of the current configuration
func (r *Refresher) Filter() model.SeriesFilter {
	return model.SeriesFilter(r.filter.Load())
}

// Trigger requests a refresh. Requests are coalesced while one is pending.
func (r *Refresher) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// RunOnce computes the standings and stores the result.
// On errors the previous result is kept.
func (r *Refresher) RunOnce(ctx context.Context) error {
	p, f, err := r.build()
	if err != nil {
		r.l.Error("invalid configuration, keeping previous standings", log.ErrorField(err))
		return err
	}
	r.filter.Store(int64(f))
	start := time.Now()
	res, err := p.Run(ctx)
	if err != nil {
		r.l.Error("standings could not be computed, keeping previous standings",
			log.ErrorField(err))
		return err
	}
	r.store.Set(res)
	r.l.Info("standings refreshed",
		log.String("runId", res.RunID.String()),
		log.Int("races", len(res.Races)),
		log.Int("skipped", res.SkippedCount()),
		log.Duration("duration", time.Since(start)))
	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, res); err != nil {
			r.l.Warn("result could not be published", log.ErrorField(err))
		}
	}
	return nil
}

// Run refreshes immediately and then on every interval or trigger until ctx is done
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		//nolint:errcheck // errors are logged
		r.RunOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-r.trigger:
			ticker.Reset(r.interval)
		}
	}
}
