// Package api serves the latest standings as JSON over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/samber/lo"

	"github.com/mpapenbr/nascar-mfg-standings/log"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/output"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing"
)

var errNoData = errors.New("no standings available yet")

type (
	Option func(*Server)
	Server struct {
		store         *Store
		registry      *prometheus.Registry
		defaultFilter func() model.SeriesFilter
	}
)

// WithRegistry sets the prometheus registry served on /metrics
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithDefaultFilter sets the series scope used if a request carries no series parameter.
// The function is evaluated per request.
func WithDefaultFilter(f func() model.SeriesFilter) Option {
	return func(s *Server) {
		s.defaultFilter = f
	}
}

func NewServer(store *Store, opts ...Option) *Server {
	s := &Server{
		store:         store,
		defaultFilter: func() model.SeriesFilter { return model.SeriesFilterAll },
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(collectors.NewGoCollector())
	}
	return s
}

// Handler returns the router with all routes
func (s *Server) Handler() http.Handler {
	m := newMetrics(s.registry, s.store)
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(m.middleware)

	r.Get("/healthz", s.health)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(10 * time.Second))
		r.Get("/summary", s.summary)
		r.Get("/standings", s.standings)
		r.Get("/cumulative", s.cumulative)
		r.Get("/finish-positions", s.finishPositions)
		r.Get("/diagnostics", s.diagnostics)
		r.Get("/report", s.report)
	})
	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	res := s.store.Latest()
	body := map[string]any{"status": "ok", "ready": res != nil}
	if res != nil {
		body["runId"] = res.RunID.String()
		body["lastRun"] = res.CreatedAt
	}
	respondJSON(w, http.StatusOK, body)
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	res, f, ok := s.prepare(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, output.SummaryEntries(res.Standings, f))
}

func (s *Server) standings(w http.ResponseWriter, r *http.Request) {
	res, f, ok := s.prepare(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, output.StandingEntries(res.Standings.Rows(f)))
}

func (s *Server) cumulative(w http.ResponseWriter, r *http.Request) {
	res, f, ok := s.prepare(w, r)
	if !ok {
		return
	}
	mfgs := model.Manufacturers
	if v := r.URL.Query().Get("manufacturer"); v != "" {
		m, err := model.ParseManufacturer(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
		mfgs = []model.Manufacturer{m}
	}
	ret := make(map[model.Manufacturer][]output.CumulativeEntry, len(mfgs))
	for _, m := range mfgs {
		ret[m] = output.CumulativeEntries(res.Standings.CumulativePoints(m, f))
	}
	respondJSON(w, http.StatusOK, ret)
}

func (s *Server) finishPositions(w http.ResponseWriter, r *http.Request) {
	res, f, ok := s.prepare(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, res.FinishPositions(f))
}

func (s *Server) diagnostics(w http.ResponseWriter, r *http.Request) {
	res := s.store.Latest()
	if res == nil {
		respondError(w, http.StatusServiceUnavailable, errNoData)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"runId":     res.RunID.String(),
		"createdAt": res.CreatedAt,
		"races":     len(res.Races),
		"rows":      len(res.Master),
		"partial":   res.Partial(),
		"skipped":   output.SkippedEntries(res.Skipped),
		"unknownManufacturer": lo.CountBy(res.Master, func(row model.MasterRow) bool {
			return row.Manufacturer == model.UnknownManufacturer
		}),
	})
}

func (s *Server) report(w http.ResponseWriter, r *http.Request) {
	res, f, ok := s.prepare(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, output.NewReport(res, f))
}

// prepare resolves the latest result and the requested series scope.
// If one of them is not available the error response is already written.
//
//nolint:whitespace // can't make both editor and linter happy
func (s *Server) prepare(w http.ResponseWriter, r *http.Request) (
	*processing.Result, model.SeriesFilter, bool,
) {
	f := s.defaultFilter()
	if v := r.URL.Query().Get("series"); v != "" {
		var err error
		if f, err = model.ParseSeriesFilter(v); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return nil, f, false
		}
	}
	res := s.store.Latest()
	if res == nil {
		respondError(w, http.StatusServiceUnavailable, errNoData)
		return nil, f, false
	}
	return res, f, true
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("could not encode response", log.ErrorField(err))
	}
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, map[string]string{"error": err.Error()})
}
