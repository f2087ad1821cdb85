// Package feed provides a fake of the NASCAR statistics feed for tests.
package feed

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
)

type (
	Driver struct {
		ID           int    `json:"Nascar_Driver_ID"`
		FullName     string `json:"Full_Name"`
		Manufacturer string `json:"Manufacturer"`
	}
	Race struct {
		RaceID     int    `json:"race_id"`
		SeriesID   int    `json:"series_id"`
		RaceName   string `json:"race_name"`
		RaceDate   string `json:"race_date"`
		RaceTypeID int    `json:"race_type_id"`
	}
	Result struct {
		DriverID int    `json:"driver_id"`
		Ps       int    `json:"ps"`
		Team     string `json:"Team"`
	}

	// Feed holds the data served by the fake.
	Feed struct {
		Roster    []Driver
		Schedules map[model.Series][]Race
		Results   map[int][]Result
		// races answered with this status instead of data
		FailRaces map[int]int
		// raw payloads served instead of Results (used for malformed data)
		RawResults map[int]string

		mu   sync.Mutex
		hits map[string]int
	}
)

func (f *Feed) Hits(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *Feed) hit(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hits == nil {
		f.hits = map[string]int{}
	}
	f.hits[r.URL.Path]++
}

// NewServer starts a fake feed which is closed when the test ends.
func NewServer(t testing.TB, f *Feed) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			f.hit(req)
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/cacher/drivers.json", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"response": f.Roster})
	})
	r.Get("/cacher/{year}/{series}/race_list_basic.json", func(w http.ResponseWriter, req *http.Request) {
		series, _ := strconv.Atoi(chi.URLParam(req, "series"))
		races, ok := f.Schedules[model.Series(series)]
		if !ok {
			http.NotFound(w, req)
			return
		}
		writeJSON(w, races)
	})
	r.Get("/loopstats/prod/{year}/{series}/{race}.json", func(w http.ResponseWriter, req *http.Request) {
		raceID, _ := strconv.Atoi(chi.URLParam(req, "race"))
		if status, ok := f.FailRaces[raceID]; ok {
			http.Error(w, "failure requested", status)
			return
		}
		if raw, ok := f.RawResults[raceID]; ok {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, raw)
			return
		}
		results, ok := f.Results[raceID]
		if !ok {
			http.NotFound(w, req)
			return
		}
		writeJSON(w, []map[string]any{{"race_id": raceID, "drivers": results}})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// SampleFeed returns the feed used by the end-to-end scenario: one past cup points race
// with one entry per manufacturer.
func SampleFeed() *Feed {
	return &Feed{
		Roster: []Driver{
			{ID: 1, FullName: "Driver One", Manufacturer: "Chevy Camaro"},
			{ID: 2, FullName: "Driver Two", Manufacturer: "Ford Mustang"},
			{ID: 3, FullName: "Driver Three", Manufacturer: "Toyota Camry"},
		},
		Schedules: map[model.Series][]Race{
			model.SeriesCup: {
				{RaceID: 500, SeriesID: 1, RaceName: "Daytona 500",
					RaceDate: "2023-01-01T14:30:00", RaceTypeID: model.RaceTypePoints},
			},
		},
		Results: map[int][]Result{
			500: {
				{DriverID: 1, Ps: 1, Team: "Chevrolet"},
				{DriverID: 2, Ps: 2, Team: "Ford"},
				{DriverID: 3, Ps: 3, Team: "Toyota"},
			},
		},
	}
}
