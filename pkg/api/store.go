package api

import (
	"sync/atomic"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing"
)

// Store keeps the latest result of the pipeline
type Store struct {
	latest atomic.Pointer[processing.Result]
}

func (s *Store) Set(res *processing.Result) {
	s.latest.Store(res)
}

// Latest returns the most recent result or nil if no run has completed yet
func (s *Store) Latest() *processing.Result {
	return s.latest.Load()
}
