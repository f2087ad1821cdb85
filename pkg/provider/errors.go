package provider

import (
	"errors"
	"fmt"
)

type Endpoint string

const (
	EndpointRoster    Endpoint = "roster"
	EndpointSchedule  Endpoint = "schedule"
	EndpointLoopStats Endpoint = "loopstats"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrMalformedPayload = errors.New("malformed payload")
)

// FetchError describes a failed remote call (network, non-2xx status or
// undecodable payload).
type FetchError struct {
	Endpoint   Endpoint
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s (%s): status %d: %v", e.Endpoint, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s (%s): %v", e.Endpoint, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
