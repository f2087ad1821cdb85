package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/mpapenbr/nascar-mfg-standings/log"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
)

// DefaultRetryWait is the initial wait before a failed request is retried
const DefaultRetryWait = 500 * time.Millisecond

var (
	tracer = otel.Tracer("provider")
	meter  = otel.Meter("provider")
)

type (
	Option func(*Client)
	// Client reads the public NASCAR statistics feed.
	Client struct {
		httpClient *http.Client
		baseURL    string
		userAgent  string
		timeout    time.Duration
		retries    int
		retryWait  time.Duration
		location   *time.Location
		l          *log.Logger
		fetches    metric.Int64Counter
		failures   metric.Int64Counter
		duration   metric.Float64Histogram
	}
)

func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the timeout for a single request attempt
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRetries sets the number of retries after a failed attempt.
// Responses with status 4xx are not retried.
func WithRetries(n int, wait time.Duration) Option {
	return func(c *Client) {
		c.retries = n
		c.retryWait = wait
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLocation sets the zone used for the zone-less race dates of the feed
func WithLocation(loc *time.Location) Option {
	return func(c *Client) {
		c.location = loc
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		c.l = l
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    DefaultBaseURL,
		userAgent:  "nms/1.0",
		timeout:    20 * time.Second,
		retries:    2,
		retryWait:  DefaultRetryWait,
		location:   time.Local,
		l:          log.Default().Named("provider"),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.setupMetrics()
	return c
}

func (c *Client) setupMetrics() {
	c.fetches, _ = meter.Int64Counter("provider_fetches",
		metric.WithDescription("number of requests to the statistics feed"))
	c.failures, _ = meter.Int64Counter("provider_fetch_failures",
		metric.WithDescription("number of failed requests to the statistics feed"))
	c.duration, _ = meter.Float64Histogram("provider_fetch_duration",
		metric.WithDescription("duration of requests to the statistics feed"),
		metric.WithUnit("s"))
}

// Drivers fetches the driver roster
func (c *Client) Drivers(ctx context.Context) ([]model.Driver, error) {
	url := c.rosterURL()
	body, err := c.fetch(ctx, EndpointRoster, url)
	if err != nil {
		return nil, err
	}
	ret, err := decodeRoster(body)
	if err != nil {
		return nil, &FetchError{Endpoint: EndpointRoster, URL: url, Err: err}
	}
	return ret, nil
}

// Schedule fetches the race schedule of a series for a season
func (c *Client) Schedule(ctx context.Context, year int, series model.Series) ([]model.Race, error) {
	url := c.scheduleURL(year, series)
	body, err := c.fetch(ctx, EndpointSchedule, url)
	if err != nil {
		return nil, err
	}
	ret, err := decodeSchedule(body, c.location)
	if err != nil {
		return nil, &FetchError{Endpoint: EndpointSchedule, URL: url, Err: err}
	}
	return ret, nil
}

// RaceResults fetches the loop statistics of a race. Every result carries the raceID.
func (c *Client) RaceResults(
	ctx context.Context,
	year int,
	series model.Series,
	raceID int,
) ([]model.DriverResult, error) {
	url := c.loopStatsURL(year, series, raceID)
	body, err := c.fetch(ctx, EndpointLoopStats, url)
	if err != nil {
		return nil, err
	}
	ret, err := decodeLoopStats(body, raceID)
	if err != nil {
		return nil, &FetchError{Endpoint: EndpointLoopStats, URL: url, Err: err}
	}
	return ret, nil
}

func (c *Client) fetch(ctx context.Context, endpoint Endpoint, url string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "fetch "+string(endpoint),
		trace.WithAttributes(attribute.String("url", url)))
	defer span.End()

	attrs := metric.WithAttributes(attribute.String("endpoint", string(endpoint)))
	start := time.Now()
	attempt := 0
	op := func() ([]byte, error) {
		attempt++
		c.fetches.Add(ctx, 1, attrs)
		body, err := c.doRequest(ctx, endpoint, url)
		if err != nil {
			c.l.Debug("request failed",
				log.String("url", url),
				log.Int("attempt", attempt),
				log.ErrorField(err))
		}
		return body, err
	}
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.retryWait
	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(max(c.retries, 0))), ctx)

	body, err := backoff.RetryWithData(op, b)
	c.duration.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		// a cancelled context is reported without the last attempt's error
		var fe *FetchError
		if !errors.As(err, &fe) {
			err = &FetchError{Endpoint: endpoint, URL: url, Err: err}
		}
		c.failures.Add(ctx, 1, attrs)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	c.l.Debug("fetched",
		log.String("url", url),
		log.Int("bytes", len(body)),
		log.Duration("duration", time.Since(start)))
	return body, nil
}

func (c *Client) doRequest(ctx context.Context, endpoint Endpoint, url string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, backoff.Permanent(&FetchError{Endpoint: endpoint, URL: url, Err: err})
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Endpoint: endpoint, URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Endpoint: endpoint, URL: url, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fe := &FetchError{
			Endpoint:   endpoint,
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %s", ErrUnexpectedStatus, http.StatusText(resp.StatusCode)),
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, backoff.Permanent(fe)
		}
		return nil, fe
	}
	return body, nil
}
