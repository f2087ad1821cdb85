// Package publish sends the result of a run to NATS subscribers.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/mpapenbr/nascar-mfg-standings/log"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/model"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/output"
	"github.com/mpapenbr/nascar-mfg-standings/pkg/processing"
)

const DefaultSubjectPrefix = "nms"

type (
	// Conn is the subset of *nats.Conn used for publishing
	Conn interface {
		Publish(subj string, data []byte) error
		FlushWithContext(ctx context.Context) error
		Close()
	}
	Option    func(*Publisher)
	Publisher struct {
		conn   Conn
		prefix string
		l      *log.Logger
	}
)

func WithSubjectPrefix(prefix string) Option {
	return func(p *Publisher) {
		p.prefix = prefix
	}
}

func WithLogger(l *log.Logger) Option {
	return func(p *Publisher) {
		p.l = l
	}
}

func NewPublisher(conn Conn, opts ...Option) *Publisher {
	ret := &Publisher{
		conn:   conn,
		prefix: DefaultSubjectPrefix,
		l:      log.Default().Named("nats"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Connect creates a publisher connected to the NATS server at url
func Connect(url string, opts ...Option) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("nms"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("nats disconnected", log.ErrorField(err))
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats reconnected", log.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats %s: %w", url, err)
	}
	return NewPublisher(nc, opts...), nil
}

// Subject returns the subject results of year are published to
func (p *Publisher) Subject(year int) string {
	return fmt.Sprintf("%s.standings.%d", p.prefix, year)
}

// Publish sends the report of res over all series
func (p *Publisher) Publish(ctx context.Context, res *processing.Result) error {
	data, err := json.Marshal(output.NewReport(res, model.SeriesFilterAll))
	if err != nil {
		return err
	}
	subj := p.Subject(res.Year)
	if err := p.conn.Publish(subj, data); err != nil {
		return fmt.Errorf("publish %s: %w", subj, err)
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush %s: %w", subj, err)
	}
	p.l.Debug("published result",
		log.String("subject", subj),
		log.String("runId", res.RunID.String()),
		log.Int("bytes", len(data)))
	return nil
}

func (p *Publisher) Close() {
	p.conn.Close()
}
