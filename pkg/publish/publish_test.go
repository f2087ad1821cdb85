package publish

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpapenbr/nascar-mfg-standings/pkg/output"
	"github.com/mpapenbr/nascar-mfg-standings/testsupport/sampleresult"
)

type message struct {
	subject string
	data    []byte
}

type fakeConn struct {
	published  []message
	publishErr error
	flushed    int
	closed     bool
}

func (f *fakeConn) Publish(subj string, data []byte) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, message{subj, data})
	return nil
}

func (f *fakeConn) FlushWithContext(ctx context.Context) error {
	f.flushed++
	return ctx.Err()
}

func (f *fakeConn) Close() {
	f.closed = true
}

func TestPublish(t *testing.T) {
	conn := &fakeConn{}
	p := NewPublisher(conn, WithSubjectPrefix("racing"))

	require.NoError(t, p.Publish(context.Background(), sampleresult.Result()))
	require.Len(t, conn.published, 1)
	assert.Equal(t, "racing.standings.2023", conn.published[0].subject)
	assert.Equal(t, 1, conn.flushed)

	var got output.Report
	require.NoError(t, json.Unmarshal(conn.published[0].data, &got))
	assert.Equal(t, "all", got.Series)
	assert.Equal(t, sampleresult.RunID.String(), got.RunID)
	require.Len(t, got.Summary, 3)
	assert.Equal(t, 117, got.Summary[0].Points)

	p.Close()
	assert.True(t, conn.closed)
}

func TestPublishErrors(t *testing.T) {
	conn := &fakeConn{publishErr: errors.New("connection closed")}
	p := NewPublisher(conn)
	err := p.Publish(context.Background(), sampleresult.Result())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nms.standings.2023")

	conn = &fakeConn{}
	p = NewPublisher(conn)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Publish(ctx, sampleresult.Result()), context.Canceled)
}
