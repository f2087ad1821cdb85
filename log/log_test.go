package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New(buf, InfoLevel).Named("provider")
	l.Debug("hidden")
	l.Info("fetched", String("endpoint", "roster"), Int("count", 3))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "fetched", entry["msg"])
	assert.Equal(t, "provider", entry["logger"])
	assert.Equal(t, "roster", entry["endpoint"])
	assert.InDelta(t, 3, entry["count"], 0)
}

func TestWithFilter(t *testing.T) {
	opt, err := WithFilter("debug+:provider")
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	l := New(buf, DebugLevel, opt)
	l.Named("other").Info("dropped")
	assert.Empty(t, buf.String())
	l.Named("provider").Debug("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestGetFromContext(t *testing.T) {
	assert.Same(t, Default(), GetFromContext(context.Background()))
	l := New(&bytes.Buffer{}, WarnLevel)
	ctx := AddToContext(context.Background(), l)
	assert.Same(t, l, GetFromContext(ctx))
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, WarnLevel, lvl)
	_, err = ParseLevel("noise")
	assert.Error(t, err)
}
