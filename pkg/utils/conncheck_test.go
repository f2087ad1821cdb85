package utils

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddrFromURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"nats with port", "nats://broker:4223", "broker:4223", false},
		{"nats default", "nats://broker", "broker:4222", false},
		{"https default", "https://cf.nascar.com", "cf.nascar.com:443", false},
		{"http default", "http://localhost/path", "localhost:80", false},
		{"unknown scheme", "ftp://host", "", true},
		{"no host", "broker:4222", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddrFromURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWaitForTCP(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()

	require.NoError(t, WaitForTCP(context.Background(), addr, time.Second))

	l.Close()
	err = WaitForTCP(context.Background(), addr, 300*time.Millisecond)
	assert.ErrorContains(t, err, "could not be reached")
}
