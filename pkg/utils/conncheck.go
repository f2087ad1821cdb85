package utils

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/mpapenbr/nascar-mfg-standings/log"
)

var defaultPorts = map[string]string{
	"nats":  "4222",
	"tls":   "4222",
	"http":  "80",
	"https": "443",
}

// WaitForTCP tries to connect to addr until it succeeds, timeout is reached or ctx is done
func WaitForTCP(ctx context.Context, addr string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	start := time.Now()
	log.Debug("wait for tcp connection",
		log.String("addr", addr),
		log.String("timeout", timeout.String()))
	var d net.Dialer
	for {
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err == nil {
			conn.Close()

			log.Debug("tcp connection successful",
				log.String("addr", addr),
				log.String("duration", time.Since(start).String()))
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s could not be reached after %v", addr, timeout)
		case <-time.After(200 * time.Millisecond):
		}
	}
}

// AddrFromURL returns host:port of a service URL like nats://host:4222 or https://host.
// The default port of the scheme is used if the URL has none.
func AddrFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("no host in %q", rawURL)
	}
	if port := u.Port(); port != "" {
		return u.Host, nil
	}
	port, ok := defaultPorts[u.Scheme]
	if !ok {
		return "", fmt.Errorf("no default port for scheme %q", u.Scheme)
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}
