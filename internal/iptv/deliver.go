// SPDX-License-Identifier: MIT

// Package iptv pushes channel lists and guides to the IPTV Manager add-on,
// which listens on a loopback port for one JSON document per connection.
package iptv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout bounds dial plus write when the caller passes none.
const DefaultTimeout = 30 * time.Second

var (
	// ErrInvalidPort reports a port argument outside 1..65535.
	ErrInvalidPort = errors.New("iptv: invalid port")
	// ErrDeliver wraps connect, write and close failures.
	ErrDeliver = errors.New("iptv: delivery failed")
)

// ParsePort validates the port argument IPTV Manager passes on the command line.
func ParsePort(raw string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPort, raw)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPort, port)
	}
	return port, nil
}

// Deliver encodes payload as JSON and writes it to 127.0.0.1:port, then
// closes the connection. The connection is closed on every path.
func Deliver(ctx context.Context, port int, payload any, timeout time.Duration) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, port)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("iptv: encode payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: connect %s: %w", ErrDeliver, addr, err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetWriteDeadline(deadline); err != nil {
			return fmt.Errorf("%w: set deadline: %w", ErrDeliver, err)
		}
	}
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrDeliver, addr, err)
	}
	if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("%w: close %s: %w", ErrDeliver, addr, err)
	}
	return nil
}
