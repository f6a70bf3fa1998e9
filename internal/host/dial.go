package host

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"
)

const dialTimeout = 5 * time.Second

// ParseAddress splits addr into a network and dial address. "unix:/path",
// "unix:///path" and bare absolute paths select a unix socket; anything else
// is dialled over TCP.
func ParseAddress(addr string) (network, address string, err error) {
	trimmed := strings.TrimSpace(addr)
	if trimmed == "" {
		return "", "", fmt.Errorf("empty host address")
	}
	switch {
	case strings.HasPrefix(trimmed, "unix://"):
		address = strings.TrimPrefix(trimmed, "unix://")
		network = "unix"
	case strings.HasPrefix(trimmed, "unix:"):
		address = strings.TrimPrefix(trimmed, "unix:")
		network = "unix"
	case strings.HasPrefix(trimmed, "/"):
		address = trimmed
		network = "unix"
	case strings.HasPrefix(trimmed, "tcp://"):
		address = strings.TrimPrefix(trimmed, "tcp://")
		network = "tcp"
	default:
		address = trimmed
		network = "tcp"
	}
	if address == "" {
		return "", "", fmt.Errorf("invalid host address %q", addr)
	}
	return network, address, nil
}

// Dial connects to the host at addr.
func Dial(ctx context.Context, addr string) (net.Conn, error) {
	network, address, err := ParseAddress(addr)
	if err != nil {
		return nil, err
	}
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, network, address)
	if err != nil {
		return nil, fmt.Errorf("dial host %s: %w", addr, err)
	}
	return conn, nil
}
