// Package probe provokes neighbor resolution for an address. None of the
// probers report reachability; the neighbor cache is the only result.
package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"time"

	"github.com/khmm12/hostscan/internal/ports"
)

const (
	DefaultUDPPort = 12345
	DefaultTCPPort = 7
)

var _ ports.Prober = (*DialProber)(nil)

// DialProber opens a UDP or TCP connection to the address. For UDP a single
// byte is written, since connecting a UDP socket sends nothing on the wire.
type DialProber struct {
	network string
	port    int
	dialer  net.Dialer
}

func NewDialProber(network string, port int) (*DialProber, error) {
	switch network {
	case "udp", "udp4":
		network = "udp4"
		if port == 0 {
			port = DefaultUDPPort
		}
	case "tcp", "tcp4":
		network = "tcp4"
		if port == 0 {
			port = DefaultTCPPort
		}
	default:
		return nil, fmt.Errorf("probe: unsupported network %q", network)
	}

	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("probe: invalid port %d", port)
	}

	return &DialProber{network: network, port: port}, nil
}

func (p *DialProber) Probe(ctx context.Context, addr netip.Addr, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conn, err := p.dialer.DialContext(ctx, p.network, net.JoinHostPort(addr.String(), strconv.Itoa(p.port)))
	if err != nil {
		return classify(err)
	}

	defer func() { _ = conn.Close() }()

	if p.network == "udp4" {
		if deadline, ok := ctx.Deadline(); ok {
			_ = conn.SetWriteDeadline(deadline)
		}

		if _, err := conn.Write([]byte{0}); err != nil {
			return classify(err)
		}
	}

	return nil
}

func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w", ports.ErrProbeTimeout, err)
	}

	return err
}
