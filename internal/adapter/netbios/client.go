// Package netbios queries the NetBIOS name table of a host.
package netbios

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/netip"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/khmm12/hostscan/internal/common/logging"
	"github.com/khmm12/hostscan/internal/ports"
)

const (
	Port               = 137
	DefaultConcurrency = 64
	defaultTimeout     = 2 * time.Second
)

var _ ports.NetBIOSResolver = (*Client)(nil)

type Client struct {
	logger *slog.Logger
	port   int
	sem    *semaphore.Weighted
}

func New(logger *slog.Logger, concurrency int) (*Client, error) {
	if concurrency <= 0 {
		return nil, fmt.Errorf("netbios: concurrency must be greater than zero")
	}

	return &Client{
		logger: logger,
		port:   Port,
		sem:    semaphore.NewWeighted(int64(concurrency)),
	}, nil
}

// LookupNames sends a node status request to addr and returns its name
// table. Any failure is reported as ports.ErrNetBIOSLookupFailed.
func (c *Client) LookupNames(ctx context.Context, addr netip.Addr) ([]ports.NetBIOSName, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ports.ErrNetBIOSLookupFailed, addr, err)
	}

	defer c.sem.Release(1)

	names, err := c.query(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ports.ErrNetBIOSLookupFailed, addr, err)
	}

	c.logger.DebugContext(ctx, "NetBIOS name table", logging.Addr(addr.String()), slog.Int("names", len(names)))

	return names, nil
}

func (c *Client) query(ctx context.Context, addr netip.Addr) ([]ports.NetBIOSName, error) {
	var d net.Dialer

	conn, err := d.DialContext(ctx, "udp4", netip.AddrPortFrom(addr, uint16(c.port)).String())
	if err != nil {
		return nil, err
	}

	defer func() { _ = conn.Close() }()

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultTimeout)
	}

	if err := conn.SetDeadline(deadline); err != nil {
		return nil, err
	}

	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	id := uint16(rand.N(0x10000))

	if _, err := conn.Write(encodeNodeStatusRequest(id)); err != nil {
		return nil, err
	}

	buf := make([]byte, 1500)

	for {
		n, err := conn.Read(buf)
		if err != nil {
			return nil, err
		}

		names, err := decodeNodeStatusResponse(buf[:n], id)
		if err != nil {
			c.logger.DebugContext(ctx, "Ignoring NetBIOS datagram", logging.Addr(addr.String()), logging.Error(err))
			continue
		}

		return names, nil
	}
}
