package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/khmm12/hostscan/internal/common/logging"
	"github.com/khmm12/hostscan/internal/ports"
)

var errSinkClosed = errors.New("resolve phase closed")

type resolveStats struct {
	delivered atomic.Int64
	dns       atomic.Int64
	netbios   atomic.Int64
}

// resolve starts one task per candidate and returns true when the resolve
// ceiling cut the phase short. Tasks still running afterwards can no longer
// reach the sink.
func (u *ScanSubnetUseCase) resolve(ctx context.Context, entries []ports.NeighborEntry) (*resolveStats, bool) {
	phase, cancel := context.WithTimeout(ctx, u.opts.ResolveCeiling)
	defer cancel()

	var (
		stats = &resolveStats{}
		sink  = newGatedSink(u.deps.Sink)
		g     errgroup.Group
	)

	defer sink.close()

	if u.opts.ResolveConcurrency > 0 {
		g.SetLimit(u.opts.ResolveConcurrency)
	}

	timedOut := waitOrDone(ctx, phase, func() {
		for _, entry := range entries {
			if phase.Err() != nil {
				break
			}

			g.Go(func() error {
				u.resolveHost(phase, entry, sink, stats)
				return nil
			})
		}

		_ = g.Wait()
	})

	return stats, timedOut
}

// resolveHost delivers the host once reverse DNS settled and again when a
// NetBIOS file server name replaces the hostname. Both steps run in order so
// the NetBIOS name is always the last one seen for this IP.
func (u *ScanSubnetUseCase) resolveHost(ctx context.Context, entry ports.NeighborEntry, sink ports.HostSink, stats *resolveStats) {
	if ctx.Err() != nil {
		return
	}

	addr, err := netip.ParseAddr(entry.IP)
	if err != nil {
		u.logger.WarnContext(ctx, "Skipping neighbor entry", logging.Addr(entry.IP), logging.Error(err))
		return
	}

	host := ports.Host{
		IP:        entry.IP,
		HWAddress: entry.HWAddress,
	}

	if u.deps.Vendors != nil {
		if vendor, ok := u.deps.Vendors.Vendor(entry.HWAddress); ok {
			host.Vendor = vendor
		}
	}

	name, err := u.lookupHostname(ctx, addr)
	if err != nil {
		u.logger.DebugContext(ctx, "Reverse DNS lookup failed", logging.Addr(entry.IP), logging.Error(err))
	} else {
		host.Hostname = name
		stats.dns.Add(1)
	}

	if !u.deliver(ctx, sink, host) {
		return
	}

	stats.delivered.Add(1)

	if u.deps.NetBIOS == nil {
		return
	}

	name, err = u.lookupNetBIOS(ctx, addr)
	if err != nil {
		u.logger.DebugContext(ctx, "NetBIOS lookup failed", logging.Addr(entry.IP), logging.Error(err))
		return
	}

	stats.netbios.Add(1)

	if name == host.Hostname {
		return
	}

	host.Hostname = name
	u.deliver(ctx, sink, host)
}

func (u *ScanSubnetUseCase) lookupHostname(ctx context.Context, addr netip.Addr) (string, error) {
	ctx, cancel := u.lookupContext(ctx)
	defer cancel()

	name, err := u.deps.DNS.LookupHostname(ctx, addr)
	if err != nil {
		return "", err
	}

	if name == "" {
		return "", fmt.Errorf("%w: %s", ports.ErrUnknownHost, addr)
	}

	return name, nil
}

func (u *ScanSubnetUseCase) lookupNetBIOS(ctx context.Context, addr netip.Addr) (string, error) {
	ctx, cancel := u.lookupContext(ctx)
	defer cancel()

	names, err := u.deps.NetBIOS.LookupNames(ctx, addr)
	if err != nil {
		return "", err
	}

	for _, n := range names {
		if n.Suffix == ports.NetBIOSFileServer && n.Name != "" {
			return n.Name, nil
		}
	}

	return "", fmt.Errorf("%w: %s has no file server name", ports.ErrNetBIOSLookupFailed, addr)
}

func (u *ScanSubnetUseCase) lookupContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if u.opts.ResolveTimeout > 0 {
		return context.WithTimeout(ctx, u.opts.ResolveTimeout)
	}

	return context.WithCancel(ctx)
}

func (u *ScanSubnetUseCase) deliver(ctx context.Context, sink ports.HostSink, host ports.Host) bool {
	if ctx.Err() != nil {
		return false
	}

	err := sink.DeliverHost(ctx, host)
	if err != nil && !errors.Is(err, errSinkClosed) {
		u.logger.WarnContext(ctx, "Failed to deliver host", logging.Addr(host.IP), logging.Error(err))
	}

	return !errors.Is(err, errSinkClosed)
}

// gatedSink stops forwarding once the resolve phase is over. A delivery
// already handed to the downstream sink is not waited for.
type gatedSink struct {
	sink   ports.HostSink
	closed atomic.Bool
}

func newGatedSink(sink ports.HostSink) *gatedSink {
	return &gatedSink{sink: sink}
}

func (s *gatedSink) DeliverHost(ctx context.Context, host ports.Host) error {
	if s.closed.Load() {
		return errSinkClosed
	}

	if s.sink == nil {
		return nil
	}

	return s.sink.DeliverHost(ctx, host)
}

func (s *gatedSink) close() {
	s.closed.Store(true)
}
