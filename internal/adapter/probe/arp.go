package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/mdlayher/arp"
	mapsutil "github.com/projectdiscovery/utils/maps"

	"github.com/khmm12/hostscan/internal/common/logging"
	"github.com/khmm12/hostscan/internal/ports"
)

var (
	_ ports.Prober        = (*ARPProber)(nil)
	_ ports.NeighborTable = (*ARPProber)(nil)
)

// ARPProber broadcasts ARP requests on one interface and records the replies
// itself. The kernel does not cache replies to requests it did not send, so
// the prober doubles as the neighbor table for the scan. Requires CAP_NET_RAW
// or root.
type ARPProber struct {
	logger *slog.Logger
	device string
	client *arp.Client
	seen   *mapsutil.SyncLockMap[netip.Addr, string]
	done   chan struct{}
}

func NewARPProber(logger *slog.Logger, device string) (*ARPProber, error) {
	iface, err := net.InterfaceByName(device)
	if err != nil {
		return nil, fmt.Errorf("probe: failed to find interface %s: %w", device, err)
	}

	client, err := arp.Dial(iface)
	if err != nil {
		return nil, fmt.Errorf("probe: failed to open ARP socket on %s: %w", device, err)
	}

	p := newARPProber(logger, device)
	p.client = client

	go p.readReplies()

	return p, nil
}

func newARPProber(logger *slog.Logger, device string) *ARPProber {
	return &ARPProber{
		logger: logger,
		device: device,
		seen:   mapsutil.NewSyncLockMap[netip.Addr, string](),
		done:   make(chan struct{}),
	}
}

func (p *ARPProber) Close() error {
	err := p.client.Close()
	<-p.done

	return err
}

func (p *ARPProber) Probe(ctx context.Context, addr netip.Addr, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := p.client.Request(addr); err != nil {
		return classify(err)
	}

	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Candidates returns the hosts that answered since the previous call, in
// address order, and forgets them.
func (p *ARPProber) Candidates(_ context.Context) ([]ports.NeighborEntry, error) {
	replies := p.seen.GetAll()
	for addr := range replies {
		p.seen.Delete(addr)
	}

	addrs := make([]netip.Addr, 0, len(replies))
	for addr := range replies {
		addrs = append(addrs, addr)
	}

	slices.SortFunc(addrs, netip.Addr.Compare)

	entries := make([]ports.NeighborEntry, 0, len(addrs))
	for _, addr := range addrs {
		entries = append(entries, ports.NeighborEntry{
			IP:        addr.String(),
			Flags:     "0x2",
			HWAddress: replies[addr],
			Device:    p.device,
		})
	}

	return entries, nil
}

func (p *ARPProber) readReplies() {
	defer close(p.done)

	failures := 0

	for {
		pkt, _, err := p.client.Read()
		if err != nil {
			if errors.Is(err, net.ErrClosed) || errors.Is(err, os.ErrClosed) {
				return
			}

			// Malformed frames are skipped, a broken socket ends the reader.
			if failures++; failures > maxReadFailures {
				p.logger.Debug("ARP reader stopped", logging.Error(err))
				return
			}

			continue
		}

		failures = 0
		p.record(pkt)
	}
}

func (p *ARPProber) record(pkt *arp.Packet) {
	if pkt.Operation != arp.OperationReply || !pkt.SenderIP.Is4() {
		return
	}

	hw := strings.ToLower(pkt.SenderHardwareAddr.String())
	if hw == zeroMAC {
		return
	}

	_ = p.seen.Set(pkt.SenderIP, hw)
}

const (
	zeroMAC         = "00:00:00:00:00:00"
	maxReadFailures = 100
)
