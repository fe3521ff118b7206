package sink

import (
	"cmp"
	"context"
	"net/netip"
	"slices"

	mapsutil "github.com/projectdiscovery/utils/maps"

	"github.com/khmm12/hostscan/internal/ports"
)

type Order string

const (
	// OrderNumeric sorts by address value.
	OrderNumeric Order = "numeric"
	// OrderLexical sorts by address text, so 10.0.0.10 precedes 10.0.0.9.
	OrderLexical Order = "lexical"
)

var _ ports.HostSink = (*Collector)(nil)

// Collector keeps the latest delivery per IP.
type Collector struct {
	hosts *mapsutil.SyncLockMap[string, ports.Host]
}

func NewCollector() *Collector {
	return &Collector{hosts: mapsutil.NewSyncLockMap[string, ports.Host]()}
}

func (c *Collector) DeliverHost(_ context.Context, host ports.Host) error {
	return c.hosts.Set(host.IP, host)
}

func (c *Collector) Hosts(order Order) []ports.Host {
	all := c.hosts.GetAll()

	hosts := make([]ports.Host, 0, len(all))
	for _, h := range all {
		hosts = append(hosts, h)
	}

	if order == OrderLexical {
		slices.SortFunc(hosts, func(a, b ports.Host) int { return cmp.Compare(a.IP, b.IP) })
		return hosts
	}

	slices.SortFunc(hosts, compareNumeric)

	return hosts
}

func (c *Collector) Len() int {
	return len(c.hosts.GetAll())
}

func (c *Collector) Reset() {
	c.hosts.Clear()
}

func compareNumeric(a, b ports.Host) int {
	ia, errA := netip.ParseAddr(a.IP)
	ib, errB := netip.ParseAddr(b.IP)

	if errA != nil || errB != nil {
		return cmp.Compare(a.IP, b.IP)
	}

	return ia.Compare(ib)
}
