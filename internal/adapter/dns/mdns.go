package dns

import (
	"context"
	"net/netip"
	"strconv"
	"time"

	"github.com/miekg/dns"

	"github.com/khmm12/hostscan/internal/ports"
)

// MDNSPort is where multicast DNS responders listen.
const MDNSPort = 5353

var _ ports.ReverseResolver = (*MDNSResolver)(nil)

// MDNSResolver asks the host itself for its name with a unicast query to its
// mDNS responder. Queries from a port other than 5353 are answered directly
// to the sender, so no multicast group membership is needed.
type MDNSResolver struct {
	port   int
	client *dns.Client
}

func NewMDNSResolver() *MDNSResolver {
	return &MDNSResolver{
		port:   MDNSPort,
		client: &dns.Client{Net: "udp", Timeout: 2 * time.Second},
	}
}

func (r *MDNSResolver) LookupHostname(ctx context.Context, addr netip.Addr) (string, error) {
	server := netip.AddrPortFrom(addr, uint16(r.port)).String()

	return queryPTR(ctx, r.client, server, addr, false)
}

func (r *MDNSResolver) String() string {
	return "mdns:" + strconv.Itoa(r.port)
}
