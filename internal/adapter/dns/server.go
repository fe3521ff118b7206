package dns

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/khmm12/hostscan/internal/ports"
)

var _ ports.ReverseResolver = (*ServerResolver)(nil)

// ServerResolver sends PTR queries straight to one DNS server, typically the
// LAN router, bypassing the platform resolver.
type ServerResolver struct {
	server string
	client *dns.Client
}

func NewServerResolver(server string) (*ServerResolver, error) {
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}

	if _, _, err := net.SplitHostPort(server); err != nil {
		return nil, fmt.Errorf("dns: invalid server address %q: %w", server, err)
	}

	return &ServerResolver{
		server: server,
		client: &dns.Client{Net: "udp", Timeout: 5 * time.Second},
	}, nil
}

func (r *ServerResolver) LookupHostname(ctx context.Context, addr netip.Addr) (string, error) {
	return queryPTR(ctx, r.client, r.server, addr, true)
}

func queryPTR(ctx context.Context, client *dns.Client, server string, addr netip.Addr, recursive bool) (string, error) {
	arpa, err := dns.ReverseAddr(addr.String())
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ports.ErrUnknownHost, addr, err)
	}

	msg := new(dns.Msg)
	msg.SetQuestion(arpa, dns.TypePTR)
	msg.RecursionDesired = recursive

	resp, _, err := client.ExchangeContext(ctx, msg, server)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ports.ErrUnknownHost, addr, err)
	}

	if resp.Rcode != dns.RcodeSuccess {
		return "", fmt.Errorf("%w: %s: %s", ports.ErrUnknownHost, addr, dns.RcodeToString[resp.Rcode])
	}

	for _, rr := range resp.Answer {
		if ptr, ok := rr.(*dns.PTR); ok {
			if name := strings.TrimSuffix(ptr.Ptr, "."); name != "" {
				return name, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s: no PTR record", ports.ErrUnknownHost, addr)
}
