// Package dns resolves the hostname of an address through reverse DNS.
package dns

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"strings"

	"github.com/khmm12/hostscan/internal/ports"
)

var _ ports.ReverseResolver = (*SystemResolver)(nil)

// SystemResolver uses the platform resolver configuration.
type SystemResolver struct {
	resolver *net.Resolver
}

func NewSystemResolver() *SystemResolver {
	return &SystemResolver{resolver: net.DefaultResolver}
}

func (r *SystemResolver) LookupHostname(ctx context.Context, addr netip.Addr) (string, error) {
	names, err := r.resolver.LookupAddr(ctx, addr.String())
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ports.ErrUnknownHost, addr, err)
	}

	for _, name := range names {
		if name = strings.TrimSuffix(name, "."); name != "" {
			return name, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ports.ErrUnknownHost, addr)
}
