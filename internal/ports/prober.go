package ports

import (
	"context"
	"net/netip"
	"time"
)

// Prober contacts an address so that the platform resolves its hardware
// address. The result is observed later through the NeighborTable.
type Prober interface {
	Probe(ctx context.Context, addr netip.Addr, timeout time.Duration) error
}
