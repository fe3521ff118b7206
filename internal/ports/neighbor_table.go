package ports

import "context"

// NeighborEntry is one row of the platform neighbor (ARP) cache.
type NeighborEntry struct {
	IP        string
	Flags     string
	HWAddress string
	Device    string
}

type NeighborTable interface {
	Candidates(ctx context.Context) ([]NeighborEntry, error)
}
