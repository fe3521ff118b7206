// Package subnet splits the usable host addresses of an IPv4 network into
// contiguous ranges, one per probe worker.
package subnet

import (
	"errors"
	"fmt"
)

// MaxWorkers bounds the number of ranges Partition allocates.
const MaxWorkers = 1 << 16

var (
	ErrInvalidPrefix  = errors.New("invalid prefix")
	ErrInvalidWorkers = errors.New("invalid worker count")
)

// AddressRange holds inclusive bounds of host-order IPv4 addresses.
// An empty range has Start == Stop+1.
type AddressRange struct {
	Start uint32
	Stop  uint32
}

func (r AddressRange) Empty() bool {
	return r.Start > r.Stop
}

func (r AddressRange) Len() uint32 {
	if r.Empty() {
		return 0
	}

	return r.Stop - r.Start + 1
}

// Network describes the usable part of a subnet.
type Network struct {
	Netmask     uint32
	Address     uint32
	FirstUsable uint32
	Usable      uint64
}

func (n Network) LastUsable() uint32 {
	return n.FirstUsable + uint32(n.Usable-1)
}

func NewNetwork(base uint32, prefix uint8) (Network, error) {
	if prefix >= 31 {
		return Network{}, fmt.Errorf("%w: /%d has no usable hosts", ErrInvalidPrefix, prefix)
	}

	hostBits := 32 - uint32(prefix)
	netmask := uint32(0xFFFFFFFF) << hostBits
	address := base & netmask

	return Network{
		Netmask:     netmask,
		Address:     address,
		FirstUsable: address + 1,
		Usable:      uint64(1)<<hostBits - 2,
	}, nil
}

// DefaultWorkers is the number of host bits of the prefix.
func DefaultWorkers(prefix uint8) uint32 {
	if prefix >= 32 {
		return 1
	}

	return 32 - uint32(prefix)
}

// Partition returns exactly workers ranges in increasing address order that
// together cover the usable hosts of base/prefix without overlap. A zero
// workers value selects DefaultWorkers. When workers exceeds the number of
// usable hosts the trailing ranges are empty.
func Partition(base uint32, prefix uint8, workers uint32) ([]AddressRange, error) {
	network, err := NewNetwork(base, prefix)
	if err != nil {
		return nil, err
	}

	if workers == 0 {
		workers = DefaultWorkers(prefix)
	}

	if workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrInvalidWorkers, workers, MaxWorkers)
	}

	chunk := (network.Usable + uint64(workers) - 1) / uint64(workers)
	last := uint64(network.LastUsable())

	ranges := make([]AddressRange, 0, workers)
	start := uint64(network.FirstUsable)

	for range workers {
		if start > last {
			ranges = append(ranges, AddressRange{Start: uint32(last) + 1, Stop: uint32(last)})
			continue
		}

		stop := min(start+chunk-1, last)
		ranges = append(ranges, AddressRange{Start: uint32(start), Stop: uint32(stop)})
		start = stop + 1
	}

	return ranges, nil
}
