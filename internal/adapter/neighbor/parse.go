package neighbor

import (
	"bufio"
	"io"
	"net/netip"
	"strings"

	"github.com/khmm12/hostscan/internal/ports"
)

const (
	columnIPAddr int = iota
	columnHWType
	columnFlags
	columnHWAddr
	columnMask
	columnDevice
	columnBound
)

const (
	flagIncomplete = "0x0"
	hwAddrInactive = "00:00:00:00:00:00"
)

// Parse reads a neighbor table in the /proc/net/arp layout and returns the
// candidate entries in table order:
//
//	IP address       HW type     Flags       HW address            Mask     Device
//	192.168.1.1      0x1         0x2         aa:bb:cc:dd:ee:ff     *        eth0
//
// Rows with too few columns or a non IPv4 address are skipped, as are
// incomplete and inactive rows.
func Parse(r io.Reader) ([]ports.NeighborEntry, error) {
	s := bufio.NewScanner(r)
	s.Scan() // skip header

	entries := make([]ports.NeighborEntry, 0)

	for s.Scan() {
		f := strings.Fields(s.Text())
		if len(f) < columnBound {
			continue
		}

		if addr, err := netip.ParseAddr(f[columnIPAddr]); err != nil || !addr.Is4() {
			continue
		}

		e := ports.NeighborEntry{
			IP:        f[columnIPAddr],
			Flags:     f[columnFlags],
			HWAddress: strings.ToLower(f[columnHWAddr]),
			Device:    f[columnDevice],
		}

		if !IsCandidate(e) {
			continue
		}

		entries = append(entries, e)
	}

	return entries, s.Err()
}

func IsCandidate(e ports.NeighborEntry) bool {
	return e.Flags != flagIncomplete && e.HWAddress != hwAddrInactive
}
