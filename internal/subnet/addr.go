package subnet

import (
	"encoding/binary"
	"net/netip"
)

func ToAddr(v uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)

	return netip.AddrFrom4(b)
}

func FromAddr(addr netip.Addr) (uint32, bool) {
	addr = addr.Unmap()
	if !addr.Is4() {
		return 0, false
	}

	b := addr.As4()

	return binary.BigEndian.Uint32(b[:]), true
}

// FromPrefix splits an IPv4 prefix into the base address and prefix length.
func FromPrefix(p netip.Prefix) (uint32, uint8, bool) {
	base, ok := FromAddr(p.Addr())
	if !ok || !p.IsValid() {
		return 0, 0, false
	}

	return base, uint8(p.Bits()), true
}
