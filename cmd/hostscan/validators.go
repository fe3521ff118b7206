package main

import (
	"net"
	"net/netip"
	"strings"
)

func isIP4Addr(val string) bool {
	if idx := strings.LastIndex(val, ":"); idx != -1 {
		val = val[0:idx]
	}

	ip := net.ParseIP(val)

	return ip != nil && ip.To4() != nil
}

func isIP6Addr(val string) bool {
	if idx := strings.LastIndex(val, ":"); idx != -1 {
		if idx != 0 && val[idx-1:idx] == "]" {
			val = val[1 : idx-1]
		}
	}

	ip := net.ParseIP(val)

	return ip != nil && ip.To4() == nil
}

func isTCPAddr(val string) bool {
	if !isIP4Addr(val) && !isIP6Addr(val) {
		return false
	}

	_, err := net.ResolveTCPAddr("tcp", val)

	return err == nil
}

// isIP4Network accepts networks that still have usable host addresses.
func isIP4Network(val string) bool {
	prefix, err := netip.ParsePrefix(val)
	if err != nil {
		return false
	}

	return prefix.Addr().Is4() && prefix.Bits() < 31
}

// isDNSServer accepts "ip" or "ip:port".
func isDNSServer(val string) bool {
	if _, err := netip.ParseAddr(val); err == nil {
		return true
	}

	_, err := netip.ParseAddrPort(val)

	return err == nil
}

func isLogLevel(val string) bool {
	return val == "debug" || val == "info" || val == "warn" || val == "error"
}
