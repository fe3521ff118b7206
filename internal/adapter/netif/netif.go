// Package netif finds the local network a scan targets by default.
package netif

import (
	"errors"
	"fmt"
	"net"
	"net/netip"

	"github.com/jackpal/gateway"
)

// FallbackBits is used when the mask of the default interface is unknown.
const FallbackBits = 24

var ErrNoDefaultRoute = errors.New("no default IPv4 route")

type Interface struct {
	Name string
	// Prefix is the interface network, masked.
	Prefix netip.Prefix
}

// Default returns the interface that holds the default route.
func Default() (Interface, error) {
	ip, err := gateway.DiscoverInterface()
	if err != nil {
		return Interface{}, fmt.Errorf("%w: %w", ErrNoDefaultRoute, err)
	}

	addr, ok := netip.AddrFromSlice(ip.To4())
	if !ok {
		return Interface{}, fmt.Errorf("%w: interface address %s is not IPv4", ErrNoDefaultRoute, ip)
	}

	ifaces, err := net.Interfaces()
	if err != nil {
		return Interface{}, fmt.Errorf("failed to list interfaces: %w", err)
	}

	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		if prefix, ok := match(addrs, addr); ok {
			return Interface{Name: iface.Name, Prefix: prefix}, nil
		}
	}

	return Interface{Prefix: netip.PrefixFrom(addr, FallbackBits).Masked()}, nil
}

// ByName returns the first IPv4 network configured on the named interface.
func ByName(name string) (Interface, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return Interface{}, fmt.Errorf("failed to find interface %s: %w", name, err)
	}

	addrs, err := iface.Addrs()
	if err != nil {
		return Interface{}, fmt.Errorf("failed to list addresses of %s: %w", name, err)
	}

	for _, a := range addrs {
		if prefix, ok := toPrefix(a); ok {
			return Interface{Name: iface.Name, Prefix: prefix}, nil
		}
	}

	return Interface{}, fmt.Errorf("interface %s has no IPv4 address", name)
}

func match(addrs []net.Addr, ip netip.Addr) (netip.Prefix, bool) {
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}

		got, ok := netip.AddrFromSlice(ipNet.IP.To4())
		if !ok || got != ip {
			continue
		}

		return toPrefix(a)
	}

	return netip.Prefix{}, false
}

func toPrefix(a net.Addr) (netip.Prefix, bool) {
	ipNet, ok := a.(*net.IPNet)
	if !ok {
		return netip.Prefix{}, false
	}

	ip, ok := netip.AddrFromSlice(ipNet.IP.To4())
	if !ok {
		return netip.Prefix{}, false
	}

	ones, bits := ipNet.Mask.Size()
	if bits != 32 {
		return netip.Prefix{}, false
	}

	return netip.PrefixFrom(ip, ones).Masked(), true
}
