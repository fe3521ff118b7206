package ports

import (
	"context"
	"net/netip"
)

// NetBIOSFileServer is the name suffix of the file server service.
const NetBIOSFileServer byte = 0x20

type NetBIOSName struct {
	Name   string
	Suffix byte
	Group  bool
}

type ReverseResolver interface {
	LookupHostname(ctx context.Context, addr netip.Addr) (string, error)
}

type NetBIOSResolver interface {
	LookupNames(ctx context.Context, addr netip.Addr) ([]NetBIOSName, error)
}
