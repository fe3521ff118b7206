package ports

import "context"

// Host is a discovered neighbor. An empty Hostname or Vendor means unknown.
type Host struct {
	IP        string `json:"ip"`
	HWAddress string `json:"hw_address"`
	Hostname  string `json:"hostname,omitempty"`
	Vendor    string `json:"vendor,omitempty"`
}

// HostSink receives hosts as they resolve. Implementations must be safe for
// concurrent use and treat the latest delivery for an IP as authoritative.
type HostSink interface {
	DeliverHost(ctx context.Context, host Host) error
}

type VendorLookup interface {
	Vendor(hwAddress string) (string, bool)
}
