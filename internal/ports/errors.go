package ports

import "errors"

var (
	ErrProbeTimeout             = errors.New("probe timed out")
	ErrNeighborTableUnavailable = errors.New("neighbor table unavailable")
	ErrUnknownHost              = errors.New("unknown host")
	ErrNetBIOSLookupFailed      = errors.New("netbios lookup failed")
)
