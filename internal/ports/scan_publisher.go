package ports

import (
	"context"
	"time"
)

type ScanSummary struct {
	ScanID          string
	Network         string
	Partitions      int
	Candidates      int
	Delivered       int
	DNSResolved     int
	NetBIOSResolved int
	ProbeTimedOut   bool
	ResolveTimedOut bool
	Duration        time.Duration
}

type ScanStatePublisher interface {
	Publish(ctx context.Context, summary ScanSummary) error
}
