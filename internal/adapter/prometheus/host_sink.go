package prometheus

import (
	"context"

	"github.com/khmm12/hostscan/internal/ports"
)

var _ ports.HostSink = (*HostSink)(nil)

// HostSink exposes every delivered host as a host_info series.
type HostSink struct {
	exporter *Exporter
}

func NewHostSink(exporter *Exporter) *HostSink {
	return &HostSink{exporter: exporter}
}

func (s *HostSink) DeliverHost(_ context.Context, host ports.Host) error {
	s.exporter.metrics.hostDeliveries.Inc()
	s.exporter.setHost(host.IP, host.HWAddress, host.Hostname, host.Vendor)

	return nil
}
