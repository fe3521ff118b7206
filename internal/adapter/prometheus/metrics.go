package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	scansTotal          prometheus.Counter
	scanStatus          prometheus.Gauge
	scanCandidates      prometheus.Gauge
	scanDNSResolved     prometheus.Gauge
	scanNetBIOSResolved prometheus.Gauge
	scanDuration        prometheus.Gauge
	scanTimestamp       prometheus.Gauge
	hostDeliveries      prometheus.Counter
	hostInfo            *prometheus.GaugeVec
}

const (
	prefix = "hostscan_"
)

func newMetrics(reg *prometheus.Registry) (*metrics, error) {
	m := &metrics{
		scansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "scans_total",
			Help: "Number of completed scans",
		}),
		scanStatus: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "scan_complete",
			Help: "Whether the last scan finished within its ceilings (1: complete, 0: cut short)",
		}),
		scanCandidates: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "scan_hosts",
			Help: "Number of neighbors found by the last scan",
		}),
		scanDNSResolved: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "scan_hosts_dns_named",
			Help: "Number of hosts named by reverse DNS in the last scan",
		}),
		scanNetBIOSResolved: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "scan_hosts_netbios_named",
			Help: "Number of hosts named by NetBIOS in the last scan",
		}),
		scanDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "scan_duration_seconds",
			Help: "Duration of the last scan",
		}),
		scanTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: prefix + "scan_timestamp_seconds",
			Help: "Unix time the last scan finished",
		}),
		hostDeliveries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: prefix + "host_deliveries_total",
			Help: "Number of host records delivered, including name updates",
		}),
		hostInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: prefix + "host_info",
			Help: "Host seen by the last scan, always 1",
		}, []string{"ip", "hw_address", "hostname", "vendor"}),
	}

	err := register(reg,
		m.scansTotal,
		m.scanStatus,
		m.scanCandidates,
		m.scanDNSResolved,
		m.scanNetBIOSResolved,
		m.scanDuration,
		m.scanTimestamp,
		m.hostDeliveries,
		m.hostInfo,
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func register(r *prometheus.Registry, cs ...prometheus.Collector) error {
	for i, c := range cs {
		if err := r.Register(c); err != nil {
			for _, c := range cs[:i] {
				r.Unregister(c)
			}

			return err
		}
	}

	return nil
}
