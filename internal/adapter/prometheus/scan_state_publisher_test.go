package prometheus

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/khmm12/hostscan/internal/ports"
)

func TestScanStatePublisher_PublishCompleteScan(t *testing.T) {
	ctx := context.Background()
	exporter, publisher := newTestPublisher(t)

	err := publisher.Publish(ctx, ports.ScanSummary{
		Network:         "192.168.1.0/24",
		Candidates:      5,
		Delivered:       7,
		DNSResolved:     3,
		NetBIOSResolved: 2,
		Duration:        2500 * time.Millisecond,
	})
	require.NoError(t, err)

	requireMetric(t, 1.0, exporter.metrics.scansTotal)
	requireMetric(t, 1.0, exporter.metrics.scanStatus)
	requireMetric(t, 5.0, exporter.metrics.scanCandidates)
	requireMetric(t, 3.0, exporter.metrics.scanDNSResolved)
	requireMetric(t, 2.0, exporter.metrics.scanNetBIOSResolved)
	requireMetric(t, 2.5, exporter.metrics.scanDuration)
	requireMetric(t, 1700000000, exporter.metrics.scanTimestamp)
}

func TestScanStatePublisher_PublishIncompleteScan(t *testing.T) {
	ctx := context.Background()
	exporter, publisher := newTestPublisher(t)

	err := publisher.Publish(ctx, ports.ScanSummary{ResolveTimedOut: true})
	require.NoError(t, err)

	requireMetric(t, 0.0, exporter.metrics.scanStatus)
	requireMetric(t, 1.0, exporter.metrics.scansTotal)
}

func TestHostSink_KeepsLatestNameAndDropsStaleHosts(t *testing.T) {
	ctx := context.Background()
	exporter, publisher := newTestPublisher(t)
	sink := NewHostSink(exporter)

	require.NoError(t, sink.DeliverHost(ctx, ports.Host{IP: "10.0.0.2", HWAddress: "aa:00:00:00:00:02"}))
	require.NoError(t, sink.DeliverHost(ctx, ports.Host{IP: "10.0.0.2", HWAddress: "aa:00:00:00:00:02", Hostname: "nas"}))
	require.NoError(t, sink.DeliverHost(ctx, ports.Host{IP: "10.0.0.3", HWAddress: "aa:00:00:00:00:03", Vendor: "Acme"}))
	require.NoError(t, publisher.Publish(ctx, ports.ScanSummary{Candidates: 2}))

	requireMetric(t, 3.0, exporter.metrics.hostDeliveries)
	require.Equal(t, 2, testutil.CollectAndCount(exporter.metrics.hostInfo))

	expected := `
# HELP hostscan_host_info Host seen by the last scan, always 1
# TYPE hostscan_host_info gauge
hostscan_host_info{hostname="nas",hw_address="aa:00:00:00:00:02",ip="10.0.0.2",vendor=""} 1
hostscan_host_info{hostname="",hw_address="aa:00:00:00:00:03",ip="10.0.0.3",vendor="Acme"} 1
`
	require.NoError(t, testutil.CollectAndCompare(exporter.metrics.hostInfo, strings.NewReader(expected)))

	// 10.0.0.3 left the network.
	require.NoError(t, sink.DeliverHost(ctx, ports.Host{IP: "10.0.0.2", HWAddress: "aa:00:00:00:00:02", Hostname: "nas"}))
	require.NoError(t, publisher.Publish(ctx, ports.ScanSummary{Candidates: 1}))

	require.Equal(t, 1, testutil.CollectAndCount(exporter.metrics.hostInfo))
	requireMetric(t, 1.0, exporter.metrics.hostInfo.WithLabelValues("10.0.0.2", "aa:00:00:00:00:02", "nas", ""))
}

func TestExporter_Handler(t *testing.T) {
	exporter, _ := newTestPublisher(t)

	count, err := testutil.GatherAndCount(exporter.reg, "hostscan_scans_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.NotNil(t, exporter.Handler())
}

func newTestPublisher(t *testing.T) (*Exporter, *ScanStatePublisher) {
	t.Helper()

	exporter, err := NewExporter()
	require.NoError(t, err)

	publisher := NewScanStatePublisher(slog.New(slog.NewTextHandler(io.Discard, nil)), exporter)
	publisher.now = func() time.Time { return time.Unix(1700000000, 0) }

	return exporter, publisher
}

func requireMetric(t *testing.T, expected float64, metric prometheus.Collector) {
	t.Helper()

	require.InDelta(t, expected, testutil.ToFloat64(metric), 0.001)
}
