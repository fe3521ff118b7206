package prometheus

import (
	"context"
	"log/slog"
	"time"

	"github.com/khmm12/hostscan/internal/ports"
)

var _ ports.ScanStatePublisher = (*ScanStatePublisher)(nil)

type ScanStatePublisher struct {
	logger   *slog.Logger
	exporter *Exporter
	now      func() time.Time
}

func NewScanStatePublisher(logger *slog.Logger, exporter *Exporter) *ScanStatePublisher {
	return &ScanStatePublisher{
		logger:   logger,
		exporter: exporter,
		now:      time.Now,
	}
}

func (p *ScanStatePublisher) Publish(ctx context.Context, s ports.ScanSummary) error {
	p.logger.DebugContext(ctx, "Publishing scan results",
		slog.Group("publish",
			slog.String("network", s.Network),
			slog.Int("hosts", s.Candidates),
			slog.Int("delivered", s.Delivered),
		))

	var status float64
	if !s.ProbeTimedOut && !s.ResolveTimedOut {
		status = 1.0
	}

	m := p.exporter.metrics

	m.scansTotal.Inc()
	m.scanStatus.Set(status)
	m.scanCandidates.Set(float64(s.Candidates))
	m.scanDNSResolved.Set(float64(s.DNSResolved))
	m.scanNetBIOSResolved.Set(float64(s.NetBIOSResolved))
	m.scanDuration.Set(s.Duration.Seconds())
	m.scanTimestamp.Set(float64(p.now().Unix()))

	p.exporter.rotateHosts()

	return nil
}
