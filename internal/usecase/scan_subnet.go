package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"time"

	"github.com/khmm12/hostscan/internal/common/logging"
	"github.com/khmm12/hostscan/internal/common/tracing"
	"github.com/khmm12/hostscan/internal/ports"
	"github.com/khmm12/hostscan/internal/subnet"
)

const DefaultCeiling = 5 * time.Minute

type ScanOptions struct {
	ProbeTimeout       time.Duration
	ProbeCeiling       time.Duration
	ResolveTimeout     time.Duration
	ResolveCeiling     time.Duration
	ResolveConcurrency int
}

// ScanDeps are the collaborators of a scan. NetBIOS, Vendors and Publisher
// are optional.
type ScanDeps struct {
	Prober    ports.Prober
	Neighbors ports.NeighborTable
	DNS       ports.ReverseResolver
	NetBIOS   ports.NetBIOSResolver
	Vendors   ports.VendorLookup
	Sink      ports.HostSink
	Publisher ports.ScanStatePublisher
}

type ScanSubnetUseCase struct {
	logger *slog.Logger
	deps   ScanDeps
	opts   ScanOptions
}

func NewScanSubnetUseCase(logger *slog.Logger, deps ScanDeps, opts ScanOptions) *ScanSubnetUseCase {
	if opts.ProbeCeiling <= 0 {
		opts.ProbeCeiling = DefaultCeiling
	}

	if opts.ResolveCeiling <= 0 {
		opts.ResolveCeiling = DefaultCeiling
	}

	return &ScanSubnetUseCase{
		logger: logger,
		deps:   deps,
		opts:   opts,
	}
}

type ScanSubnetCommand struct {
	Target netip.Prefix
	// Workers is the number of probe partitions, zero selects one per host bit.
	Workers uint32
}

// Execute probes every usable address of the target, reads the neighbor cache
// once and streams a resolved Host per candidate to the sink. Only an invalid
// prefix, an unreadable neighbor table or a cancelled ctx fail the scan.
func (u *ScanSubnetUseCase) Execute(ctx context.Context, cmd ScanSubnetCommand) (ports.ScanSummary, error) {
	ctx = tracing.WithScanID(ctx)
	started := time.Now()

	base, prefix, ok := subnet.FromPrefix(cmd.Target)
	if !ok {
		return ports.ScanSummary{}, fmt.Errorf("%w: %s is not an IPv4 network", subnet.ErrInvalidPrefix, cmd.Target)
	}

	ranges, err := subnet.Partition(base, prefix, cmd.Workers)
	if err != nil {
		return ports.ScanSummary{}, fmt.Errorf("failed to partition %s: %w", cmd.Target, err)
	}

	summary := ports.ScanSummary{
		ScanID:     tracing.GetScanID(ctx),
		Network:    cmd.Target.Masked().String(),
		Partitions: len(ranges),
	}

	u.logger.InfoContext(ctx, "Probing network",
		slog.String("network", summary.Network),
		slog.Int("partitions", len(ranges)),
		slog.Duration("probe_timeout", u.opts.ProbeTimeout),
	)

	summary.ProbeTimedOut = u.probe(ctx, ranges)
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	if summary.ProbeTimedOut {
		u.logger.WarnContext(ctx, "Probing hit the ceiling, continuing with settled entries", slog.Duration("ceiling", u.opts.ProbeCeiling))
	}

	entries, err := u.deps.Neighbors.Candidates(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to read neighbor table: %w", err)
	}

	summary.Candidates = len(entries)

	u.logger.InfoContext(ctx, "Resolving candidates", slog.Int("candidates", len(entries)))

	stats, timedOut := u.resolve(ctx, entries)
	summary.Delivered = int(stats.delivered.Load())
	summary.DNSResolved = int(stats.dns.Load())
	summary.NetBIOSResolved = int(stats.netbios.Load())
	summary.ResolveTimedOut = timedOut
	summary.Duration = time.Since(started)

	if err := ctx.Err(); err != nil {
		return summary, err
	}

	u.logger.InfoContext(ctx, "Finished scan",
		slog.Int("candidates", summary.Candidates),
		slog.Int("delivered", summary.Delivered),
		slog.Int("dns_resolved", summary.DNSResolved),
		slog.Int("netbios_resolved", summary.NetBIOSResolved),
		slog.Duration("duration", summary.Duration),
	)

	if u.deps.Publisher != nil {
		if err := u.deps.Publisher.Publish(ctx, summary); err != nil {
			u.logger.WarnContext(ctx, "Failed to publish scan summary", logging.Error(err))
		}
	}

	return summary, nil
}

// waitOrDone runs wait until it returns or the phase context ends, and
// reports whether the phase ceiling expired while the parent was still live.
// wait keeps running in the background when the phase context ends first.
func waitOrDone(parent, phase context.Context, wait func()) bool {
	done := make(chan struct{})

	go func() {
		defer close(done)
		wait()
	}()

	select {
	case <-done:
	case <-phase.Done():
	}

	return errors.Is(phase.Err(), context.DeadlineExceeded) && parent.Err() == nil
}
