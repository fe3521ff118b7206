package usecase

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/khmm12/hostscan/internal/common/logging"
	"github.com/khmm12/hostscan/internal/ports"
	"github.com/khmm12/hostscan/internal/subnet"
)

// probe runs one worker per range and returns true when the probe ceiling cut
// the phase short. Probe failures never surface: an unreachable address just
// leaves no neighbor entry behind.
func (u *ScanSubnetUseCase) probe(ctx context.Context, ranges []subnet.AddressRange) bool {
	phase, cancel := context.WithTimeout(ctx, u.opts.ProbeCeiling)
	defer cancel()

	var g errgroup.Group

	for _, r := range ranges {
		if r.Empty() {
			continue
		}

		g.Go(func() error {
			u.probeRange(phase, r)
			return nil
		})
	}

	return waitOrDone(ctx, phase, func() { _ = g.Wait() })
}

func (u *ScanSubnetUseCase) probeRange(ctx context.Context, r subnet.AddressRange) {
	for v := r.Start; ; v++ {
		if ctx.Err() != nil {
			return
		}

		addr := subnet.ToAddr(v)

		err := u.deps.Prober.Probe(ctx, addr, u.opts.ProbeTimeout)
		if err != nil && !errors.Is(err, ports.ErrProbeTimeout) && ctx.Err() == nil {
			u.logger.DebugContext(ctx, "Probe failed", logging.Addr(addr.String()), logging.Error(err))
		}

		if v == r.Stop {
			return
		}
	}
}
