// Package neighbor reads the platform neighbor (ARP) cache.
package neighbor

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/khmm12/hostscan/internal/common/logging"
	"github.com/khmm12/hostscan/internal/ports"
)

// Source opens a snapshot of the neighbor cache in the /proc/net/arp layout.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	String() string
}

var _ ports.NeighborTable = (*Table)(nil)

type Table struct {
	logger *slog.Logger
	source Source
}

func NewTable(logger *slog.Logger, source Source) *Table {
	return &Table{
		logger: logger,
		source: source,
	}
}

func (t *Table) Candidates(ctx context.Context) ([]ports.NeighborEntry, error) {
	rc, err := t.source.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ports.ErrNeighborTableUnavailable, t.source, err)
	}

	defer func() {
		if cerr := rc.Close(); cerr != nil {
			t.logger.WarnContext(ctx, "Failed to close neighbor table", logging.Error(cerr))
		}
	}()

	entries, err := Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ports.ErrNeighborTableUnavailable, t.source, err)
	}

	t.logger.DebugContext(ctx, "Read neighbor table",
		slog.String("source", t.source.String()),
		slog.Int("candidates", len(entries)),
	)

	return entries, nil
}
