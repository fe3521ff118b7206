package sink

import (
	"context"
	"errors"

	"github.com/khmm12/hostscan/internal/ports"
)

var (
	_ ports.HostSink           = Fanout(nil)
	_ ports.HostSink           = Discard{}
	_ ports.ScanStatePublisher = Publishers(nil)
)

// Fanout delivers every host to each sink in turn. All sinks are tried even
// if one fails.
type Fanout []ports.HostSink

func (f Fanout) DeliverHost(ctx context.Context, host ports.Host) error {
	var errs []error

	for _, s := range f {
		if err := s.DeliverHost(ctx, host); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

type Publishers []ports.ScanStatePublisher

func (p Publishers) Publish(ctx context.Context, summary ports.ScanSummary) error {
	var errs []error

	for _, pub := range p {
		if err := pub.Publish(ctx, summary); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Discard accepts and drops every host.
type Discard struct{}

func (Discard) DeliverHost(context.Context, ports.Host) error { return nil }
