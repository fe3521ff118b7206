package dns

import (
	"context"
	"errors"
	"net/netip"

	"github.com/khmm12/hostscan/internal/ports"
)

var _ ports.ReverseResolver = Chain(nil)

// Chain tries each resolver in order and returns the first name found.
type Chain []ports.ReverseResolver

func (c Chain) LookupHostname(ctx context.Context, addr netip.Addr) (string, error) {
	errs := make([]error, 0, len(c))

	for _, r := range c {
		name, err := r.LookupHostname(ctx, addr)
		if err == nil {
			return name, nil
		}

		if ctx.Err() != nil {
			return "", err
		}

		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return "", ports.ErrUnknownHost
	}

	return "", errors.Join(errs...)
}
