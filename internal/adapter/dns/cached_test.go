package dns

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khmm12/hostscan/internal/ports"
	portsm "github.com/khmm12/hostscan/internal/ports/mocks"
)

func TestCachedResolver_ServesRepeatedLookupsFromCache(t *testing.T) {
	next := portsm.NewMockReverseResolver(t)
	addr := netip.MustParseAddr("192.168.1.10")

	next.On("LookupHostname", mock.Anything, addr).Return("nas.lan", nil).Once()

	r := NewCachedResolver(next, 16, time.Minute)

	for range 3 {
		name, err := r.LookupHostname(t.Context(), addr)
		require.NoError(t, err)
		require.Equal(t, "nas.lan", name)
	}
}

func TestCachedResolver_DoesNotCacheFailures(t *testing.T) {
	next := portsm.NewMockReverseResolver(t)
	addr := netip.MustParseAddr("192.168.1.11")

	next.On("LookupHostname", mock.Anything, addr).Return("", ports.ErrUnknownHost).Once()
	next.On("LookupHostname", mock.Anything, addr).Return("late.lan", nil).Once()

	r := NewCachedResolver(next, 16, time.Minute)

	_, err := r.LookupHostname(t.Context(), addr)
	require.ErrorIs(t, err, ports.ErrUnknownHost)

	name, err := r.LookupHostname(t.Context(), addr)
	require.NoError(t, err)
	require.Equal(t, "late.lan", name)
}
