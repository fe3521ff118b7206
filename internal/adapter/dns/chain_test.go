package dns

import (
	"errors"
	"fmt"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khmm12/hostscan/internal/ports"
	"github.com/khmm12/hostscan/internal/ports/mocks"
)

func TestChain_FirstAnswerWins(t *testing.T) {
	addr := netip.MustParseAddr("192.168.1.30")

	first := mocks.NewMockReverseResolver(t)
	first.On("LookupHostname", mock.Anything, addr).Return("", fmt.Errorf("%w: nxdomain", ports.ErrUnknownHost)).Once()

	second := mocks.NewMockReverseResolver(t)
	second.On("LookupHostname", mock.Anything, addr).Return("macbook.local", nil).Once()

	third := mocks.NewMockReverseResolver(t)

	name, err := Chain{first, second, third}.LookupHostname(t.Context(), addr)
	require.NoError(t, err)
	require.Equal(t, "macbook.local", name)
}

func TestChain_AllFail(t *testing.T) {
	addr := netip.MustParseAddr("192.168.1.31")
	refused := errors.New("refused")

	first := mocks.NewMockReverseResolver(t)
	first.On("LookupHostname", mock.Anything, addr).Return("", fmt.Errorf("%w: %w", ports.ErrUnknownHost, refused)).Once()

	_, err := Chain{first}.LookupHostname(t.Context(), addr)
	require.ErrorIs(t, err, ports.ErrUnknownHost)
	require.ErrorIs(t, err, refused)

	_, err = Chain{}.LookupHostname(t.Context(), addr)
	require.ErrorIs(t, err, ports.ErrUnknownHost)
}
