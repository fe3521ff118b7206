package probe

import (
	"io"
	"log/slog"
	"net"
	"net/netip"
	"testing"

	"github.com/mdlayher/arp"
	"github.com/stretchr/testify/require"

	"github.com/khmm12/hostscan/internal/ports"
)

func TestARPProber_RecordsRepliesOnly(t *testing.T) {
	p := newARPProber(slog.New(slog.NewTextHandler(io.Discard, nil)), "eth0")

	reply := func(ip string, mac string) *arp.Packet {
		hw, err := net.ParseMAC(mac)
		require.NoError(t, err)

		return &arp.Packet{
			Operation:          arp.OperationReply,
			SenderHardwareAddr: hw,
			SenderIP:           netip.MustParseAddr(ip),
		}
	}

	p.record(reply("192.168.1.20", "AA:BB:CC:DD:EE:20"))
	p.record(reply("192.168.1.3", "aa:bb:cc:dd:ee:03"))
	p.record(reply("192.168.1.4", "00:00:00:00:00:00"))

	request := reply("192.168.1.5", "aa:bb:cc:dd:ee:05")
	request.Operation = arp.OperationRequest
	p.record(request)

	entries, err := p.Candidates(t.Context())
	require.NoError(t, err)
	require.Equal(t, []ports.NeighborEntry{
		{IP: "192.168.1.3", Flags: "0x2", HWAddress: "aa:bb:cc:dd:ee:03", Device: "eth0"},
		{IP: "192.168.1.20", Flags: "0x2", HWAddress: "aa:bb:cc:dd:ee:20", Device: "eth0"},
	}, entries)

	entries, err = p.Candidates(t.Context())
	require.NoError(t, err)
	require.Empty(t, entries)
}
