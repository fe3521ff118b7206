package netbios

import (
	"context"
	"encoding/binary"
	"io"
	"log/slog"
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/khmm12/hostscan/internal/ports"
)

func TestClient_LookupNames(t *testing.T) {
	pc, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pc.Close() })

	go func() {
		buf := make([]byte, 512)
		n, from, err := pc.ReadFrom(buf)
		if err != nil || n < 2 {
			return
		}

		id := binary.BigEndian.Uint16(buf[:2])
		_, _ = pc.WriteTo(buildResponse(id^0xffff, nil), from)
		_, _ = pc.WriteTo(buildResponse(id, []ports.NetBIOSName{{Name: "LAPTOP", Suffix: 0x20}}), from)
	}()

	c := newTestClient(t, pc.LocalAddr().(*net.UDPAddr).Port)

	ctx, cancel := context.WithTimeout(t.Context(), 2*time.Second)
	defer cancel()

	names, err := c.LookupNames(ctx, netip.MustParseAddr("127.0.0.1"))
	require.NoError(t, err)
	require.Equal(t, []ports.NetBIOSName{{Name: "LAPTOP", Suffix: 0x20}}, names)
}

func TestClient_LookupNamesTimesOut(t *testing.T) {
	pc, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pc.Close() })

	c := newTestClient(t, pc.LocalAddr().(*net.UDPAddr).Port)

	ctx, cancel := context.WithTimeout(t.Context(), 100*time.Millisecond)
	defer cancel()

	_, err = c.LookupNames(ctx, netip.MustParseAddr("127.0.0.1"))
	require.ErrorIs(t, err, ports.ErrNetBIOSLookupFailed)
}

func newTestClient(t *testing.T, port int) *Client {
	t.Helper()

	c, err := New(slog.New(slog.NewTextHandler(io.Discard, nil)), 1)
	require.NoError(t, err)

	c.port = port

	return c
}
