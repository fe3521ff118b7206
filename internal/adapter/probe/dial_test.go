package probe

import (
	"net"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewDialProber(t *testing.T) {
	p, err := NewDialProber("udp", 0)
	require.NoError(t, err)
	require.Equal(t, "udp4", p.network)
	require.Equal(t, DefaultUDPPort, p.port)

	p, err = NewDialProber("tcp", 0)
	require.NoError(t, err)
	require.Equal(t, DefaultTCPPort, p.port)

	_, err = NewDialProber("sctp", 0)
	require.ErrorContains(t, err, "unsupported network")

	_, err = NewDialProber("tcp", 70000)
	require.ErrorContains(t, err, "invalid port")
}

func TestDialProber_TCPConnectsToListener(t *testing.T) {
	l, err := net.Listen("tcp4", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	go func() {
		for {
			c, err := l.Accept()
			if err != nil {
				return
			}
			_ = c.Close()
		}
	}()

	p, err := NewDialProber("tcp", l.Addr().(*net.TCPAddr).Port)
	require.NoError(t, err)

	require.NoError(t, p.Probe(t.Context(), netip.MustParseAddr("127.0.0.1"), time.Second))
}

func TestDialProber_UDPWritesOneByte(t *testing.T) {
	pc, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = pc.Close() })

	p, err := NewDialProber("udp", pc.LocalAddr().(*net.UDPAddr).Port)
	require.NoError(t, err)

	require.NoError(t, p.Probe(t.Context(), netip.MustParseAddr("127.0.0.1"), time.Second))

	require.NoError(t, pc.SetReadDeadline(time.Now().Add(time.Second)))

	buf := make([]byte, 8)
	n, _, err := pc.ReadFrom(buf)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}
