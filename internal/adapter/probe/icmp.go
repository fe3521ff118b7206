package probe

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"

	"github.com/khmm12/hostscan/internal/ports"
)

var _ ports.Prober = (*ICMPProber)(nil)

// ICMPProber sends one echo request per address over a shared raw socket.
// Replies are not read: the request alone makes the kernel resolve the
// neighbor. Requires CAP_NET_RAW or root.
type ICMPProber struct {
	conn *icmp.PacketConn
	id   int
	seq  atomic.Uint32
}

func NewICMPProber() (*ICMPProber, error) {
	conn, err := icmp.ListenPacket("ip4:icmp", "0.0.0.0")
	if err != nil {
		return nil, fmt.Errorf("probe: failed to open ICMP socket: %w", err)
	}

	return &ICMPProber{
		conn: conn,
		id:   os.Getpid() & 0xffff,
	}, nil
}

func (p *ICMPProber) Close() error {
	return p.conn.Close()
}

func (p *ICMPProber) Probe(ctx context.Context, addr netip.Addr, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := echoRequest(p.id, int(p.seq.Add(1)&0xffff))
	if err != nil {
		return fmt.Errorf("probe: failed to marshal ICMP echo: %w", err)
	}

	if _, err := p.conn.WriteTo(b, &net.IPAddr{IP: addr.AsSlice()}); err != nil {
		return classify(err)
	}

	// Give the kernel the probe timeout to complete resolution before the
	// worker moves on, like a connect attempt would.
	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func echoRequest(id, seq int) ([]byte, error) {
	msg := icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{
			ID:   id,
			Seq:  seq,
			Data: []byte("hostscan"),
		},
	}

	return msg.Marshal(nil)
}
