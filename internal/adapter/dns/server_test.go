package dns

import (
	"net"
	"net/netip"
	"testing"

	"github.com/miekg/dns"
	"github.com/stretchr/testify/require"

	"github.com/khmm12/hostscan/internal/ports"
)

func TestServerResolver_ResolvesPTR(t *testing.T) {
	addr := startTestServer(t, map[string]string{
		"10.1.168.192.in-addr.arpa.": "nas.lan.",
	})

	r, err := NewServerResolver(addr)
	require.NoError(t, err)

	name, err := r.LookupHostname(t.Context(), netip.MustParseAddr("192.168.1.10"))
	require.NoError(t, err)
	require.Equal(t, "nas.lan", name)

	_, err = r.LookupHostname(t.Context(), netip.MustParseAddr("192.168.1.11"))
	require.ErrorIs(t, err, ports.ErrUnknownHost)
}

func TestNewServerResolver_AddsDefaultPort(t *testing.T) {
	r, err := NewServerResolver("192.168.1.1")
	require.NoError(t, err)
	require.Equal(t, "192.168.1.1:53", r.server)
}

func startTestServer(t *testing.T, records map[string]string) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})

	srv := &dns.Server{
		PacketConn:        pc,
		NotifyStartedFunc: func() { close(started) },
		Handler: dns.HandlerFunc(func(w dns.ResponseWriter, req *dns.Msg) {
			resp := new(dns.Msg)
			resp.SetReply(req)

			q := req.Question[0]
			if ptr, ok := records[q.Name]; ok && q.Qtype == dns.TypePTR {
				resp.Answer = append(resp.Answer, &dns.PTR{
					Hdr: dns.RR_Header{Name: q.Name, Rrtype: dns.TypePTR, Class: dns.ClassINET, Ttl: 60},
					Ptr: ptr,
				})
			} else {
				resp.SetRcode(req, dns.RcodeNameError)
			}

			_ = w.WriteMsg(resp)
		}),
	}

	go func() { _ = srv.ActivateAndServe() }()
	t.Cleanup(func() { _ = srv.Shutdown() })

	<-started

	return pc.LocalAddr().String()
}

func TestMDNSResolver_AsksTheHost(t *testing.T) {
	addr := startTestServer(t, map[string]string{
		"1.0.0.127.in-addr.arpa.": "macbook.local.",
	})

	port, err := netip.ParseAddrPort(addr)
	require.NoError(t, err)

	r := NewMDNSResolver()
	r.port = int(port.Port())

	name, err := r.LookupHostname(t.Context(), netip.MustParseAddr("127.0.0.1"))
	require.NoError(t, err)
	require.Equal(t, "macbook.local", name)
}
