package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/netip"
	"time"

	"github.com/khmm12/hostscan/internal/adapter/dns"
	"github.com/khmm12/hostscan/internal/adapter/neighbor"
	"github.com/khmm12/hostscan/internal/adapter/netbios"
	"github.com/khmm12/hostscan/internal/adapter/netif"
	"github.com/khmm12/hostscan/internal/adapter/oui"
	"github.com/khmm12/hostscan/internal/adapter/probe"
	"github.com/khmm12/hostscan/internal/subnet"
	"github.com/khmm12/hostscan/internal/usecase"
)

type Probe struct {
	Method    string        `name:"method" env:"PROBE_METHOD" enum:"udp,tcp,icmp,arp" default:"udp" help:"How neighbor resolution is provoked (udp, tcp, icmp, arp)."`
	Port      int           `name:"port" env:"PROBE_PORT" default:"0" help:"Destination port of udp and tcp probes (0: 12345 for udp, 7 for tcp)."`
	Interface string        `name:"interface" env:"PROBE_INTERFACE" help:"Interface used by arp probes and for the default target (default: interface of the default route)."`
	Timeout   time.Duration `name:"timeout" env:"PROBE_TIMEOUT" default:"200ms" help:"How long a single address is given to answer (e.g., 200ms, 1s)."`
	Ceiling   time.Duration `name:"ceiling" env:"PROBE_CEILING" default:"5m" help:"Upper bound on the whole probing phase."`
}

type Resolve struct {
	Timeout     time.Duration `name:"timeout" env:"RESOLVE_TIMEOUT" default:"2s" help:"Timeout of a single DNS or NetBIOS lookup."`
	Ceiling     time.Duration `name:"ceiling" env:"RESOLVE_CEILING" default:"5m" help:"Upper bound on the whole resolution phase."`
	Concurrency int           `name:"concurrency" env:"RESOLVE_CONCURRENCY" default:"0" help:"Maximum hosts resolved at once (0: unbounded)."`
	DNSServer   string        `name:"dns-server" env:"RESOLVE_DNS_SERVER" help:"Query this DNS server for PTR records instead of the system resolver (e.g., 192.168.1.1:53)."`
	MDNS        bool          `name:"mdns" env:"RESOLVE_MDNS" default:"true" negatable:"" help:"Ask the host's mDNS responder when DNS has no name."`
	NetBIOS     bool          `name:"netbios" env:"RESOLVE_NETBIOS" default:"true" negatable:"" help:"Ask hosts for their NetBIOS file server name."`
}

type Neighbor struct {
	Path string `name:"path" env:"NEIGHBOR_PATH" help:"Neighbor table file (default: /proc/net/arp on Linux, 'arp -an' elsewhere)."`
}

type OUI struct {
	Files []string `name:"file" env:"OUI_FILE" sep:"," help:"Comma-separated IEEE registry CSV files used to name hardware vendors."`
}

type Output struct {
	Mode   string `name:"mode" env:"OUTPUT_MODE" enum:"stream,batch" default:"stream" help:"Print hosts as they resolve (stream) or once at the end (batch)."`
	Sort   string `name:"sort" env:"OUTPUT_SORT" enum:"numeric,lexical" default:"numeric" help:"Order of batch output."`
	Format string `name:"format" env:"OUTPUT_FORMAT" enum:"text,json" default:"text" help:"Output format."`
}

// ScanFlags are shared by every command that runs a scan.
type ScanFlags struct {
	Target   string   `arg:"" optional:"" help:"IPv4 network to scan, e.g. 192.168.1.0/24 (default: network of the default route)."`
	Workers  uint32   `name:"workers" env:"WORKERS" default:"0" help:"Number of probe partitions (0: one per host bit)."`
	Probe    Probe    `embed:"" prefix:"probe."`
	Resolve  Resolve  `embed:"" prefix:"resolve."`
	Neighbor Neighbor `embed:"" prefix:"neighbor."`
	OUI      OUI      `embed:"" prefix:"oui."`
	LogLevel string   `name:"log.level" env:"LOG_LEVEL" default:"info" help:"Log level (debug, info, warn, error)"`
}

func (f *ScanFlags) options() usecase.ScanOptions {
	return usecase.ScanOptions{
		ProbeTimeout:       f.Probe.Timeout,
		ProbeCeiling:       f.Probe.Ceiling,
		ResolveTimeout:     f.Resolve.Timeout,
		ResolveCeiling:     f.Resolve.Ceiling,
		ResolveConcurrency: f.Resolve.Concurrency,
	}
}

// target returns the network to scan, falling back to the network of the
// probe interface or of the default route.
func (f *ScanFlags) target() (netip.Prefix, error) {
	if f.Target != "" {
		return netip.ParsePrefix(f.Target)
	}

	iface, err := f.iface()
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("failed to detect the local network, pass TARGET explicitly: %w", err)
	}

	return iface.Prefix, nil
}

func (f *ScanFlags) iface() (netif.Interface, error) {
	if f.Probe.Interface != "" {
		return netif.ByName(f.Probe.Interface)
	}

	return netif.Default()
}

func (f *ScanFlags) validate() []error {
	var errs []error

	if f.Target != "" && !isIP4Network(f.Target) {
		errs = append(errs, fmt.Errorf("TARGET: must be an IPv4 network with a prefix of at most /30 (e.g. 192.168.1.0/24)"))
	}

	if f.Workers > subnet.MaxWorkers {
		errs = append(errs, fmt.Errorf("--workers: must be at most %d", subnet.MaxWorkers))
	}

	if f.Probe.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("--probe.timeout: must be greater than zero"))
	}

	if f.Probe.Ceiling <= 0 {
		errs = append(errs, fmt.Errorf("--probe.ceiling: must be greater than zero"))
	}

	if f.Probe.Port < 0 || f.Probe.Port > 65535 {
		errs = append(errs, fmt.Errorf("--probe.port: must be between 0 and 65535"))
	}

	if f.Resolve.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("--resolve.timeout: must be greater than zero"))
	}

	if f.Resolve.Ceiling <= 0 {
		errs = append(errs, fmt.Errorf("--resolve.ceiling: must be greater than zero"))
	}

	if f.Resolve.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("--resolve.concurrency: must not be negative"))
	}

	if f.Resolve.DNSServer != "" && !isDNSServer(f.Resolve.DNSServer) {
		errs = append(errs, fmt.Errorf("--resolve.dns-server: must be an IP address with an optional port (e.g. 192.168.1.1:53)"))
	}

	if !isLogLevel(f.LogLevel) {
		errs = append(errs, fmt.Errorf("--log.level: must be one of debug, info, warn, error"))
	}

	return errs
}

// scanEnv holds the adapters a scan runs against.
type scanEnv struct {
	deps    usecase.ScanDeps
	closers []io.Closer
}

func (e *scanEnv) Close() error {
	var errs []error

	for _, c := range e.closers {
		errs = append(errs, c.Close())
	}

	return errors.Join(errs...)
}

// newScanEnv builds the prober, neighbor table and resolvers. Sink and
// Publisher are left for the command to fill in.
func newScanEnv(ctx context.Context, logger *slog.Logger, f *ScanFlags) (*scanEnv, error) {
	env := &scanEnv{}

	switch f.Probe.Method {
	case "arp":
		iface, err := f.iface()
		if err != nil {
			return nil, err
		}

		p, err := probe.NewARPProber(logger, iface.Name)
		if err != nil {
			return nil, err
		}

		env.closers = append(env.closers, p)
		env.deps.Prober = p
		env.deps.Neighbors = p
	case "icmp":
		p, err := probe.NewICMPProber()
		if err != nil {
			return nil, err
		}

		env.closers = append(env.closers, p)
		env.deps.Prober = p
	default:
		p, err := probe.NewDialProber(f.Probe.Method, f.Probe.Port)
		if err != nil {
			return nil, err
		}

		env.deps.Prober = p
	}

	if env.deps.Neighbors == nil {
		source := neighbor.DefaultSource(f.Neighbor.Path)
		logger.DebugContext(ctx, "Using neighbor table", slog.String("source", source.String()))
		env.deps.Neighbors = neighbor.NewTable(logger, source)
	}

	if f.Resolve.DNSServer != "" {
		r, err := dns.NewServerResolver(f.Resolve.DNSServer)
		if err != nil {
			_ = env.Close()
			return nil, err
		}

		env.deps.DNS = r
	} else {
		env.deps.DNS = dns.NewSystemResolver()
	}

	if f.Resolve.MDNS {
		env.deps.DNS = dns.Chain{env.deps.DNS, dns.NewMDNSResolver()}
	}

	if f.Resolve.NetBIOS {
		concurrency := f.Resolve.Concurrency
		if concurrency == 0 {
			concurrency = netbios.DefaultConcurrency
		}

		c, err := netbios.New(logger, concurrency)
		if err != nil {
			_ = env.Close()
			return nil, err
		}

		env.deps.NetBIOS = c
	}

	if len(f.OUI.Files) > 0 {
		t, err := oui.Load(f.OUI.Files...)
		if err != nil {
			_ = env.Close()
			return nil, err
		}

		logger.DebugContext(ctx, "Loaded vendor registry", slog.Int("prefixes", t.Len()))
		env.deps.Vendors = t
	}

	return env, nil
}
