// Package sink holds the HostSink implementations used by the CLI.
package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/khmm12/hostscan/internal/ports"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var (
	_ ports.HostSink           = (*Console)(nil)
	_ ports.ScanStatePublisher = (*Console)(nil)
)

type consoleStyles struct {
	ip       lipgloss.Style
	hw       lipgloss.Style
	hostname lipgloss.Style
	vendor   lipgloss.Style
	summary  lipgloss.Style
}

func newConsoleStyles(r *lipgloss.Renderer) consoleStyles {
	return consoleStyles{
		ip:       r.NewStyle().Width(16).Bold(true),
		hw:       r.NewStyle().Width(18).Foreground(lipgloss.Color("240")),
		hostname: r.NewStyle().Foreground(lipgloss.Color("86")),
		vendor:   r.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
		summary:  r.NewStyle().Foreground(lipgloss.Color("229")),
	}
}

// Console writes one line per delivery. A host may be printed more than
// once when a later lookup improves its name.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	format Format
	enc    *json.Encoder
	styles consoleStyles
}

func NewConsole(w io.Writer, format Format) *Console {
	return &Console{
		w:      w,
		format: format,
		enc:    json.NewEncoder(w),
		styles: newConsoleStyles(lipgloss.NewRenderer(w)),
	}
}

func (c *Console) DeliverHost(_ context.Context, host ports.Host) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.writeHost(host)
}

// WriteHosts prints a complete result set, used by batch output.
func (c *Console) WriteHosts(hosts []ports.Host) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, h := range hosts {
		if err := c.writeHost(h); err != nil {
			return err
		}
	}

	return nil
}

func (c *Console) Publish(_ context.Context, s ports.ScanSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.format == FormatJSON {
		return c.enc.Encode(summaryRecord{
			Summary:         true,
			ScanID:          s.ScanID,
			Network:         s.Network,
			Candidates:      s.Candidates,
			Delivered:       s.Delivered,
			DNSResolved:     s.DNSResolved,
			NetBIOSResolved: s.NetBIOSResolved,
			ProbeTimedOut:   s.ProbeTimedOut,
			ResolveTimedOut: s.ResolveTimedOut,
			DurationSeconds: s.Duration.Seconds(),
		})
	}

	line := fmt.Sprintf("%s: %d hosts found (%d named by DNS, %d by NetBIOS) in %s",
		s.Network, s.Candidates, s.DNSResolved, s.NetBIOSResolved, s.Duration.Round(time.Millisecond))

	if s.ProbeTimedOut || s.ResolveTimedOut {
		line += ", incomplete"
	}

	_, err := fmt.Fprintln(c.w, c.styles.summary.Render(line))

	return err
}

func (c *Console) writeHost(host ports.Host) error {
	if c.format == FormatJSON {
		return c.enc.Encode(host)
	}

	line := c.styles.ip.Render(host.IP) + c.styles.hw.Render(host.HWAddress)

	if host.Hostname != "" {
		line += c.styles.hostname.Render(host.Hostname)
	} else {
		line += c.styles.hostname.Render("-")
	}

	if host.Vendor != "" {
		line += " " + c.styles.vendor.Render("("+host.Vendor+")")
	}

	_, err := fmt.Fprintln(c.w, line)

	return err
}

type summaryRecord struct {
	Summary         bool    `json:"summary"`
	ScanID          string  `json:"scan_id"`
	Network         string  `json:"network"`
	Candidates      int     `json:"candidates"`
	Delivered       int     `json:"delivered"`
	DNSResolved     int     `json:"dns_resolved"`
	NetBIOSResolved int     `json:"netbios_resolved"`
	ProbeTimedOut   bool    `json:"probe_timed_out"`
	ResolveTimedOut bool    `json:"resolve_timed_out"`
	DurationSeconds float64 `json:"duration_seconds"`
}
