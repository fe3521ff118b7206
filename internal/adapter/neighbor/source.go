package neighbor

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	osutils "github.com/projectdiscovery/utils/os"
)

const ProcNetARP = "/proc/net/arp"

// ProcSource reads the Linux neighbor cache file.
type ProcSource struct {
	Path string
}

func (s ProcSource) Open(_ context.Context) (io.ReadCloser, error) {
	path := s.Path
	if path == "" {
		path = ProcNetARP
	}

	return os.Open(path)
}

func (s ProcSource) String() string {
	if s.Path == "" {
		return ProcNetARP
	}

	return s.Path
}

// CommandSource runs `arp -an` (macOS, BSD) and rewrites its output into the
// /proc/net/arp layout so that Parse applies unchanged.
type CommandSource struct {
	Name string
	Args []string
}

func (s CommandSource) Open(ctx context.Context) (io.ReadCloser, error) {
	name, args := s.Name, s.Args
	if name == "" {
		name, args = "arp", []string{"-an"}
	}

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", name, err)
	}

	return io.NopCloser(bytes.NewReader(normalizeARPCommand(out))), nil
}

func (s CommandSource) String() string {
	if s.Name == "" {
		return "arp -an"
	}

	return strings.Join(append([]string{s.Name}, s.Args...), " ")
}

// DefaultSource picks the neighbor cache source of the running platform.
// A non-empty path always selects ProcSource.
func DefaultSource(path string) Source {
	if path != "" || osutils.IsLinux() {
		return ProcSource{Path: path}
	}

	if osutils.IsOSX() {
		return CommandSource{}
	}

	return ProcSource{}
}

// normalizeARPCommand converts lines like
//
//	? (192.168.1.1) at aa:bb:cc:dd:ee:ff on en0 ifscope [ethernet]
//	? (192.168.1.9) at (incomplete) on en0 ifscope [ethernet]
//
// into /proc/net/arp rows. Incomplete rows keep the 0x0 flag and the zero
// address so the candidate filter drops them.
func normalizeARPCommand(out []byte) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%-16s %-10s %-10s %-20s %-8s %s\n", "IP address", "HW type", "Flags", "HW address", "Mask", "Device")

	s := bufio.NewScanner(bytes.NewReader(out))
	for s.Scan() {
		line := strings.TrimSpace(s.Text())

		ipStart, ipEnd := strings.Index(line, "("), strings.Index(line, ")")
		if ipStart == -1 || ipEnd == -1 || ipStart >= ipEnd {
			continue
		}

		ip := line[ipStart+1 : ipEnd]

		rest := strings.Fields(line[ipEnd+1:])
		if len(rest) < 2 || rest[0] != "at" {
			continue
		}

		flags, mac := "0x2", canonicalMAC(rest[1])
		if strings.Contains(rest[1], "incomplete") {
			flags, mac = "0x0", hwAddrInactive
		}

		device := "-"
		for i := 2; i+1 < len(rest); i++ {
			if rest[i] == "on" {
				device = rest[i+1]
				break
			}
		}

		fmt.Fprintf(&buf, "%-16s %-10s %-10s %-20s %-8s %s\n", ip, "0x1", flags, mac, "*", device)
	}

	return buf.Bytes()
}

// canonicalMAC pads the octets that BSD arp prints without a leading zero.
func canonicalMAC(s string) string {
	parts := strings.Split(strings.ToLower(s), ":")
	if len(parts) != 6 {
		return s
	}

	for i, p := range parts {
		if len(p) == 1 {
			parts[i] = "0" + p
		}
	}

	return strings.Join(parts, ":")
}
