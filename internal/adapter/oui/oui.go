// Package oui maps the vendor prefix of a hardware address to the
// organization registered for it.
package oui

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/khmm12/hostscan/internal/ports"
)

// IEEE registry CSV layout: Registry,Assignment,Organization Name,Organization Address.
const (
	columnRegistry int = iota
	columnAssignment
	columnName
	columnAddress
	columnBound
)

var _ ports.VendorLookup = (*Table)(nil)

type Table struct {
	vendors map[string]string
}

// Load reads one or more registry files (MA-L, MA-M, MA-S) into a single table.
func Load(paths ...string) (*Table, error) {
	t := &Table{vendors: make(map[string]string)}

	for _, path := range paths {
		if err := t.loadFile(path); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Parse builds a table from a single registry CSV stream.
func Parse(r io.Reader) (*Table, error) {
	t := &Table{vendors: make(map[string]string)}

	if err := t.read(r); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Table) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open vendor registry: %w", err)
	}

	defer func() { _ = f.Close() }()

	if err := t.read(f); err != nil {
		return fmt.Errorf("read vendor registry %s: %w", path, err)
	}

	return nil
}

func (t *Table) read(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		return err
	}

	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		if len(rec) < columnBound {
			continue
		}

		t.vendors[strings.ToLower(rec[columnAssignment])] = strings.TrimSpace(rec[columnName])
	}
}

// Vendor returns the organization for hw. The longest registered prefix wins,
// so MA-S assignments shadow the MA-L block they were carved from.
// Both "aa:bb:cc:dd:ee:ff" and "aabbccddeeff" notations are accepted.
func (t *Table) Vendor(hw string) (string, bool) {
	addr := strings.ToLower(strings.NewReplacer(":", "", "-", "").Replace(hw))

	for ; len(addr) > 0; addr = addr[:len(addr)-1] {
		if name, ok := t.vendors[addr]; ok {
			return name, true
		}
	}

	return "", false
}

func (t *Table) Len() int {
	return len(t.vendors)
}
