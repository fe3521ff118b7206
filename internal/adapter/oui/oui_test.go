package oui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const registry = `Registry,Assignment,Organization Name,Organization Address
MA-L,B827EB,Raspberry Pi Foundation,Mitchell Wood House Caldecote GB CB23 7NU
MA-L,001B63,Apple Inc.,1 Infinite Loop Cupertino CA US 95014
MA-S,001B63ABC,"Tiny Things, Ltd.",Somewhere
MA-L,BROKEN
`

func TestTable_Vendor(t *testing.T) {
	tbl, err := Parse(strings.NewReader(registry))
	require.NoError(t, err)
	require.Equal(t, 3, tbl.Len())

	tt := []struct {
		hw     string
		vendor string
		found  bool
	}{
		{"b8:27:eb:12:34:56", "Raspberry Pi Foundation", true},
		{"B827EB123456", "Raspberry Pi Foundation", true},
		{"00:1b:63:ab:cd:ef", "Tiny Things, Ltd.", true},
		{"00:1b:63:00:00:01", "Apple Inc.", true},
		{"de:ad:be:ef:00:01", "", false},
		{"", "", false},
	}

	for _, tc := range tt {
		t.Run(tc.hw, func(t *testing.T) {
			vendor, found := tbl.Vendor(tc.hw)
			require.Equal(t, tc.found, found)
			require.Equal(t, tc.vendor, vendor)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	large := filepath.Join(dir, "oui.csv")
	small := filepath.Join(dir, "oui36.csv")

	require.NoError(t, os.WriteFile(large, []byte("Registry,Assignment,Organization Name,Organization Address\nMA-L,B827EB,Raspberry Pi Foundation,GB\n"), 0o600))
	require.NoError(t, os.WriteFile(small, []byte("Registry,Assignment,Organization Name,Organization Address\nMA-S,B827EB000,Pi Subsidiary,GB\n"), 0o600))

	tbl, err := Load(large, small)
	require.NoError(t, err)

	vendor, ok := tbl.Vendor("b8:27:eb:00:0f:ff")
	require.True(t, ok)
	require.Equal(t, "Pi Subsidiary", vendor)

	_, err = Load(filepath.Join(dir, "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
