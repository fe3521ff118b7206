package subnet

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPartition_SplitsSlash24IntoEightChunks(t *testing.T) {
	base := mustAddr(t, "192.168.1.77")

	ranges, err := Partition(base, 24, 8)
	require.NoError(t, err)
	require.Len(t, ranges, 8)

	require.Equal(t, mustAddr(t, "192.168.1.1"), ranges[0].Start)
	require.Equal(t, mustAddr(t, "192.168.1.254"), ranges[7].Stop)

	var total uint32
	for _, r := range ranges {
		total += r.Len()
		require.LessOrEqual(t, r.Len(), uint32(32))
	}

	require.Equal(t, uint32(254), total)
	requireContiguous(t, ranges, mustAddr(t, "192.168.1.1"), mustAddr(t, "192.168.1.254"))
}

func TestPartition_CoversUsableRangeForEveryPrefix(t *testing.T) {
	base := mustAddr(t, "10.20.30.40")

	for prefix := uint8(8); prefix <= 30; prefix++ {
		for _, workers := range []uint32{0, 1, 3, 7, 16} {
			ranges, err := Partition(base, prefix, workers)
			require.NoError(t, err)

			n, err := NewNetwork(base, prefix)
			require.NoError(t, err)

			want := workers
			if want == 0 {
				want = DefaultWorkers(prefix)
			}

			require.Len(t, ranges, int(want), "prefix /%d workers %d", prefix, workers)
			requireContiguous(t, ranges, n.FirstUsable, n.LastUsable())
		}
	}
}

func TestPartition_IsDeterministic(t *testing.T) {
	a, err := Partition(mustAddr(t, "172.16.0.0"), 20, 5)
	require.NoError(t, err)

	b, err := Partition(mustAddr(t, "172.16.0.0"), 20, 5)
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestPartition_MoreWorkersThanHostsLeavesTrailingRangesEmpty(t *testing.T) {
	ranges, err := Partition(mustAddr(t, "192.168.1.0"), 30, 5)
	require.NoError(t, err)
	require.Len(t, ranges, 5)

	require.Equal(t, AddressRange{Start: mustAddr(t, "192.168.1.1"), Stop: mustAddr(t, "192.168.1.1")}, ranges[0])
	require.Equal(t, AddressRange{Start: mustAddr(t, "192.168.1.2"), Stop: mustAddr(t, "192.168.1.2")}, ranges[1])

	for _, r := range ranges[2:] {
		require.True(t, r.Empty())
		require.Zero(t, r.Len())
	}
}

func TestPartition_WholeAddressSpaceDoesNotOverflow(t *testing.T) {
	ranges, err := Partition(0, 0, 0)
	require.NoError(t, err)
	require.Len(t, ranges, 32)

	require.Equal(t, uint32(1), ranges[0].Start)
	require.Equal(t, uint32(0xFFFFFFFE), ranges[31].Stop)
	requireContiguous(t, ranges, 1, 0xFFFFFFFE)
}

func TestPartition_RejectsPrefixWithoutUsableHosts(t *testing.T) {
	for _, prefix := range []uint8{31, 32, 33} {
		ranges, err := Partition(mustAddr(t, "192.168.1.0"), prefix, 4)
		require.ErrorIs(t, err, ErrInvalidPrefix)
		require.Nil(t, ranges)
	}
}

func TestFromPrefix(t *testing.T) {
	base, bits, ok := FromPrefix(netip.MustParsePrefix("192.168.1.10/24"))
	require.True(t, ok)
	require.Equal(t, uint8(24), bits)
	require.Equal(t, "192.168.1.10", ToAddr(base).String())

	_, _, ok = FromPrefix(netip.MustParsePrefix("fe80::/64"))
	require.False(t, ok)
}

func requireContiguous(t *testing.T, ranges []AddressRange, first, last uint32) {
	t.Helper()

	next := uint64(first)
	for _, r := range ranges {
		if r.Empty() {
			continue
		}

		require.Equal(t, next, uint64(r.Start))
		require.LessOrEqual(t, r.Start, r.Stop)
		next = uint64(r.Stop) + 1
	}

	require.Equal(t, uint64(last)+1, next)
}

func mustAddr(t *testing.T, s string) uint32 {
	t.Helper()

	v, ok := FromAddr(netip.MustParseAddr(s))
	require.True(t, ok)

	return v
}

func TestPartition_RejectsHugeWorkerCounts(t *testing.T) {
	base, _, _ := FromPrefix(netip.MustParsePrefix("192.168.1.0/24"))

	_, err := Partition(base, 24, 4_000_000_000)
	require.ErrorIs(t, err, ErrInvalidWorkers)

	ranges, err := Partition(base, 24, MaxWorkers)
	require.NoError(t, err)
	require.Len(t, ranges, MaxWorkers)
}
