package sink

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khmm12/hostscan/internal/ports"
	"github.com/khmm12/hostscan/internal/ports/mocks"
)

func TestCollector_LatestDeliveryWins(t *testing.T) {
	c := NewCollector()

	require.NoError(t, c.DeliverHost(t.Context(), ports.Host{IP: "10.0.0.5", HWAddress: "aa:00:00:00:00:05"}))
	require.NoError(t, c.DeliverHost(t.Context(), ports.Host{IP: "10.0.0.5", HWAddress: "aa:00:00:00:00:05", Hostname: "printer"}))

	require.Equal(t, []ports.Host{{IP: "10.0.0.5", HWAddress: "aa:00:00:00:00:05", Hostname: "printer"}}, c.Hosts(OrderNumeric))

	c.Reset()
	require.Zero(t, c.Len())
}

func TestCollector_Hosts(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	for _, ip := range []string{"10.0.0.10", "10.0.0.9", "10.0.0.100", "10.0.0.2"} {
		wg.Go(func() {
			_ = c.DeliverHost(t.Context(), ports.Host{IP: ip})
		})
	}
	wg.Wait()

	ips := func(hosts []ports.Host) []string {
		out := make([]string, 0, len(hosts))
		for _, h := range hosts {
			out = append(out, h.IP)
		}
		return out
	}

	tt := []struct {
		order Order
		want  []string
	}{
		{OrderNumeric, []string{"10.0.0.2", "10.0.0.9", "10.0.0.10", "10.0.0.100"}},
		{OrderLexical, []string{"10.0.0.10", "10.0.0.100", "10.0.0.2", "10.0.0.9"}},
	}

	for _, tc := range tt {
		t.Run(string(tc.order), func(t *testing.T) {
			if diff := cmp.Diff(tc.want, ips(c.Hosts(tc.order))); diff != "" {
				t.Errorf("Hosts() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFanout_DeliversToEverySink(t *testing.T) {
	host := ports.Host{IP: "10.0.0.1", HWAddress: "aa:bb:cc:dd:ee:ff"}
	failure := errors.New("closed")

	first := mocks.NewMockHostSink(t)
	first.On("DeliverHost", mock.Anything, host).Return(failure).Once()

	collector := NewCollector()

	err := Fanout{first, collector, Discard{}}.DeliverHost(t.Context(), host)
	require.ErrorIs(t, err, failure)
	require.Equal(t, 1, collector.Len())
}

func TestPublishers(t *testing.T) {
	summary := ports.ScanSummary{Network: "10.0.0.0/24"}

	a := mocks.NewMockScanStatePublisher(t)
	a.On("Publish", mock.Anything, summary).Return(nil).Once()

	b := mocks.NewMockScanStatePublisher(t)
	b.On("Publish", mock.Anything, summary).Return(nil).Once()

	require.NoError(t, Publishers{a, b}.Publish(t.Context(), summary))
}
