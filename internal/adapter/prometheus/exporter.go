package prometheus

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Exporter struct {
	reg     *prometheus.Registry
	metrics *metrics

	// host_info series written during the running scan and the previous one.
	mu      sync.Mutex
	current map[string]struct{}
	live    map[string]struct{}
}

func NewExporter() (*Exporter, error) {
	reg := prometheus.NewRegistry()

	metrics, err := newMetrics(reg)
	if err != nil {
		return nil, err
	}

	return &Exporter{
		reg:     reg,
		metrics: metrics,
		current: make(map[string]struct{}),
		live:    make(map[string]struct{}),
	}, nil
}

func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.reg, promhttp.HandlerOpts{})
}

func (e *Exporter) setHost(ip, hwAddress, hostname, vendor string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.metrics.hostInfo.DeletePartialMatch(prometheus.Labels{"ip": ip})
	e.metrics.hostInfo.WithLabelValues(ip, hwAddress, hostname, vendor).Set(1)
	e.current[ip] = struct{}{}
}

// rotateHosts drops series of hosts the finished scan did not see.
func (e *Exporter) rotateHosts() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for ip := range e.live {
		if _, ok := e.current[ip]; !ok {
			e.metrics.hostInfo.DeletePartialMatch(prometheus.Labels{"ip": ip})
		}
	}

	e.live = e.current
	e.current = make(map[string]struct{})
}
