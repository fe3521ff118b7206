package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/khmm12/hostscan/internal/adapter/dns"
	"github.com/khmm12/hostscan/internal/adapter/httpsrv"
	"github.com/khmm12/hostscan/internal/adapter/prometheus"
	"github.com/khmm12/hostscan/internal/adapter/sink"
	"github.com/khmm12/hostscan/internal/adapter/worker"
	"github.com/khmm12/hostscan/internal/common/logging"
	"github.com/khmm12/hostscan/internal/ports"
	"github.com/khmm12/hostscan/internal/usecase"
)

type Metrics struct {
	Addr string `name:"addr" env:"METRICS_ADDR" default:"0.0.0.0:8080" help:"HTTP Address to bind Prometheus metrics and the host list"`
	Path string `name:"path" env:"METRICS_PATH" default:"/metrics" help:"Path to serve Prometheus metrics"`
}

type DNSCache struct {
	Size int           `name:"size" env:"DNS_CACHE_SIZE" default:"1024" help:"Number of reverse DNS answers kept between cycles (0 disables the cache)."`
	TTL  time.Duration `name:"ttl" env:"DNS_CACHE_TTL" default:"10m" help:"How long a reverse DNS answer is reused."`
}

type Watch struct {
	ScanFlags `embed:""`
	Interval  time.Duration `name:"interval" env:"INTERVAL" default:"1m" help:"The interval between scans (e.g., 30s, 5m, 1h)."`
	Metrics   Metrics       `embed:"" prefix:"metrics."`
	DNSCache  DNSCache      `embed:"" prefix:"dns-cache."`
}

func (w *Watch) Run() error {
	ctx := context.Background()
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logLevel, err := logging.ParseLevel(w.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to parse to log level: %w", err)
	}

	logger := logging.New(os.Stdout, logLevel)

	target, err := w.target()
	if err != nil {
		logger.ErrorContext(ctx, "Failed to determine target network", logging.Error(err))
		return err
	}

	env, err := newScanEnv(ctx, logger, &w.ScanFlags)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to set up scan", logging.Error(err))
		return err
	}

	defer func() {
		logger.InfoContext(ctx, "Closing scan adapters")
		_ = env.Close()
	}()

	if w.DNSCache.Size > 0 {
		env.deps.DNS = dns.NewCachedResolver(env.deps.DNS, w.DNSCache.Size, w.DNSCache.TTL)
	}

	exporter, err := prometheus.NewExporter()
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create prometheus exporter", logging.Error(err))
		return err
	}

	env.deps.Publisher = prometheus.NewScanStatePublisher(logger, exporter)

	task := newTask(logger, env.deps, prometheus.NewHostSink(exporter), w.options(), usecase.ScanSubnetCommand{
		Target:  target,
		Workers: w.Workers,
	})

	httpsrv := httpsrv.NewServer(w.Metrics.Addr, httpsrv.ServerOptions{
		MetricsHandler: exporter.Handler(),
		MetricsPath:    w.Metrics.Path,
		HostsHandler:   httpsrv.HostsHandler(task.Hosts),
		Ready:          task.Ready,
	})

	worker := worker.NewWorker(logger, w.Interval, task)

	defer func() {
		logger.InfoContext(ctx, "Stopping...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		logger.InfoContext(ctx, "Stopping Worker...")
		serr := worker.Shutdown(shutdownCtx)
		if serr != nil {
			logger.ErrorContext(ctx, "Failed to stop Worker", logging.Error(serr))
		}

		logger.InfoContext(ctx, "Stopping HTTP Server...")
		serr = httpsrv.Shutdown(shutdownCtx)
		if serr != nil {
			logger.ErrorContext(ctx, "Failed to stop HTTP Server", logging.Error(serr))
		}

		logger.InfoContext(ctx, "Stopped")
	}()

	errCh := make(chan error, 2)

	go func() {
		logger.InfoContext(ctx, "Start HTTP Server", slog.String("address", httpsrv.ListenAddr()))

		err := httpsrv.Start()
		if err != nil {
			logger.ErrorContext(ctx, "Failed to start HTTP Server", logging.Error(err))
			errCh <- err
		}
	}()

	go func() {
		logger.InfoContext(ctx, "Start Worker",
			slog.String("network", target.Masked().String()),
			slog.Duration("interval", w.Interval),
		)

		err := worker.Start(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to start Worker", logging.Error(err))
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return nil
	}
}

func (w *Watch) Validate() error {
	errs := w.validate()

	if w.Interval <= 0 {
		errs = append(errs, fmt.Errorf("--interval: must be greater than zero"))
	}

	if w.Interval <= w.Probe.Timeout {
		errs = append(errs, fmt.Errorf("--interval: must be greater than --probe.timeout"))
	}

	if !isTCPAddr(w.Metrics.Addr) {
		errs = append(errs, fmt.Errorf("--metrics.addr: must be a valid tcp listening address (e.g. 0.0.0.0:8080)"))
	}

	if w.DNSCache.Size < 0 {
		errs = append(errs, fmt.Errorf("--dns-cache.size: must not be negative"))
	}

	if w.DNSCache.Size > 0 && w.DNSCache.TTL <= 0 {
		errs = append(errs, fmt.Errorf("--dns-cache.ttl: must be greater than zero"))
	}

	return errors.Join(errs...)
}

type taskUC interface {
	Execute(ctx context.Context, cmd usecase.ScanSubnetCommand) (ports.ScanSummary, error)
}

// task runs one scan cycle. Each cycle collects into a fresh Collector that
// replaces the published one once the cycle completes.
type task struct {
	logger  *slog.Logger
	newUC   func(sink ports.HostSink) taskUC
	metrics ports.HostSink
	cmd     usecase.ScanSubnetCommand
	last    atomic.Pointer[sink.Collector]
}

func newTask(logger *slog.Logger, deps usecase.ScanDeps, metrics ports.HostSink, opts usecase.ScanOptions, cmd usecase.ScanSubnetCommand) *task {
	return &task{
		logger: logger,
		newUC: func(s ports.HostSink) taskUC {
			d := deps
			d.Sink = s

			return usecase.NewScanSubnetUseCase(logger, d, opts)
		},
		metrics: metrics,
		cmd:     cmd,
	}
}

func (t *task) Execute(ctx context.Context) error {
	now := time.Now()

	t.logger.InfoContext(ctx, "Run network scan")

	collector := sink.NewCollector()

	summary, err := t.newUC(sink.Fanout{collector, t.metrics}).Execute(ctx, t.cmd)
	if err != nil {
		t.logger.ErrorContext(ctx, "Failed to execute network scan", logging.Error(err), slog.Duration("duration", time.Since(now)))
		return nil
	}

	t.last.Store(collector)

	t.logger.InfoContext(ctx, "Finished network scan",
		slog.String("scan_id", summary.ScanID),
		slog.Int("hosts", collector.Len()),
		slog.Duration("duration", time.Since(now)),
	)

	return nil
}

func (t *task) Hosts(order string) []ports.Host {
	c := t.last.Load()
	if c == nil {
		return nil
	}

	return c.Hosts(sink.Order(order))
}

func (t *task) Ready() bool {
	return t.last.Load() != nil
}
