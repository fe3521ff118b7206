// Package worker repeats a scan on a fixed interval.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/khmm12/hostscan/internal/common/logging"
)

type Task interface {
	Execute(ctx context.Context) error
}

type Worker struct {
	logger *slog.Logger

	interval time.Duration
	task     Task

	cancelMu sync.Mutex
	cancel   context.CancelFunc

	mu sync.Mutex
}

func NewWorker(logger *slog.Logger, interval time.Duration, task Task) *Worker {
	return &Worker{
		logger:   logger,
		interval: interval,
		task:     task,
	}
}

// Start runs the task immediately and then once per interval until ctx is
// done or Shutdown is called. A cycle that overruns the interval delays the
// next one instead of overlapping it.
func (w *Worker) Start(ctx context.Context) error {
	locked := w.mu.TryLock()
	if !locked {
		return fmt.Errorf("worker is already running")
	}

	defer w.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w.cancelMu.Lock()
	w.cancel = cancel
	w.cancelMu.Unlock()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for cycle := 1; ; cycle++ {
		w.run(ctx, cycle)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *Worker) Shutdown(_ context.Context) error {
	w.cancelMu.Lock()
	defer w.cancelMu.Unlock()

	if w.cancel != nil {
		w.cancel()
	}

	return nil
}

func (w *Worker) run(ctx context.Context, cycle int) {
	if ctx.Err() != nil {
		return
	}

	started := time.Now()

	err := w.task.Execute(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		w.logger.ErrorContext(ctx, "Scan cycle failed", slog.Int("cycle", cycle), logging.Error(err))
		return
	}

	w.logger.DebugContext(ctx, "Scan cycle finished",
		slog.Int("cycle", cycle),
		slog.Duration("took", time.Since(started)),
	)
}
