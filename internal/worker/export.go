package worker

import (
	"context"
	"log/slog"
	"time"
)

// ExportRunner defines the interface for one full export run.
type ExportRunner interface {
	RunOnce(ctx context.Context) error
}

// ExportWorker periodically recomputes the watchlist and pushes it to the
// configured export destinations.
type ExportWorker struct {
	runner   ExportRunner
	interval time.Duration
}

// NewExportWorker creates a new ExportWorker.
func NewExportWorker(runner ExportRunner, interval time.Duration) *ExportWorker {
	return &ExportWorker{
		runner:   runner,
		interval: interval,
	}
}

// Run starts the export worker loop. It blocks until the context is cancelled.
// A failed run is logged and retried on the next tick, never fatal.
func (w *ExportWorker) Run(ctx context.Context) {
	slog.Info("ExportWorker: starting", "interval", w.interval)

	// Export immediately on startup
	if err := w.runner.RunOnce(ctx); err != nil {
		slog.Error("ExportWorker: initial run failed", "error", err)
	} else {
		slog.Info("ExportWorker: initial run completed")
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("ExportWorker: shutting down")
			return
		case <-ticker.C:
			if err := w.runner.RunOnce(ctx); err != nil {
				slog.Error("ExportWorker: run failed", "error", err)
			} else {
				slog.Info("ExportWorker: run completed")
			}
		}
	}
}
