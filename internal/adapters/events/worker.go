package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/viralforge/adforge/internal/application"
)

// Worker drains the generation queue on a fixed poll interval. io.EOF from
// ProcessNextJob means the queue is idle; anything else is logged and the
// loop keeps going.
type Worker struct {
	service  *application.Service
	logger   *slog.Logger
	interval time.Duration
}

func NewWorker(service *application.Service, logger *slog.Logger, interval time.Duration) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Worker{service: service, logger: logger, interval: interval}
}

func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.InfoContext(ctx, "generation worker started", "poll_interval", w.interval.String())
	for {
		select {
		case <-ctx.Done():
			w.logger.InfoContext(ctx, "generation worker stopping")
			return ctx.Err()
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

func (w *Worker) drain(ctx context.Context) {
	for {
		err := w.service.ProcessNextJob(ctx)
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			w.logger.ErrorContext(ctx, "generation job failed", "error", err)
		}
		if ctx.Err() != nil {
			return
		}
	}
}
