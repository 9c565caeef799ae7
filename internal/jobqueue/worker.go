package jobqueue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Brayanhenaor/vetquestions/internal/logger"
	"github.com/Brayanhenaor/vetquestions/internal/model"
)

const (
	defaultConsumer      = "worker"
	defaultPollInterval  = 2 * time.Second
	defaultLeaseTTL      = 30 * time.Second
	defaultBatchSize     = 50
	defaultMaxAttempts   = 8
	defaultRetryBackoff  = 5 * time.Second
	defaultRetryMaxDelay = 5 * time.Minute
)

// Config controls worker loop behavior.
type Config struct {
	Consumer      string
	PollInterval  time.Duration
	LeaseTTL      time.Duration
	BatchSize     int
	MaxAttempts   int
	RetryBackoff  time.Duration
	RetryMaxDelay time.Duration
}

func (c Config) normalized() Config {
	c.Consumer = strings.TrimSpace(c.Consumer)
	if c.Consumer == "" {
		c.Consumer = defaultConsumer
	}
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.LeaseTTL <= 0 {
		c.LeaseTTL = defaultLeaseTTL
	}
	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaultMaxAttempts
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = defaultRetryBackoff
	}
	if c.RetryMaxDelay <= 0 {
		c.RetryMaxDelay = defaultRetryMaxDelay
	}
	if c.RetryMaxDelay < c.RetryBackoff {
		c.RetryMaxDelay = c.RetryBackoff
	}
	return c
}

// Worker leases due jobs and dispatches them to handlers by kind.
type Worker struct {
	store    model.JobStore
	handlers map[string]model.JobHandler
	cfg      Config
	logger   *logger.Logger
	clock    func() time.Time
}

func NewWorker(store model.JobStore, handlers map[string]model.JobHandler, cfg Config, logger *logger.Logger) *Worker {
	cfg = cfg.normalized()
	return &Worker{
		store:    store,
		handlers: handlers,
		cfg:      cfg,
		logger:   logger.With("consumer", cfg.Consumer),
		clock:    time.Now,
	}
}

// Run polls until ctx is canceled.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("Job worker: started", "poll_interval", w.cfg.PollInterval)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if _, err := w.RunOnce(ctx); err != nil && ctx.Err() == nil {
			w.logger.Error("Job worker: batch failed", "error", err)
		}

		select {
		case <-ctx.Done():
			w.logger.Info("Job worker: stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// RunOnce leases one batch and processes it, returning the batch size.
func (w *Worker) RunOnce(ctx context.Context) (int, error) {
	jobs, err := w.store.Lease(ctx, w.cfg.Consumer, w.cfg.BatchSize, nowUTC(w.clock), w.cfg.LeaseTTL)
	if err != nil {
		return 0, fmt.Errorf("failed to lease jobs: %w", err)
	}

	for _, job := range jobs {
		if ctx.Err() != nil {
			// remaining leases expire and are picked up again
			return len(jobs), ctx.Err()
		}
		w.process(ctx, job)
	}

	return len(jobs), nil
}

func (w *Worker) process(ctx context.Context, job model.Job) {
	log := w.logger.With("job_id", job.ID, "kind", job.Kind, "attempt", job.Attempts)

	handler, ok := w.handlers[job.Kind]
	if !ok {
		log.Error("Job worker: no handler registered")
		if err := w.store.Dead(ctx, job.ID, w.cfg.Consumer, fmt.Sprintf("no handler for kind %q", job.Kind)); err != nil {
			log.Error("Job worker: failed to mark job dead", "error", err)
		}
		return
	}

	handleErr := handler(ctx, job)
	if handleErr == nil {
		if err := w.store.Complete(ctx, job.ID, w.cfg.Consumer); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				log.Warn("Job worker: lease lost before completion")
				return
			}
			log.Error("Job worker: failed to complete job", "error", err)
			return
		}
		log.Debug("Job worker: job completed")
		return
	}

	if job.Attempts >= w.cfg.MaxAttempts {
		log.Error("Job worker: job exhausted retries", "error", handleErr)
		if err := w.store.Dead(ctx, job.ID, w.cfg.Consumer, handleErr.Error()); err != nil {
			log.Error("Job worker: failed to mark job dead", "error", err)
		}
		return
	}

	runAt := nowUTC(w.clock).Add(retryDelay(job.Attempts, w.cfg.RetryBackoff, w.cfg.RetryMaxDelay))
	log.Warn("Job worker: job failed, retrying", "error", handleErr, "run_at", runAt)
	if err := w.store.Retry(ctx, job.ID, w.cfg.Consumer, runAt, handleErr.Error()); err != nil {
		log.Error("Job worker: failed to reschedule job", "error", err)
	}
}

// retryDelay doubles base for every attempt after the first, capped at maxDelay.
func retryDelay(attempts int, base, maxDelay time.Duration) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	delay := base
	for i := 1; i < attempts; i++ {
		delay *= 2
		if delay >= maxDelay {
			return maxDelay
		}
	}
	if delay > maxDelay {
		return maxDelay
	}
	return delay
}
