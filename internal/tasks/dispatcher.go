// Package tasks runs deferred jobs outside the request/response cycle. Jobs
// are delivered at least once to a registered handler, with a bounded retry on
// failure; delivery order is not guaranteed.
package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"conferencecentral/internal/domain"
)

// HandlerFunc processes a single job. A non-nil error triggers a retry until
// the attempt budget is exhausted.
type HandlerFunc func(ctx context.Context, job domain.Job) error

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = 2 * time.Second
)

// Dispatcher is an in-process job queue: a buffered channel consumed by a
// worker pool. Stop drains the queue before returning so accepted jobs are not
// lost on shutdown.
type Dispatcher struct {
	logger      *slog.Logger
	jobs        chan domain.Job
	quit        chan struct{}
	handlers    map[domain.JobKind]HandlerFunc
	wg          sync.WaitGroup
	stopOnce    sync.Once
	maxAttempts int
	retryDelay  time.Duration

	// mu guards stopped and is held (read) across the send in Enqueue, so
	// Stop cannot close the jobs channel while a sender is parked on it.
	mu      sync.RWMutex
	stopped bool
}

// NewDispatcher creates a Dispatcher with the given queue capacity.
func NewDispatcher(logger *slog.Logger, buffer int) *Dispatcher {
	if buffer < 1 {
		buffer = 64
	}
	return &Dispatcher{
		logger:      logger,
		jobs:        make(chan domain.Job, buffer),
		quit:        make(chan struct{}),
		handlers:    make(map[domain.JobKind]HandlerFunc),
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
	}
}

// Handle registers the handler for a job kind. Must be called before Start.
func (d *Dispatcher) Handle(kind domain.JobKind, fn HandlerFunc) {
	d.handlers[kind] = fn
}

// Enqueue accepts a job for asynchronous execution. It blocks while the queue
// is full and fails only when the context is canceled or the dispatcher has
// been stopped.
func (d *Dispatcher) Enqueue(ctx context.Context, job domain.Job) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return fmt.Errorf("dispatcher is stopped")
	}

	select {
	case d.jobs <- job:
		return nil
	case <-d.quit:
		return fmt.Errorf("dispatcher is stopped")
	case <-ctx.Done():
		return fmt.Errorf("enqueue %s: %w", job.Kind, ctx.Err())
	}
}

// Start launches the worker pool.
func (d *Dispatcher) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for job := range d.jobs {
				d.process(job)
			}
		}()
	}
}

// Stop closes the queue and waits for the workers to drain it. Senders parked
// on a full queue are woken first and fail instead of blocking shutdown.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.quit)

		// Taking the write lock waits out every in-flight Enqueue, so no
		// sender can touch the jobs channel after it is closed.
		d.mu.Lock()
		d.stopped = true
		d.mu.Unlock()

		close(d.jobs)
		d.wg.Wait()
	})
}

func (d *Dispatcher) process(job domain.Job) {
	handler, ok := d.handlers[job.Kind]
	if !ok {
		d.logger.Error("no handler registered for job", "kind", job.Kind, "job_id", job.ID)
		return
	}

	// Jobs run detached from the request that produced them.
	ctx := context.Background()
	var err error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		if err = handler(ctx, job); err == nil {
			return
		}
		d.logger.Warn("job attempt failed",
			"kind", job.Kind, "job_id", job.ID, "attempt", attempt, "err", err)
		if attempt < d.maxAttempts {
			time.Sleep(d.retryDelay)
		}
	}
	d.logger.Error("job failed permanently", "kind", job.Kind, "job_id", job.ID, "err", err)
}
