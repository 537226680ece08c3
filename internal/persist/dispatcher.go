package persist

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a single datastore write.
type Job func(ctx context.Context) error

type queued struct {
	op  string
	job Job
}

// Dispatcher runs datastore writes off the caller's path.
//
// Jobs run one at a time in submission order on a single worker goroutine,
// so a row's insert always lands before its later updates. Submit never
// blocks. Failures are logged with the operation name; there is no retry and
// no rollback of the in-memory state that produced the job.
type Dispatcher struct {
	logger  *slog.Logger
	timeout time.Duration

	mu      sync.Mutex
	queue   []queued
	closed  bool
	wake    chan struct{}
	stopped chan struct{}
	pending sync.WaitGroup
}

// NewDispatcher starts a dispatcher. timeout bounds each job; zero means no
// per-job deadline.
func NewDispatcher(logger *slog.Logger, timeout time.Duration) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		logger:  logger,
		timeout: timeout,
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	go d.run()
	return d
}

// Submit enqueues a write. Jobs submitted after Close are logged and dropped.
func (d *Dispatcher) Submit(op string, job Job) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.Warn("persist: dispatcher closed, dropping write", slog.String("op", op))
		return
	}
	d.pending.Add(1)
	d.queue = append(d.queue, queued{op: op, job: job})
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// Flush blocks until every job submitted so far has finished.
func (d *Dispatcher) Flush() {
	d.pending.Wait()
}

// Close stops accepting jobs, waits for the queue to drain or ctx to end,
// and stops the worker.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		<-d.stopped
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}

	select {
	case <-d.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.stopped)
	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			closed := d.closed
			d.mu.Unlock()
			if closed {
				return
			}
			<-d.wake
			continue
		}
		next := d.queue[0]
		d.queue[0] = queued{}
		d.queue = d.queue[1:]
		d.mu.Unlock()

		d.exec(next)
	}
}

func (d *Dispatcher) exec(q queued) {
	defer d.pending.Done()

	ctx := context.Background()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	if err := q.job(ctx); err != nil {
		d.logger.Error("persist: write failed", slog.String("op", q.op), slog.String("error", err.Error()))
		return
	}
	d.logger.Debug("persist: write ok", slog.String("op", q.op))
}
