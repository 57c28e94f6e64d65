// Package mailer runs email dispatch jobs on a fixed set of workers so
// request handlers never wait on the email service.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"greencity/pkg/logger"
	"greencity/pkg/metrics"

	"go.uber.org/zap"
)

// ErrPoolClosed is returned by Submit after Shutdown.
var ErrPoolClosed = errors.New("mailer pool is closed")

// ErrQueueFull is returned by Submit when the job was dropped.
var ErrQueueFull = errors.New("mailer queue is full")

type task struct {
	name string
	run  func(ctx context.Context) error
	ctx  context.Context
}

// Pool is a fixed-size worker pool with a bounded queue.
type Pool struct {
	queue   chan task
	workers int
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewPool starts workers goroutines. jobTimeout bounds each job; zero means no bound.
func NewPool(workers, queueSize int, jobTimeout time.Duration) (*Pool, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("worker count must be positive")
	}
	if queueSize <= 0 {
		return nil, fmt.Errorf("queue size must be positive")
	}

	p := &Pool{
		queue:   make(chan task, queueSize),
		workers: workers,
		timeout: jobTimeout,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.work(i)
	}
	logger.Info("Mailer pool started",
		zap.Int("workers", workers),
		zap.Int("queue_size", queueSize),
	)
	return p, nil
}

// Submit enqueues job without blocking. The job runs with a context detached
// from ctx's cancellation but carrying its values (request id, bearer token).
// When the queue is full the job is dropped and logged.
func (p *Pool) Submit(ctx context.Context, name string, job func(ctx context.Context) error) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		logger.FromContext(ctx).Warn("Mailer job rejected, pool closed", zap.String("job", name))
		return ErrPoolClosed
	}

	select {
	case p.queue <- task{name: name, run: job, ctx: context.WithoutCancel(ctx)}:
		return nil
	default:
		logger.FromContext(ctx).Warn("Mailer queue full, job dropped", zap.String("job", name))
		metrics.RecordMailerJob(name, metrics.ResultDropped, 0)
		return ErrQueueFull
	}
}

// Backlog reports queued jobs against the queue capacity.
func (p *Pool) Backlog() (queued, capacity int) {
	return len(p.queue), cap(p.queue)
}

func (p *Pool) work(id int) {
	defer p.wg.Done()
	for t := range p.queue {
		p.execute(id, t)
	}
}

func (p *Pool) execute(workerID int, t task) {
	start := time.Now()
	log := logger.FromContext(t.ctx).With(zap.String("job", t.name), zap.Int("worker", workerID))

	defer func() {
		if r := recover(); r != nil {
			log.Error("Mailer job panicked", zap.Any("panic", r))
			metrics.RecordMailerJob(t.name, metrics.ResultPanic, time.Since(start))
		}
	}()

	ctx := t.ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if err := t.run(ctx); err != nil {
		log.Error("Mailer job failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		metrics.RecordMailerJob(t.name, metrics.ResultFailure, time.Since(start))
		return
	}
	log.Debug("Mailer job completed", zap.Duration("duration", time.Since(start)))
	metrics.RecordMailerJob(t.name, metrics.ResultSuccess, time.Since(start))
}

// Shutdown stops intake and waits until queued jobs finish or ctx is done.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("Mailer pool stopped")
		return nil
	case <-ctx.Done():
		logger.Warn("Mailer pool shutdown timed out", zap.Int("pending", len(p.queue)))
		return ctx.Err()
	}
}
