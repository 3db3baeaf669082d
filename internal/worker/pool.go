// Package worker provides a bounded in-process worker pool. Work is fanned
// out over a fixed number of goroutines fed by a buffered channel, so the
// number of concurrent page sessions stays capped no matter how many URLs a
// batch of queries produces.
package worker

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"harvester/pkg/logger"
)

// Task is a unit of work executed by the pool. Tasks receive the pool's
// context and must return promptly once it is cancelled.
type Task func(ctx context.Context)

// Pool runs tasks on a fixed set of goroutines.
type Pool struct {
	size  int
	tasks chan Task

	startOnce sync.Once
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewPool creates a pool with the given number of workers. The task queue is
// buffered to the same size; Submit blocks once every worker is busy and the
// buffer is full, which keeps producers paced to consumers.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = 1
	}

	return &Pool{
		size:  size,
		tasks: make(chan Task, size),
	}
}

// Start launches the workers. It is safe to call more than once; only the
// first call has an effect.
func (p *Pool) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		logger.Debug(ctx, "starting worker pool", zap.Int("size", p.size))

		for i := 0; i < p.size; i++ {
			p.wg.Add(1)

			go func() {
				defer p.wg.Done()

				for task := range p.tasks {
					if ctx.Err() != nil {
						// Drain without executing once cancelled.
						continue
					}
					task(ctx)
				}
			}()
		}
	})
}

// Submit enqueues a task, blocking until a slot frees up or ctx is cancelled.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	select {
	case p.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting work and blocks until in-flight tasks finish.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.tasks)
	})
	p.wg.Wait()
}
