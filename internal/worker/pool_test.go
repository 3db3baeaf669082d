package worker_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"harvester/internal/worker"
)

func TestPoolRunsAllTasks(t *testing.T) {
	ctx := context.Background()
	pool := worker.NewPool(3)
	pool.Start(ctx)

	var done atomic.Int64
	for i := 0; i < 20; i++ {
		require.NoError(t, pool.Submit(ctx, func(context.Context) {
			done.Add(1)
		}))
	}
	pool.Close()

	require.EqualValues(t, 20, done.Load())
}

func TestPoolCapsConcurrency(t *testing.T) {
	const size = 2

	ctx := context.Background()
	pool := worker.NewPool(size)
	pool.Start(ctx)

	var (
		mu      sync.Mutex
		active  int
		maxSeen int
	)

	for i := 0; i < 10; i++ {
		require.NoError(t, pool.Submit(ctx, func(context.Context) {
			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(5 * time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}))
	}
	pool.Close()

	require.LessOrEqual(t, maxSeen, size)
}

func TestSubmitHonorsCancelledContext(t *testing.T) {
	pool := worker.NewPool(1)
	pool.Start(context.Background())

	// Occupy the single worker and fill the buffer so Submit must block.
	block := make(chan struct{})
	require.NoError(t, pool.Submit(context.Background(), func(context.Context) { <-block }))
	require.NoError(t, pool.Submit(context.Background(), func(context.Context) {}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pool.Submit(ctx, func(context.Context) {})
	require.ErrorIs(t, err, context.Canceled)

	close(block)
	pool.Close()
}

func TestTasksSkippedAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := worker.NewPool(1)
	pool.Start(ctx)

	// First task cancels the pool context; queued tasks must be drained
	// without running.
	var ran atomic.Int64
	require.NoError(t, pool.Submit(context.Background(), func(context.Context) {
		cancel()
		time.Sleep(5 * time.Millisecond)
	}))
	require.NoError(t, pool.Submit(context.Background(), func(context.Context) {
		ran.Add(1)
	}))
	pool.Close()

	require.Zero(t, ran.Load())
}
