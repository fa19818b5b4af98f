package fanout

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"festivalhub/internal/metrics"
)

// Task represents a unit of best-effort work. Its error is logged, never returned to a caller.
type Task func(ctx context.Context) error

type namedTask struct {
	name string
	run  Task
}

// WorkerPool runs fire-and-forget tasks on a fixed set of goroutines.
// Each task gets its own timeout detached from whatever request enqueued it.
type WorkerPool struct {
	workerCount int
	taskTimeout time.Duration
	taskQueue   chan namedTask
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	closed      bool
	closeMux    sync.RWMutex
	logger      *slog.Logger
}

// NewWorkerPool creates a pool with the given number of workers and queue capacity.
func NewWorkerPool(workerCount, queueSize int, taskTimeout time.Duration, logger *slog.Logger) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueSize < 1 {
		queueSize = workerCount * 2
	}
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		workerCount: workerCount,
		taskTimeout: taskTimeout,
		taskQueue:   make(chan namedTask, queueSize),
		ctx:         ctx,
		cancel:      cancel,
		logger:      logger,
	}
}

// Start launches worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
	wp.logger.Info("fanout_workers_started", "workers", wp.workerCount, "queue_size", cap(wp.taskQueue))
}

// Submit enqueues a task without blocking. It returns false when the queue is full
// or the pool is shutting down; the task is then dropped.
func (wp *WorkerPool) Submit(name string, task Task) bool {
	wp.closeMux.RLock()
	defer wp.closeMux.RUnlock()

	if wp.closed {
		metrics.FanoutTasksDropped.Inc()
		wp.logger.Warn("fanout_task_dropped", "task", name, "reason", "pool_closed")
		return false
	}

	select {
	case wp.taskQueue <- namedTask{name: name, run: task}:
		return true
	default:
		metrics.FanoutTasksDropped.Inc()
		wp.logger.Warn("fanout_task_dropped", "task", name, "reason", "queue_full")
		return false
	}
}

// Shutdown stops accepting tasks, drains what is queued and waits for the workers.
// If ctx expires first the in-flight tasks are cancelled.
func (wp *WorkerPool) Shutdown(ctx context.Context) error {
	wp.closeMux.Lock()
	if !wp.closed {
		close(wp.taskQueue)
		wp.closed = true
	}
	wp.closeMux.Unlock()

	done := make(chan struct{})
	go func() {
		wp.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		wp.cancel()
		wp.logger.Info("fanout_workers_stopped")
		return nil
	case <-ctx.Done():
		wp.cancel()
		<-done
		return fmt.Errorf("fanout pool shutdown: %w", ctx.Err())
	}
}

// worker processes tasks from the queue
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		wp.run(id, task)
	}
}

func (wp *WorkerPool) run(id int, task namedTask) {
	ctx, cancel := context.WithTimeout(wp.ctx, wp.taskTimeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.FanoutTaskDuration.Observe(time.Since(start).Seconds())
		if r := recover(); r != nil {
			wp.logger.Error("fanout_task_panic", "worker", id, "task", task.name, "panic", r)
		}
	}()

	if err := task.run(ctx); err != nil {
		wp.logger.Warn("fanout_task_failed", "worker", id, "task", task.name, "error", err)
	}
}
