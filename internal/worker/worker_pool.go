package worker

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// submitTimeout is how long Submit waits for room in a full queue before the task
// is dropped.
const submitTimeout = 1 * time.Second

type Task func()

// WorkerPool runs tasks on a fixed number of goroutines fed from a bounded queue.
// A panicking task is logged and does not take its worker down.
type WorkerPool struct {
	tasks      chan Task
	wg         sync.WaitGroup
	busy       int32
	maxWorkers int
	logger     zerolog.Logger

	mu      sync.RWMutex
	started bool
	stopped bool
}

func NewWorkerPool(maxWorkers, queueSize int, logger zerolog.Logger) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if queueSize < 1 {
		queueSize = maxWorkers * 10
	}
	return &WorkerPool{
		tasks:      make(chan Task, queueSize),
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

func (wp *WorkerPool) Start() {
	wp.mu.Lock()
	defer wp.mu.Unlock()
	if wp.started || wp.stopped {
		return
	}
	wp.started = true

	for i := 0; i < wp.maxWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}

	wp.logger.Info().
		Int("max_workers", wp.maxWorkers).
		Int("queue_capacity", cap(wp.tasks)).
		Msg("Worker pool started")
}

// Stop refuses new tasks, then waits until every queued task has run.
func (wp *WorkerPool) Stop() {
	wp.mu.Lock()
	if wp.stopped {
		wp.mu.Unlock()
		return
	}
	wp.stopped = true
	close(wp.tasks)
	wp.mu.Unlock()

	wp.wg.Wait()
	wp.logger.Info().Msg("Worker pool stopped")
}

// Submit queues task and reports whether it was accepted. When the queue is full it
// waits up to one second before dropping the task.
func (wp *WorkerPool) Submit(task Task) bool {
	wp.mu.RLock()
	defer wp.mu.RUnlock()

	if wp.stopped {
		wp.logger.Warn().Msg("Worker pool is stopped, task dropped")
		return false
	}

	select {
	case wp.tasks <- task:
		return true
	default:
	}

	wp.logger.Warn().Msg("Worker pool task queue is full")
	timer := time.NewTimer(submitTimeout)
	defer timer.Stop()

	select {
	case wp.tasks <- task:
		return true
	case <-timer.C:
		wp.logger.Error().Msg("Failed to submit task to worker pool (timeout)")
		return false
	}
}

func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	wp.logger.Debug().Int("worker_id", id).Msg("Worker started")

	for task := range wp.tasks {
		wp.run(id, task)
	}

	wp.logger.Debug().Int("worker_id", id).Msg("Worker stopped")
}

func (wp *WorkerPool) run(id int, task Task) {
	atomic.AddInt32(&wp.busy, 1)
	defer func() {
		atomic.AddInt32(&wp.busy, -1)
		if r := recover(); r != nil {
			wp.logger.Error().
				Int("worker_id", id).
				Interface("panic", r).
				Msg("Worker recovered from panic")
		}
	}()

	task()
}

func (wp *WorkerPool) GetActiveWorkers() int {
	return int(atomic.LoadInt32(&wp.busy))
}

func (wp *WorkerPool) GetQueueLength() int {
	return len(wp.tasks)
}
