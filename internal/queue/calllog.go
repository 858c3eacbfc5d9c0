package queue

import (
	"context"
	"sync"
	"time"

	"github.com/gamecp/provisioner/internal/logger"
	"github.com/gamecp/provisioner/internal/models"
	"github.com/gamecp/provisioner/internal/repository"
)

// putTimeout bounds a single call-log write so a slow store cannot pile
// up workers behind it
const putTimeout = 5 * time.Second

// CallLogQueue decouples call logging from the provisioning hot path.
// Enqueue never blocks: when the buffer is full the entry is dropped with
// a warning, because a call log must never stall or fail the hook that
// produced it.
type CallLogQueue struct {
	entries chan *models.CallLogEntry
	done    chan struct{}
	mu      sync.Mutex
	closed  bool
}

// NewCallLogQueue creates a new call log queue with the specified buffer size
func NewCallLogQueue(bufferSize int) *CallLogQueue {
	return &CallLogQueue{
		entries: make(chan *models.CallLogEntry, bufferSize),
		done:    make(chan struct{}),
	}
}

// Enqueue offers an entry to the queue, dropping it when the queue is full
// or closed
func (q *CallLogQueue) Enqueue(entry *models.CallLogEntry) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		logger.WithField("action", entry.Action).Warn("Call log entry dropped: queue closed")
		return
	}
	select {
	case q.entries <- entry:
		q.mu.Unlock()
	default:
		q.mu.Unlock()
		logger.WithField("action", entry.Action).Warn("Call log entry dropped: queue full")
	}
}

// Close stops the queue; pending entries are still drained by the worker
func (q *CallLogQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.entries)
	close(q.done)
}

// Worker drains the queue into a CallLogRepository
type Worker struct {
	queue *CallLogQueue
	repo  repository.CallLogRepository
	wg    sync.WaitGroup
}

// NewWorker creates a worker for the given queue and repository
func NewWorker(queue *CallLogQueue, repo repository.CallLogRepository) *Worker {
	return &Worker{
		queue: queue,
		repo:  repo,
	}
}

// Start begins draining the queue in the background
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.run()
}

// run writes entries until the queue is closed and drained. Write failures
// are logged and discarded; the log is best-effort by contract.
func (w *Worker) run() {
	defer w.wg.Done()

	for entry := range w.queue.entries {
		ctx, cancel := context.WithTimeout(context.Background(), putTimeout)
		err := w.repo.Put(ctx, entry)
		cancel()

		if err != nil {
			logger.WithFields(map[string]interface{}{
				"action": entry.Action,
				"error":  err.Error(),
			}).Warn("Failed to persist call log entry")
		}
	}

	logger.Debug("Call log worker exiting: queue drained")
}

// Wait blocks until the worker has drained the closed queue
func (w *Worker) Wait() {
	w.wg.Wait()
}
