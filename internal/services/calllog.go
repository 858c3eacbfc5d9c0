package services

import (
	"time"

	"github.com/gamecp/provisioner/internal/models"
	"github.com/gamecp/provisioner/internal/queue"
	"github.com/google/uuid"
)

// CallLogger feeds the module call log through the fire-and-forget queue.
// It satisfies panel.CallRecorder so the Gateway records every external
// call, and services use it directly for orchestration failures. A nil
// *CallLogger is a valid no-op, which keeps test wiring small.
type CallLogger struct {
	queue *queue.CallLogQueue
}

// NewCallLogger creates a call logger backed by the given queue
func NewCallLogger(q *queue.CallLogQueue) *CallLogger {
	return &CallLogger{queue: q}
}

// Record implements panel.CallRecorder
func (l *CallLogger) Record(action string, request map[string]interface{}, response string, metadata map[string]interface{}) {
	if l == nil || l.queue == nil {
		return
	}
	l.queue.Enqueue(&models.CallLogEntry{
		ID:        uuid.NewString(),
		Action:    action,
		Request:   request,
		Response:  response,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	})
}

// RecordFailure logs an orchestration failure with its input summary
func (l *CallLogger) RecordFailure(action string, request map[string]interface{}, err error) {
	if err == nil {
		return
	}
	l.Record(action, request, err.Error(), map[string]interface{}{
		"outcome": "failure",
	})
}
