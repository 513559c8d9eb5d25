// Package queue defines the contract for handing frames from the submitter
// to a session's worker.
//
// The queue is deliberately tiny. A capacity of 1 means one frame may wait
// while another is processed; further frames are dropped, which is how a
// camera feed sheds load while inference is busy.
package queue

import (
	"context"
	"sync"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 1
)

// Frame represents the payload type flowing through the queue.
type Frame = model.Frame

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a frame to the queue.
	// Returns false if the queue is full or closed and the frame was dropped.
	Enqueue(ctx context.Context, f Frame) bool

	// Dequeue returns a channel that receives frames as they become available.
	// The channel is closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Frame

	// Len returns the current number of queued frames.
	Len(ctx context.Context) int

	// Close gracefully shuts down the queue.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	frames   chan Frame
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultQueueCapacity,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.frames = make(chan Frame, q.capacity)

	metrics.UpdateFrameQueueCapacity(q.capacity)
	return q
}

// Enqueue adds a frame to the queue without blocking.
func (q *InMemoryQueue) Enqueue(ctx context.Context, f Frame) bool { //nolint:gocritic // hugeParam: Frame is passed by value for channel semantics
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordErrorByComponent("queue", "closed")
		return false
	}
	if ctx.Err() != nil {
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return false
	}

	select {
	case q.frames <- f:
		return true
	default:
		metrics.RecordFrameDropped()
		return false
	}
}

// Dequeue returns the receive side of the queue. Frames are handed over
// directly so nothing is held outside the buffer.
func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan Frame {
	return q.frames
}

// Len returns the current number of queued frames.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return len(q.frames)
}

// Capacity returns the configured buffer size.
func (q *InMemoryQueue) Capacity() int {
	return q.capacity
}

// Close gracefully shuts down the queue. Frames already buffered remain
// readable until drained.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.frames)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
