// Package dedupe tracks the last accepted frame index per stream so retried
// and out-of-order frames are rejected before they reach a pipeline.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Sequencer records the highest frame index accepted per stream.
type Sequencer interface {
	// SeenAndRecord atomically checks seq against the stream's watermark.
	// Returns true if seq is not greater than the last accepted index (stale),
	// false if it was newly recorded.
	SeenAndRecord(ctx context.Context, stream string, seq int64) bool

	// Unrecord rolls the watermark back when a recorded frame could not be
	// delivered (e.g. queue backpressure) so the caller may resubmit it.
	Unrecord(ctx context.Context, stream string, seq int64)

	// Forget drops a stream, typically when its session ends.
	Forget(ctx context.Context, stream string)

	Size() int64
}

// mark keeps one level of history so a single Unrecord can roll back.
type mark struct {
	last, prev   int64
	has, prevHas bool
}

// inMemorySequencer keeps one watermark per stream. With maxStreams > 0 the
// oldest stream is evicted once the limit is reached.
type inMemorySequencer struct {
	mu         sync.Mutex
	marks      map[string]*mark
	order      []string
	maxStreams int
	size       atomic.Int64
}

// NewInMemorySequencer creates a sequencer with configuration options.
func NewInMemorySequencer(opts ...Option) Sequencer {
	s := &inMemorySequencer{
		maxStreams: 10000,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.marks = make(map[string]*mark)
	return s
}

func (s *inMemorySequencer) SeenAndRecord(_ context.Context, stream string, seq int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.marks[stream]
	if !ok {
		if s.maxStreams > 0 && len(s.marks) >= s.maxStreams {
			s.evictOldest()
		}
		m = &mark{}
		s.marks[stream] = m
		s.order = append(s.order, stream)
		s.size.Add(1)
	}

	if m.has && seq <= m.last {
		return true
	}
	m.prev, m.prevHas = m.last, m.has
	m.last, m.has = seq, true
	return false
}

func (s *inMemorySequencer) Unrecord(_ context.Context, stream string, seq int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.marks[stream]
	if !ok || !m.has || m.last != seq {
		return
	}
	m.last, m.has = m.prev, m.prevHas
	m.prevHas = false
}

func (s *inMemorySequencer) Forget(_ context.Context, stream string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.marks[stream]; !ok {
		return
	}
	delete(s.marks, stream)
	for i, id := range s.order {
		if id == stream {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.size.Add(-1)
}

// evictOldest must be called with s.mu held.
func (s *inMemorySequencer) evictOldest() {
	if len(s.order) == 0 {
		return
	}
	oldest := s.order[0]
	s.order = s.order[1:]
	delete(s.marks, oldest)
	s.size.Add(-1)
}

func (s *inMemorySequencer) Size() int64 {
	return s.size.Load()
}
