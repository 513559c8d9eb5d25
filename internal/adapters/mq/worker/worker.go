// Package worker drives a pipeline session from its frame queue.
//
// Each session gets exactly one worker, so frames are processed serially and
// at most one frame is in flight at any time.
package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

// Frame abstracts what workers read off the queue.
type Frame = model.Frame

// Processor runs one frame through the pipeline.
type Processor interface {
	Process(ctx context.Context, f model.Frame) model.FrameResult
}

// Sink receives every immutable frame result.
type Sink interface {
	Publish(ctx context.Context, r model.FrameResult)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, r model.FrameResult)

// Publish calls f(ctx, r).
func (f SinkFunc) Publish(ctx context.Context, r model.FrameResult) { f(ctx, r) }

// Queue defines how workers receive frames.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Frame
}

// Worker processes frames using the provided interfaces.
type Worker interface {
	// Run starts the worker loop until ctx is canceled, the queue closes,
	// or Shutdown is called.
	Run(ctx context.Context)

	// Shutdown stops the worker after the frames already queued are handled.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for one session.
type InMemoryWorker struct {
	queue     Queue
	processor Processor
	sink      Sink
	name      string

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, processor Processor, sink Sink, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		processor: processor,
		sink:      sink,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    logger.Default().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	frames := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			w.drain(ctx, frames)
			return
		case f, ok := <-frames:
			if !ok {
				return
			}
			w.processFrame(ctx, f)
		}
	}
}

// drain handles frames that were accepted before shutdown was requested.
func (w *InMemoryWorker) drain(ctx context.Context, frames <-chan Frame) {
	for {
		select {
		case f, ok := <-frames:
			if !ok {
				return
			}
			w.processFrame(ctx, f)
		default:
			return
		}
	}
}

// Shutdown gracefully stops the worker. It is safe to call more than once.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	w.shutdownOnce.Do(func() { close(w.shutdown) })

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed when Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} {
	return w.done
}

// processFrame runs one frame and publishes the result. A panic in the
// pipeline is contained to the frame that caused it.
func (w *InMemoryWorker) processFrame(ctx context.Context, f Frame) { //nolint:gocritic // hugeParam: Frame is passed by value for channel semantics
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordErrorByComponent("worker", "panic")
			w.logger.Error(ctx, "frame processing panicked",
				logger.Int64("frame", f.Index),
				logger.Any("panic", r),
			)
		}
	}()

	res := w.processor.Process(ctx, f)
	if w.sink != nil {
		w.sink.Publish(ctx, res)
	}
}
