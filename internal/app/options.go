package service

import (
	"time"

	"github.com/okian/courtside/internal/domain/pipeline"
	"github.com/okian/courtside/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFrameQueueSize sets how many frames may wait behind the one in flight.
func WithFrameQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.frameQueueSize = size
		}
	}
}

// WithHistorySize bounds the number of finished sessions kept.
func WithHistorySize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.historySize = size
		}
	}
}

// WithMaxHistoryLimit caps how many sessions one History call returns.
func WithMaxHistoryLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxHistoryLimit = limit
		}
	}
}

// WithPipelineOptions sets options applied to every new pipeline session.
func WithPipelineOptions(opts ...pipeline.Option) Option {
	return func(s *Service) {
		s.pipelineOpts = append(s.pipelineOpts, opts...)
	}
}

// WithShutdownTimeout bounds how long ending a session waits for its worker.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithClock sets the time source for session stopwatches and history.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
