// Package service provides the application service behind the HTTP API:
// capture sessions, frame submission, scoreboards and history.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/courtside/internal/adapters/mq/queue"
	"github.com/okian/courtside/internal/adapters/mq/worker"
	"github.com/okian/courtside/internal/adapters/repository"
	"github.com/okian/courtside/internal/domain/dedupe"
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/pipeline"
	"github.com/okian/courtside/internal/domain/scoring"
	"github.com/okian/courtside/internal/domain/types"
	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

// session bundles the per-session pipeline with its queue and worker.
type session struct {
	id       string
	pipeline *pipeline.Session
	board    *scoring.Board
	queue    *queue.InMemoryQueue
	worker   *worker.InMemoryWorker
	cancel   context.CancelFunc

	mu        sync.RWMutex
	last      *model.FrameResult
	processed int64
}

// publish is the worker sink: it keeps the latest result for snapshots.
func (s *session) publish(_ context.Context, r model.FrameResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &r
	s.processed++
}

func (s *session) snapshot() types.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return types.Snapshot{
		ID:        s.id,
		Summary:   s.board.Summary(),
		Processed: s.processed,
		Last:      s.last,
	}
}

// Service implements the API dependencies.
type Service struct {
	mu sync.RWMutex

	sessions  map[string]*session
	history   repository.Store
	sequencer dedupe.Sequencer

	frameQueueSize  int
	historySize     int
	maxHistoryLimit int
	shutdownTimeout time.Duration
	pipelineOpts    []pipeline.Option
	now             func() time.Time

	started bool

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		sessions:        make(map[string]*session),
		frameQueueSize:  1,
		historySize:     1000,
		maxHistoryLimit: 100,
		shutdownTimeout: 5 * time.Second,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Default().Named("service")
	}

	s.history = repository.NewTreapStore(repository.WithCapacity(s.historySize))
	s.sequencer = dedupe.NewInMemorySequencer()
	s.started = true

	metrics.UpdateActiveSessions(0)
	s.logger.Info(ctx, "courtside service started",
		logger.Int("frameQueueSize", s.frameQueueSize),
		logger.Int("historySize", s.historySize),
	)
	return nil
}

// Stop ends every live session and shuts the service down.
func (s *Service) Stop() {
	ctx := context.Background()

	s.mu.RLock()
	if !s.started {
		s.mu.RUnlock()
		return
	}
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	for _, id := range ids {
		if _, err := s.EndSession(ctx, id); err != nil {
			s.logger.Warn(ctx, "failed to end session on shutdown", logger.String("session", id), logger.Error(err))
		}
	}

	s.mu.Lock()
	s.started = false
	s.mu.Unlock()
	s.logger.Info(ctx, "courtside service stopped")
}

// StartSession opens a capture session and starts its worker.
func (s *Service) StartSession(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return "", ErrNotStarted
	}

	id := uuid.NewString()
	board := scoring.NewBoard(scoring.WithClock(s.now))
	opts := make([]pipeline.Option, 0, len(s.pipelineOpts)+2)
	opts = append(opts, pipeline.WithLogger(s.logger))
	opts = append(opts, s.pipelineOpts...)
	opts = append(opts, pipeline.WithBoard(board))

	sess := &session{
		id:       id,
		pipeline: pipeline.NewSession(opts...),
		board:    board,
		queue:    queue.NewInMemoryQueue(queue.WithCapacity(s.frameQueueSize)),
	}
	sess.worker = worker.NewInMemoryWorker(sess.queue, sess.pipeline, worker.SinkFunc(sess.publish),
		worker.WithName("session-"+id[:8]),
		worker.WithLogger(s.logger),
	)

	// The worker outlives the request that created the session.
	workerCtx, cancel := context.WithCancel(context.Background())
	sess.cancel = cancel
	board.Start()
	go sess.worker.Run(workerCtx)

	s.sessions[id] = sess
	metrics.UpdateActiveSessions(len(s.sessions))
	s.logger.Info(ctx, "session started", logger.String("session", id))
	return id, nil
}

// SubmitFrame hands a frame to the session worker without blocking.
func (s *Service) SubmitFrame(ctx context.Context, id string, f model.Frame) (types.SubmitStatus, error) { //nolint:gocritic // hugeParam: Frame is queued by value
	sess, err := s.lookup(id)
	if err != nil {
		return "", err
	}

	if s.sequencer.SeenAndRecord(ctx, id, f.Index) {
		metrics.RecordFrameStale()
		s.logger.Debug(ctx, "stale frame ignored", logger.String("session", id), logger.Int64("frame", f.Index))
		return types.Stale, nil
	}

	if !sess.queue.Enqueue(ctx, f) {
		// Let the caller resubmit this index once the worker catches up.
		s.sequencer.Unrecord(ctx, id, f.Index)
		return types.Dropped, nil
	}
	return types.Accepted, nil
}

// Snapshot returns the live scoreboard and last frame result of a session.
func (s *Service) Snapshot(_ context.Context, id string) (types.Snapshot, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return types.Snapshot{}, err
	}
	return sess.snapshot(), nil
}

// EndSession stops the session worker and records the session in history.
func (s *Service) EndSession(ctx context.Context, id string) (types.SessionRecord, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
		metrics.UpdateActiveSessions(len(s.sessions))
	}
	s.mu.Unlock()
	if !ok {
		return types.SessionRecord{}, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
	defer cancel()
	if err := sess.worker.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn(ctx, "session worker did not stop cleanly", logger.String("session", id), logger.Error(err))
	}
	sess.cancel()
	_ = sess.queue.Close()
	s.sequencer.Forget(ctx, id)

	sess.board.Stop()
	sum := sess.board.Summary()
	rec := repository.Record{
		ID:         id,
		Made:       sum.Made,
		Attempts:   sum.Attempts,
		Score:      sum.Score,
		Percentage: sum.Percentage,
		Elapsed:    sum.Elapsed,
		Clock:      sum.Clock,
		StartedAt:  sum.StartedAt,
		EndedAt:    s.now(),
	}
	if err := s.history.Save(ctx, rec); err != nil {
		return toSessionRecord(rec), fmt.Errorf("save history: %w", err)
	}

	metrics.RecordSessionCompleted()
	s.logger.Info(ctx, "session ended",
		logger.String("session", id),
		logger.String("score", rec.Score),
		logger.Int("percentage", rec.Percentage),
		logger.String("clock", rec.Clock),
	)
	return toSessionRecord(rec), nil
}

// History returns finished sessions, most recent first. The limit is capped
// at the configured maximum.
func (s *Service) History(ctx context.Context, limit int) ([]types.SessionRecord, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	if limit > s.maxHistoryLimit {
		limit = s.maxHistoryLimit
	}
	recs, err := s.history.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]types.SessionRecord, len(recs))
	for i := range recs {
		out[i] = toSessionRecord(recs[i])
	}
	return out, nil
}

// HistoryEntry returns one finished session.
func (s *Service) HistoryEntry(ctx context.Context, id string) (types.SessionRecord, error) {
	if !s.isStarted() {
		return types.SessionRecord{}, ErrNotStarted
	}
	rec, err := s.history.Get(ctx, id)
	if err != nil {
		return types.SessionRecord{}, err
	}
	return toSessionRecord(rec), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"frameQueueSize":  s.frameQueueSize,
		"historySize":     s.historySize,
		"maxHistoryLimit": s.maxHistoryLimit,
	}
	if s.started {
		queued := 0
		for _, sess := range s.sessions {
			queued += sess.queue.Len(context.Background())
		}
		stats["activeSessions"] = len(s.sessions)
		stats["queuedFrames"] = queued
		stats["finishedSessions"] = s.history.Count(context.Background())
		stats["trackedStreams"] = s.sequencer.Size()
		metrics.UpdateActiveSessions(len(s.sessions))
	}
	return stats
}

func (s *Service) lookup(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	return sess, nil
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

func toSessionRecord(r repository.Record) types.SessionRecord { //nolint:gocritic // hugeParam: converted by value
	return types.SessionRecord{
		ID:         r.ID,
		Made:       r.Made,
		Attempts:   r.Attempts,
		Score:      r.Score,
		Percentage: r.Percentage,
		Clock:      r.Clock,
		StartedAt:  r.StartedAt,
		EndedAt:    r.EndedAt,
	}
}
