// Package pipeline runs the per-frame detection-to-event flow for one capture
// session: geometry mapping, rim tracking, shot events, and annotations.
//
// A Session holds all per-session state and must be driven serially, one
// frame at a time, from a single goroutine. Callers receive immutable
// FrameResult values only.
package pipeline

import (
	"context"
	"time"

	"github.com/okian/courtside/internal/domain/geometry"
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/present"
	"github.com/okian/courtside/internal/domain/rim"
	"github.com/okian/courtside/internal/domain/scoring"
	"github.com/okian/courtside/internal/domain/shot"
	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

// Default pipeline configuration constants.
const (
	defaultMaxDetections = 100
	defaultBallLabel     = "ball"
	defaultRimLabel      = "rim"
)

// Session is the per-session state bundle plus the components that mutate it.
type Session struct {
	maxDetections        int
	ballLabel            string
	rimLabel             string
	suppressWhenDegraded bool
	heightDivisor        float64
	rimMaxStale          int64
	cooldownFrames       int64
	attemptMargin        float64
	presenterOpts        []present.Option

	mapper    *geometry.Mapper
	rims      *rim.Tracker
	engine    *shot.Engine
	presenter *present.Presenter
	board     *scoring.Board

	logger logger.Logger
}

// NewSession creates a Session with configuration options.
func NewSession(opts ...Option) *Session {
	s := &Session{
		maxDetections:  defaultMaxDetections,
		ballLabel:      defaultBallLabel,
		rimLabel:       defaultRimLabel,
		cooldownFrames: -1,
		attemptMargin:  -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Default().Named("pipeline")
	}
	if s.board == nil {
		s.board = scoring.NewBoard()
	}

	s.mapper = geometry.NewMapper(geometry.WithHeightDivisor(s.heightDivisor))
	s.rims = rim.NewTracker(
		rim.WithLabel(s.rimLabel),
		rim.WithMaxStaleFrames(s.rimMaxStale),
		rim.WithMapper(s.mapper),
	)
	s.engine = shot.NewEngine(
		shot.WithCooldownFrames(s.cooldownFrames),
		shot.WithAttemptMargin(s.attemptMargin),
	)
	s.presenter = present.NewPresenter(s.presenterOpts...)
	return s
}

// mapped pairs a valid detection with its display rectangle.
type mapped struct {
	det  model.Detection
	rect model.Rect
}

// Process runs one frame through the pipeline.
func (s *Session) Process(ctx context.Context, f model.Frame) model.FrameResult {
	start := time.Now()
	defer func() {
		metrics.RecordFrameProcessed()
		metrics.RecordFrameLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	res := model.FrameResult{Frame: f.Index, Events: []model.Event{}, Annotations: []model.Annotation{}}

	dets := f.Detections
	if len(dets) > s.maxDetections {
		res.Skipped += len(dets) - s.maxDetections
		s.logger.Debug(ctx, "detections over per-frame cap dropped",
			logger.Int64("frame", f.Index),
			logger.Int("received", len(dets)),
			logger.Int("cap", s.maxDetections),
		)
		dets = dets[:s.maxDetections]
	}

	if !f.Display.Valid() {
		res.Skipped += len(dets)
		metrics.RecordDetectionsSkipped(res.Skipped)
		s.logger.Warn(ctx, "frame has no usable display size; skipped",
			logger.Int64("frame", f.Index),
			logger.Float64("width", f.Display.Width),
			logger.Float64("height", f.Display.Height),
		)
		return res
	}

	valid := make([]model.Detection, 0, len(dets))
	items := make([]mapped, 0, len(dets))
	for _, d := range dets {
		if !d.Valid() {
			res.Skipped++
			continue
		}
		r, degraded, err := s.mapper.Map(d.Box, f.Orientation, f.Preset, f.Display)
		if err != nil {
			res.Skipped++
			continue
		}
		res.Degraded = res.Degraded || degraded
		valid = append(valid, d)
		items = append(items, mapped{det: d, rect: r})
	}
	if res.Skipped > 0 {
		metrics.RecordDetectionsSkipped(res.Skipped)
		s.logger.Debug(ctx, "malformed detections skipped",
			logger.Int64("frame", f.Index),
			logger.Int("skipped", res.Skipped),
		)
	}
	if f.Orientation == model.UnknownOrientation {
		res.Degraded = true
	}
	if res.Degraded {
		metrics.RecordDegradedFrame()
		s.logger.Debug(ctx, "orientation unknown; mapped as portrait", logger.Int64("frame", f.Index))
	}

	var rimRect *model.Rect
	if tracked, ok := s.rims.Update(valid, f.Orientation, f.Preset, f.Display, f.Index); ok {
		r := tracked.Rect
		rimRect = &r
		res.Rim = &r
	}

	if res.Degraded && s.suppressWhenDegraded {
		s.logger.Debug(ctx, "event detection suppressed for degraded frame", logger.Int64("frame", f.Index))
	} else {
		events := s.engine.Update(s.ball(items), rimRect, f.Index)
		res.Events = append(res.Events, events...)
		s.record(ctx, events)
	}

	for _, it := range items {
		res.Annotations = append(res.Annotations, s.presenter.Present(it.det, it.rect))
	}

	return res
}

// ball returns the display rect of the most confident ball, or nil.
func (s *Session) ball(items []mapped) *model.Rect {
	var best *mapped
	for i := range items {
		if items[i].det.Label != s.ballLabel {
			continue
		}
		if best == nil || items[i].det.Confidence > best.det.Confidence {
			best = &items[i]
		}
	}
	if best == nil {
		return nil
	}
	r := best.rect
	return &r
}

func (s *Session) record(ctx context.Context, events []model.Event) {
	s.board.Record(events)
	for _, e := range events {
		switch e.Kind {
		case model.AttemptStarted:
			metrics.RecordAttempt()
		case model.ShotMade:
			metrics.RecordShotMade()
		}
		s.logger.Info(ctx, "shot event", logger.String("kind", e.Kind.String()), logger.Int64("frame", e.Frame))
	}
}

// Board returns the session scoreboard.
func (s *Session) Board() *scoring.Board {
	return s.board
}

// EngineState returns the current attempt/made debounce state.
func (s *Session) EngineState() shot.State {
	return s.engine.State()
}

// Reset discards all per-session state: tracked rim, debounce state, label
// colors, and the scoreboard.
func (s *Session) Reset() {
	s.rims.Reset()
	s.engine.Reset()
	s.presenter = present.NewPresenter(s.presenterOpts...)
	s.board.Start()
}
