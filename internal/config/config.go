// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file, and environment variables.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"fmt"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// FrameQueueSize bounds each session's frame queue. 1 keeps at most one
	// frame waiting behind the one in flight; anything more is dropped.
	FrameQueueSize int `koanf:"frame_queue_size"`

	// MaxDetections caps detections considered per frame.
	MaxDetections int `koanf:"max_detections"`

	// CooldownFrames is the minimum frame distance between two ShotMade events.
	CooldownFrames int64 `koanf:"cooldown_frames"`

	// AttemptMargin is how far (pixels) the ball center must clear the rim top.
	AttemptMargin float64 `koanf:"attempt_margin"`

	// RimMaxStaleFrames expires the tracked rim; 0 holds it for the whole session.
	RimMaxStaleFrames int64 `koanf:"rim_max_stale_frames"`

	// HeightDivisor calibrates box heights on displays wider than the source.
	HeightDivisor float64 `koanf:"height_divisor"`

	// BallLabel and RimLabel name the detector classes.
	BallLabel string `koanf:"ball_label"`
	RimLabel  string `koanf:"rim_label"`

	// SuppressWhenDegraded drops events on frames with unknown orientation.
	SuppressWhenDegraded bool `koanf:"suppress_when_degraded"`

	// HistorySize bounds the finished-session history; MaxHistoryLimit caps GET /history?limit.
	HistorySize     int `koanf:"history_size"`
	MaxHistoryLimit int `koanf:"max_history_limit"`

	// ColorSeed makes label colors reproducible when non-zero.
	ColorSeed int64 `koanf:"color_seed"`

	// LabelColors pins label colors as hex strings.
	LabelColors map[string]string `koanf:"label_colors"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		FrameQueueSize:    1,
		MaxDetections:     100,
		CooldownFrames:    5,
		AttemptMargin:     0,
		RimMaxStaleFrames: 0,
		HeightDivisor:     1.0,
		BallLabel:         "ball",
		RimLabel:          "rim",
		HistorySize:       1000,
		MaxHistoryLimit:   100,
		LabelColors: map[string]string{
			"ball": "#ff8c00",
			"rim":  "#e03c31",
		},
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("addr must not be empty: %w", ErrInvalidConfig)
	case c.FrameQueueSize < 1:
		return fmt.Errorf("frame_queue_size must be >= 1: %w", ErrInvalidConfig)
	case c.MaxDetections < 1:
		return fmt.Errorf("max_detections must be >= 1: %w", ErrInvalidConfig)
	case c.CooldownFrames < 0:
		return fmt.Errorf("cooldown_frames must be >= 0: %w", ErrInvalidConfig)
	case c.AttemptMargin < 0:
		return fmt.Errorf("attempt_margin must be >= 0: %w", ErrInvalidConfig)
	case c.RimMaxStaleFrames < 0:
		return fmt.Errorf("rim_max_stale_frames must be >= 0: %w", ErrInvalidConfig)
	case c.HeightDivisor <= 0:
		return fmt.Errorf("height_divisor must be > 0: %w", ErrInvalidConfig)
	case c.BallLabel == "" || c.RimLabel == "":
		return fmt.Errorf("ball_label and rim_label must be set: %w", ErrInvalidConfig)
	case c.BallLabel == c.RimLabel:
		return fmt.Errorf("ball_label and rim_label must differ: %w", ErrInvalidConfig)
	case c.HistorySize < 1 || c.MaxHistoryLimit < 1:
		return fmt.Errorf("history sizes must be >= 1: %w", ErrInvalidConfig)
	}
	return nil
}
