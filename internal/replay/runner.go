// Package replay feeds recorded or synthetic frames through a local pipeline
// session and reports the resulting events and scoreboard.
package replay

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/pipeline"
	"github.com/okian/courtside/pkg/logger"
)

// Run executes a replay and writes a report to out.
func Run(ctx context.Context, cfg Config, out io.Writer) (Stats, error) {
	log := logger.Default().Named("replay")

	defaults, err := cfg.frameDefaults()
	if err != nil {
		return Stats{}, err
	}

	frames, err := loadFrames(cfg, defaults)
	if err != nil {
		return Stats{}, err
	}
	log.Info(ctx, "replay starting",
		logger.Int("frames", len(frames)),
		logger.Bool("synthetic", cfg.Synthetic),
		logger.String("orientation", defaults.Orientation.String()),
	)

	session := pipeline.NewSession(
		pipeline.WithCooldownFrames(cfg.Cooldown),
		pipeline.WithLogger(log),
	)
	session.Board().Start()

	var stats Stats
	for _, f := range frames {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("replay interrupted: %w", err)
		}
		res := session.Process(ctx, f)
		stats.Frames++
		stats.Skipped += res.Skipped
		if res.Degraded {
			stats.Degraded++
		}
		if cfg.Verbose || len(res.Events) > 0 {
			writeFrame(out, res, cfg.Verbose)
		}
	}

	session.Board().Stop()
	sum := session.Board().Summary()
	stats.Attempts = sum.Attempts
	stats.Made = sum.Made
	stats.Score = sum.Score
	stats.Percentage = sum.Percentage

	fmt.Fprintf(out, "\nframes=%d degraded=%d skipped_detections=%d\n", stats.Frames, stats.Degraded, stats.Skipped)
	fmt.Fprintf(out, "score %s (%d%%)\n", stats.Score, stats.Percentage)
	return stats, nil
}

func loadFrames(cfg Config, d FrameDefaults) ([]model.Frame, error) {
	switch {
	case cfg.Synthetic:
		return Synthetic(cfg.Shots, cfg.MissEvery, cfg.Cooldown, d), nil
	case cfg.Input == "-":
		return ReadFrames(os.Stdin, d)
	case cfg.Input != "":
		f, err := os.Open(cfg.Input)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		return ReadFrames(f, d)
	default:
		return nil, ErrNoInput
	}
}

func writeFrame(out io.Writer, res model.FrameResult, verbose bool) {
	fmt.Fprintf(out, "frame %d:", res.Frame)
	for _, e := range res.Events {
		fmt.Fprintf(out, " %s", e.Kind)
	}
	if verbose {
		if res.Rim != nil {
			fmt.Fprintf(out, " rim=(%.1f,%.1f %.1fx%.1f)", res.Rim.X, res.Rim.Y, res.Rim.W, res.Rim.H)
		}
		for _, a := range res.Annotations {
			fmt.Fprintf(out, " [%s %s a=%.2f]", a.Text, a.Color.Hex, a.Alpha)
		}
		if res.Degraded {
			fmt.Fprint(out, " degraded")
		}
	}
	fmt.Fprintln(out)
}
