package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/courtside/internal/replay"
)

func main() {
	d := replay.Defaults()
	var (
		input       = flag.String("input", "", `JSON-lines frame file ("-" for stdin)`)
		synthetic   = flag.Bool("synthetic", false, "Generate a synthetic shooting session")
		shots       = flag.Int("shots", d.Shots, "Number of synthetic shots")
		missEvery   = flag.Int("miss-every", 0, "Every n-th synthetic shot misses")
		orientation = flag.String("orientation", d.Orientation, "Default device orientation")
		preset      = flag.String("preset", d.Preset, "Default capture preset: video or photo")
		width       = flag.Float64("width", d.Width, "Default display width in points")
		height      = flag.Float64("height", d.Height, "Default display height in points")
		cooldown    = flag.Int64("cooldown", d.Cooldown, "Made-shot cooldown in frames (negative keeps the default)")
		verbose     = flag.Bool("verbose", false, "Print every frame")
		help        = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		replay.ShowHelp(os.Stdout)
		return
	}

	if err := replay.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := replay.Config{
		Input:       *input,
		Synthetic:   *synthetic,
		Shots:       *shots,
		MissEvery:   *missEvery,
		Orientation: *orientation,
		Preset:      *preset,
		Width:       *width,
		Height:      *height,
		Cooldown:    *cooldown,
		Verbose:     *verbose,
	}
	if _, err := replay.Run(ctx, cfg, os.Stdout); err != nil {
		os.Stderr.WriteString("Replay failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
