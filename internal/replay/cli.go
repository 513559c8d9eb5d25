package replay

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/courtside/pkg/logger"
)

// SetupLogging initializes the global logger on stderr so the report on
// stdout stays clean.
func SetupLogging(verbose bool) error {
	if err := logger.InitWithWriter(os.Stderr); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.SetLevelString(level)
}

// ShowHelp prints usage information for the replay tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Courtside Replay
================

Runs detection frames through the shot pipeline offline and prints the
events and final score.

Usage:
  go run ./cmd/replay [options]

Options:
  -input string
        JSON-lines frame file, "-" for stdin
  -synthetic
        Generate a synthetic shooting session instead of reading input
  -shots int
        Number of synthetic shots (default 5)
  -miss-every int
        Every n-th synthetic shot misses (default 0, never)
  -orientation string
        Default device orientation (default "portrait")
  -preset string
        Default capture preset: video or photo (default "video")
  -width float
        Default display width in points (default 375)
  -height float
        Default display height in points (default 812)
  -cooldown int
        Made-shot cooldown in frames (default: engine default)
  -verbose
        Print every frame with rim, annotations and debug logs
  -help
        Show this help message

Examples:
  go run ./cmd/replay -synthetic -shots 10 -miss-every 3
  go run ./cmd/replay -input session.jsonl -verbose
`)
}
