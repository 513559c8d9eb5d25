// Package scoring keeps the running made/attempt tally and session stopwatch.
package scoring

import (
	"fmt"
	"sync"
	"time"

	"github.com/okian/courtside/internal/domain/model"
)

// Option applies a configuration option to the Board.
type Option func(*Board)

// WithClock sets the time source used by the stopwatch.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		if now != nil {
			b.now = now
		}
	}
}

// Summary is an immutable copy of the board.
type Summary struct {
	Made       int           `json:"made"`
	Attempts   int           `json:"attempts"`
	Score      string        `json:"score"`
	Percentage int           `json:"percentage"`
	Elapsed    time.Duration `json:"elapsed_ns"`
	Clock      string        `json:"clock"`
	StartedAt  time.Time     `json:"started_at"`
	Running    bool          `json:"running"`
}

// Board counts events for one session. It is written by the frame worker and
// read by API handlers, so access is guarded.
type Board struct {
	mu sync.RWMutex

	made      int
	attempts  int
	startedAt time.Time
	stoppedAt time.Time
	running   bool

	now func() time.Time
}

// NewBoard creates a stopped, empty Board.
func NewBoard(opts ...Option) *Board {
	b := &Board{now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Start resets the counters and starts the stopwatch.
func (b *Board) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.made, b.attempts = 0, 0
	b.startedAt = b.now()
	b.stoppedAt = time.Time{}
	b.running = true
}

// Stop freezes the stopwatch. Counters are kept.
func (b *Board) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.running {
		return
	}
	b.stoppedAt = b.now()
	b.running = false
}

// Record applies a frame's events to the tally.
func (b *Board) Record(events []model.Event) {
	if len(events) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, e := range events {
		switch e.Kind {
		case model.AttemptStarted:
			b.attempts++
		case model.ShotMade:
			b.made++
		}
	}
}

// Summary returns the current tally.
func (b *Board) Summary() Summary {
	b.mu.RLock()
	defer b.mu.RUnlock()

	elapsed := b.elapsed()
	return Summary{
		Made:       b.made,
		Attempts:   b.attempts,
		Score:      fmt.Sprintf("%d / %d", b.made, b.attempts),
		Percentage: Percentage(b.made, b.attempts),
		Elapsed:    elapsed,
		Clock:      FormatClock(elapsed),
		StartedAt:  b.startedAt,
		Running:    b.running,
	}
}

func (b *Board) elapsed() time.Duration {
	switch {
	case b.startedAt.IsZero():
		return 0
	case b.running:
		return b.now().Sub(b.startedAt)
	default:
		return b.stoppedAt.Sub(b.startedAt)
	}
}

// Percentage is made over attempts, rounded down. A make seen without its
// attempt still counts as one, so the result never exceeds 100.
func Percentage(made, attempts int) int {
	if made > attempts {
		attempts = made
	}
	if attempts == 0 {
		return 0
	}
	return made * 100 / attempts
}

// FormatClock renders d as HH:MM:SS.
func FormatClock(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
