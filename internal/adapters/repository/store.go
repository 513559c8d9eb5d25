// Package repository keeps the history of finished capture sessions.
package repository

import (
	"context"
	"time"
)

// Record is one finished session.
type Record struct {
	ID         string        `json:"id"`
	Made       int           `json:"made"`
	Attempts   int           `json:"attempts"`
	Score      string        `json:"score"`
	Percentage int           `json:"percentage"`
	Elapsed    time.Duration `json:"elapsed_ns"`
	Clock      string        `json:"clock"`
	StartedAt  time.Time     `json:"started_at"`
	EndedAt    time.Time     `json:"ended_at"`
}

// Store provides read/write access to session history.
type Store interface {
	// Save records a finished session. Saving an existing ID replaces it.
	Save(ctx context.Context, r Record) error

	// Get returns a session by ID.
	// Returns ErrNotFound if the session is unknown.
	Get(ctx context.Context, id string) (Record, error)

	// List returns up to limit sessions, most recently ended first.
	List(ctx context.Context, limit int) ([]Record, error)

	// Count returns the number of sessions retained.
	Count(ctx context.Context) int
}
