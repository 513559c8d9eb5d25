// Package types contains the read shapes shared by the service and the API.
package types

import (
	"time"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/scoring"
)

// SubmitStatus describes what happened to a submitted frame.
type SubmitStatus string

const (
	// Accepted frames are queued for the session worker.
	Accepted SubmitStatus = "accepted"
	// Stale frames carry an index not greater than one already accepted.
	Stale SubmitStatus = "stale"
	// Dropped frames arrived while the worker was busy and the queue was full.
	Dropped SubmitStatus = "dropped"
)

// Snapshot is a point-in-time view of a live session.
type Snapshot struct {
	ID        string             `json:"id"`
	Summary   scoring.Summary    `json:"summary"`
	Processed int64              `json:"processed"`
	Last      *model.FrameResult `json:"last,omitempty"`
}

// SessionRecord is a finished session as listed in history.
type SessionRecord struct {
	ID         string    `json:"id"`
	Made       int       `json:"made"`
	Attempts   int       `json:"attempts"`
	Score      string    `json:"score"`
	Percentage int       `json:"percentage"`
	Clock      string    `json:"clock"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
}
