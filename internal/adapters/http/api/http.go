// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SessionDependencies
	HistoryDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	sessionsHandler *SessionsHandler
	historyHandler  *HistoryHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxHistoryLimit int) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		sessionsHandler: NewSessionsHandler(deps),
		historyHandler:  NewHistoryHandler(deps, maxHistoryLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("POST /sessions", MetricsMiddleware(s.sessionsHandler.HandleCreate, "sessions"))
	mux.HandleFunc("GET /sessions/{id}", MetricsMiddleware(s.sessionsHandler.HandleGet, "session"))
	mux.HandleFunc("DELETE /sessions/{id}", MetricsMiddleware(s.sessionsHandler.HandleEnd, "session"))
	mux.HandleFunc("POST /sessions/{id}/frames", MetricsMiddleware(s.sessionsHandler.HandleSubmitFrame, "frames"))
	mux.HandleFunc("GET /history", MetricsMiddleware(s.historyHandler.HandleList, "history"))
	mux.HandleFunc("GET /history/{id}", MetricsMiddleware(s.historyHandler.HandleGet, "history_entry"))
}

type boxRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type detectionRequest struct {
	Label      string     `json:"label"`
	Confidence float64    `json:"confidence"`
	Box        boxRequest `json:"box"`
}

type displayRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// frameRequest is the body of POST /sessions/{id}/frames. Individual
// malformed detections are not rejected here; the pipeline skips them.
type frameRequest struct {
	Index       *int64             `json:"index"`
	Orientation string             `json:"orientation"`
	Preset      string             `json:"preset"`
	Display     displayRequest     `json:"display"`
	Detections  []detectionRequest `json:"detections"`
}

func (f frameRequest) validate() error {
	switch {
	case f.Index == nil:
		return errors.New("missing index")
	case *f.Index < 0:
		return errors.New("index must be >= 0")
	case !positive(f.Display.Width) || !positive(f.Display.Height):
		return errors.New("display width and height must be positive")
	}
	for i, d := range f.Detections {
		if strings.TrimSpace(d.Label) == "" {
			return fmt.Errorf("detection %d: missing label", i)
		}
	}
	return nil
}

func (f frameRequest) toFrame() (model.Frame, error) {
	preset := model.Video16x9
	if f.Preset != "" {
		p, err := model.ParsePreset(f.Preset)
		if err != nil {
			return model.Frame{}, err
		}
		preset = p
	}
	frame := model.Frame{
		Index:       *f.Index,
		Orientation: model.ParseOrientation(f.Orientation),
		Preset:      preset,
		Display:     model.Size{Width: f.Display.Width, Height: f.Display.Height},
		Detections:  make([]model.Detection, len(f.Detections)),
	}
	for i, d := range f.Detections {
		frame.Detections[i] = model.Detection{
			Label:      d.Label,
			Confidence: d.Confidence,
			Box:        model.Box{X: d.Box.X, Y: d.Box.Y, W: d.Box.W, H: d.Box.H},
		}
	}
	return frame, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

type sessionResponse struct {
	ID string `json:"id"`
}

type frameAck struct {
	Status types.SubmitStatus `json:"status"`
	Frame  int64              `json:"frame"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound allows the API to translate upstream not-found errors to 404
// without importing the packages that define them.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var nf interface{ NotFound() bool }
	if errors.As(err, &nf) && nf.NotFound() {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "unknown session")
}
