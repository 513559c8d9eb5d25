package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/types"
)

// maxFrameBody bounds a frame submission.
const maxFrameBody = 1 << 20

// SessionDependencies defines the interface for capture session operations.
type SessionDependencies interface {
	StartSession(ctx context.Context) (string, error)
	SubmitFrame(ctx context.Context, id string, f model.Frame) (types.SubmitStatus, error)
	Snapshot(ctx context.Context, id string) (types.Snapshot, error)
	EndSession(ctx context.Context, id string) (types.SessionRecord, error)
}

// SessionsHandler handles session and frame requests.
type SessionsHandler struct {
	deps SessionDependencies
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps SessionDependencies) *SessionsHandler {
	return &SessionsHandler{deps: deps}
}

// HandleCreate handles POST /sessions.
func (h *SessionsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_session"
	id, err := h.deps.StartSession(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{ID: id})
}

// HandleSubmitFrame handles POST /sessions/{id}/frames.
func (h *SessionsHandler) HandleSubmitFrame(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_frame"
	id := r.PathValue("id")

	var req frameRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFrameBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	frame, err := req.toFrame()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	status, err := h.deps.SubmitFrame(r.Context(), id, frame)
	switch {
	case err != nil && isNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
	case status == types.Dropped:
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
	case status == types.Stale:
		writeJSON(w, http.StatusOK, frameAck{Status: status, Frame: frame.Index})
	default:
		writeJSON(w, http.StatusAccepted, frameAck{Status: status, Frame: frame.Index})
	}
}

// HandleGet handles GET /sessions/{id}.
func (h *SessionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_session"
	snap, err := h.deps.Snapshot(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeLookupError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// HandleEnd handles DELETE /sessions/{id}.
func (h *SessionsHandler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	const op = "api.end_session"
	rec, err := h.deps.EndSession(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeLookupError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *SessionsHandler) writeLookupError(w http.ResponseWriter, op string, err error) {
	if isNotFound(err) {
		writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
}
