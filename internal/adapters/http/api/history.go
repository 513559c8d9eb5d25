package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/okian/courtside/internal/domain/types"
)

const defaultHistoryLimit = 20

// HistoryDependencies defines the interface for finished-session reads.
type HistoryDependencies interface {
	History(ctx context.Context, limit int) ([]types.SessionRecord, error)
	HistoryEntry(ctx context.Context, id string) (types.SessionRecord, error)
}

// HistoryHandler handles history requests.
type HistoryHandler struct {
	deps     HistoryDependencies
	maxLimit int
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(deps HistoryDependencies, maxLimit int) *HistoryHandler {
	if maxLimit < 1 {
		maxLimit = 100
	}
	return &HistoryHandler{deps: deps, maxLimit: maxLimit}
}

// HandleList handles GET /history?limit=N.
func (h *HistoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_history"
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("limit must be a positive integer")))
			return
		}
		limit = n
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	recs, err := h.deps.History(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// HandleGet handles GET /history/{id}.
func (h *HistoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_history"
	rec, err := h.deps.HistoryEntry(r.Context(), r.PathValue("id"))
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", WrapKind(op, ErrNotFound, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
