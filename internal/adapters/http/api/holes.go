package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/okian/golfbet/internal/domain/types"
)

// HoleDependencies defines the per-hole operations.
type HoleDependencies interface {
	AddHole(ctx context.Context, id string, number int, value float64, par int) (types.HoleView, error)
	Hole(ctx context.Context, id string, number int) (types.HoleView, error)
	SetScores(ctx context.Context, id string, number int, entries []types.ScoreEntry) (types.HoleView, error)
	SetBuchi(ctx context.Context, id string, number int, entries []types.BuchiEntry) (types.HoleView, error)
	SettleHole(ctx context.Context, id string, number int) (types.HoleView, error)
}

// HoleHandler handles hole requests.
type HoleHandler struct {
	deps HoleDependencies
}

// NewHoleHandler creates a new hole handler.
func NewHoleHandler(deps HoleDependencies) *HoleHandler {
	return &HoleHandler{deps: deps}
}

type addHoleRequest struct {
	Number int     `json:"number"`
	Value  float64 `json:"value"`
	Par    int     `json:"par"`
}

type scoresRequest struct {
	Scores []types.ScoreEntry `json:"scores"`
}

type buchiRequest struct {
	Entries []types.BuchiEntry `json:"entries"`
}

// HandleAdd handles POST /games/{gameID}/holes.
func (h *HoleHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_hole"
	var req addHoleRequest
	if err := decodeBody(w, r, op, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	view, err := h.deps.AddHole(r.Context(), chi.URLParam(r, "gameID"), req.Number, req.Value, req.Par)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// HandleGet handles GET /games/{gameID}/holes/{hole}.
func (h *HoleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_hole"
	number, err := holeParam(r, op)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	view, err := h.deps.Hole(r.Context(), chi.URLParam(r, "gameID"), number)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleSetScores handles PUT /games/{gameID}/holes/{hole}/scores.
func (h *HoleHandler) HandleSetScores(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_scores"
	number, err := holeParam(r, op)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	var req scoresRequest
	if err := decodeBody(w, r, op, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	view, err := h.deps.SetScores(r.Context(), chi.URLParam(r, "gameID"), number, req.Scores)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleSetBuchi handles PUT /games/{gameID}/holes/{hole}/buchi.
func (h *HoleHandler) HandleSetBuchi(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_buchi"
	number, err := holeParam(r, op)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	var req buchiRequest
	if err := decodeBody(w, r, op, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	view, err := h.deps.SetBuchi(r.Context(), chi.URLParam(r, "gameID"), number, req.Entries)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleSettle handles POST /games/{gameID}/holes/{hole}/settle.
func (h *HoleHandler) HandleSettle(w http.ResponseWriter, r *http.Request) {
	const op = "api.settle_hole"
	number, err := holeParam(r, op)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	view, err := h.deps.SettleHole(r.Context(), chi.URLParam(r, "gameID"), number)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
