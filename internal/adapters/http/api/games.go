package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/okian/golfbet/internal/domain/game"
	"github.com/okian/golfbet/internal/domain/types"
)

// GameDependencies defines the round-level operations.
type GameDependencies interface {
	CreateGame(ctx context.Context, req types.NewGame) (types.GameView, error)
	Game(ctx context.Context, id string) (types.GameView, error)
	DeleteGame(ctx context.Context, id string) error
	AddPlayer(ctx context.Context, id, name string) (types.GameView, error)
	SetVoor(ctx context.Context, id string, v types.Voor) (types.GameView, error)
	AdvanceHole(ctx context.Context, id string) (types.GameView, error)
	SettleRound(ctx context.Context, id string) (types.GameView, error)
	PlayerTotals(ctx context.Context, id, player string) (types.PlayerTotals, error)
}

// GameHandler handles round requests.
type GameHandler struct {
	deps GameDependencies
}

// NewGameHandler creates a new game handler.
func NewGameHandler(deps GameDependencies) *GameHandler {
	return &GameHandler{deps: deps}
}

// createGameRequest mirrors the OpenAPI schema for POST /games.
type createGameRequest struct {
	PlayerCount  int          `json:"player_count"`
	HoleCount    int          `json:"hole_count"`
	Mode         string       `json:"mode"`
	Scoring      string       `json:"scoring"`
	BuchiEnabled bool         `json:"buchi_enabled"`
	VoorEnabled  bool         `json:"voor_enabled"`
	Players      []string     `json:"players"`
	Voor         []types.Voor `json:"voor"`
}

func (c createGameRequest) toNewGame() (types.NewGame, error) {
	ng := types.NewGame{
		Settings: game.Settings{
			PlayerCount:  c.PlayerCount,
			HoleCount:    c.HoleCount,
			BuchiEnabled: c.BuchiEnabled,
			VoorEnabled:  c.VoorEnabled,
		},
		Players: c.Players,
		Voor:    c.Voor,
	}
	if strings.TrimSpace(c.Mode) != "" {
		mode, err := game.ParseGameMode(c.Mode)
		if err != nil {
			return types.NewGame{}, err
		}
		ng.Settings.Mode = mode
	}
	if strings.TrimSpace(c.Scoring) != "" {
		scoring, err := game.ParseScoringType(c.Scoring)
		if err != nil {
			return types.NewGame{}, err
		}
		ng.Settings.Scoring = scoring
	}
	return ng, nil
}

type addPlayerRequest struct {
	Name string `json:"name"`
}

// HandleCreate handles POST /games.
func (h *GameHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_game"
	var req createGameRequest
	if err := decodeBody(w, r, op, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	ng, err := req.toNewGame()
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	view, err := h.deps.CreateGame(r.Context(), ng)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.Header().Set("Location", "/games/"+view.ID)
	writeJSON(w, http.StatusCreated, view)
}

// HandleGet handles GET /games/{gameID}.
func (h *GameHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.deps.Game(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		writeServiceError(w, "api.get_game", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleDelete handles DELETE /games/{gameID}.
func (h *GameHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.DeleteGame(r.Context(), chi.URLParam(r, "gameID")); err != nil {
		writeServiceError(w, "api.delete_game", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddPlayer handles POST /games/{gameID}/players.
func (h *GameHandler) HandleAddPlayer(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_player"
	var req addPlayerRequest
	if err := decodeBody(w, r, op, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	view, err := h.deps.AddPlayer(r.Context(), chi.URLParam(r, "gameID"), req.Name)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// HandlePlayerTotals handles GET /games/{gameID}/players/{player}.
func (h *GameHandler) HandlePlayerTotals(w http.ResponseWriter, r *http.Request) {
	const op = "api.player_totals"
	player, err := url.PathUnescape(chi.URLParam(r, "player"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	totals, err := h.deps.PlayerTotals(r.Context(), chi.URLParam(r, "gameID"), player)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

// HandleSetVoor handles PUT /games/{gameID}/voor.
func (h *GameHandler) HandleSetVoor(w http.ResponseWriter, r *http.Request) {
	const op = "api.set_voor"
	var req types.Voor
	if err := decodeBody(w, r, op, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	view, err := h.deps.SetVoor(r.Context(), chi.URLParam(r, "gameID"), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleAdvance handles POST /games/{gameID}/advance.
func (h *GameHandler) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	view, err := h.deps.AdvanceHole(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		writeServiceError(w, "api.advance_hole", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleSettle handles POST /games/{gameID}/settle.
func (h *GameHandler) HandleSettle(w http.ResponseWriter, r *http.Request) {
	view, err := h.deps.SettleRound(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		writeServiceError(w, "api.settle_round", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
