// Package api exposes the wagering service over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/okian/golfbet/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	GameDependencies
	HoleDependencies
	ExportDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	gameHandler   *GameHandler
	holeHandler   *HoleHandler
	exportHandler *ExportHandler
	limiter       *IPRateLimiter
}

// NewServer creates a new API server with all handlers. A nil limiter disables
// rate limiting.
func NewServer(deps Dependencies, statsProvider StatsProvider, limiter *IPRateLimiter) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		gameHandler:   NewGameHandler(deps),
		holeHandler:   NewHoleHandler(deps),
		exportHandler: NewExportHandler(deps),
		limiter:       limiter,
	}
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(r chi.Router) {
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)

	r.Get("/healthz", s.healthHandler.HandleHealth)
	r.Get("/stats", s.statsHandler.HandleStats)

	r.Route("/games", func(r chi.Router) {
		if s.limiter != nil {
			r.Use(RateLimitMiddleware(s.limiter))
		}
		r.Post("/", s.gameHandler.HandleCreate)
		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/", s.gameHandler.HandleGet)
			r.Delete("/", s.gameHandler.HandleDelete)
			r.Post("/players", s.gameHandler.HandleAddPlayer)
			r.Get("/players/{player}", s.gameHandler.HandlePlayerTotals)
			r.Put("/voor", s.gameHandler.HandleSetVoor)
			r.Post("/advance", s.gameHandler.HandleAdvance)
			r.Post("/settle", s.gameHandler.HandleSettle)

			r.Post("/holes", s.holeHandler.HandleAdd)
			r.Get("/holes/{hole}", s.holeHandler.HandleGet)
			r.Put("/holes/{hole}/scores", s.holeHandler.HandleSetScores)
			r.Put("/holes/{hole}/buchi", s.holeHandler.HandleSetBuchi)
			r.Post("/holes/{hole}/settle", s.holeHandler.HandleSettle)

			r.Get("/scorecard.xlsx", s.exportHandler.HandleScorecard)
			r.Get("/balance.png", s.exportHandler.HandleBalanceChart)
		})
	})
}

// Handler returns a router with every route registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Register(r)
	return r
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

// writeServiceError translates a service error into its status and code.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		metrics.RecordErrorByComponent("api", code)
	}
	writeError(w, status, code, Wrap(op, err))
}

// writeDecodeError answers a body that could not be decoded. The error already
// carries its op.
func writeDecodeError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	writeError(w, status, code, err)
}

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

func decodeBody(w http.ResponseWriter, r *http.Request, op string, into any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(into); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return WrapKind(op, ErrBodyTooLarge, err)
		}
		return WrapKind(op, ErrBadRequest, err)
	}
	return nil
}

func holeParam(r *http.Request, op string) (int, error) {
	n, err := strconv.Atoi(chi.URLParam(r, "hole"))
	if err != nil {
		return 0, WrapKind(op, ErrBadRequest, err)
	}
	return n, nil
}
