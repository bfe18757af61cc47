package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/okian/golfbet/internal/adapters/export"
	"github.com/okian/golfbet/internal/domain/types"
	"github.com/okian/golfbet/pkg/metrics"
)

const contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportDependencies provides the scorecard behind the file exports.
type ExportDependencies interface {
	Scorecard(ctx context.Context, id string) (types.Scorecard, error)
}

// ExportHandler renders scorecards as files.
type ExportHandler struct {
	deps ExportDependencies
}

// NewExportHandler creates a new export handler.
func NewExportHandler(deps ExportDependencies) *ExportHandler {
	return &ExportHandler{deps: deps}
}

// HandleScorecard handles GET /games/{gameID}/scorecard.xlsx.
func (h *ExportHandler) HandleScorecard(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "api.scorecard_xlsx", contentTypeXLSX, "scorecard.xlsx", export.ScorecardXLSX)
}

// HandleBalanceChart handles GET /games/{gameID}/balance.png.
func (h *ExportHandler) HandleBalanceChart(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "api.balance_png", "image/png", "", export.BalanceChartPNG)
}

func (h *ExportHandler) serve(w http.ResponseWriter, r *http.Request, op, contentType, attachment string,
	render func(types.Scorecard) ([]byte, error)) {
	sc, err := h.deps.Scorecard(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	body, err := render(sc)
	if err != nil {
		metrics.RecordErrorByComponent("export", "render")
		writeError(w, http.StatusInternalServerError, "export_failed", WrapKind(op, ErrExport, err))
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	if attachment != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+attachment+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
