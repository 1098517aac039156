package httpapi

import (
	"fmt"
	"net/http"

	"github.com/draftroom/keeper-league/internal/usecase"
)

type importSeasonRequest struct {
	SeasonYear int `json:"seasonYear" validate:"required,min=1990"`
}

// RunImportSeasonJob pulls one season of acquisition history from the stats
// feed. Internal-job routes only; the public API never triggers imports.
func (h *Handler) RunImportSeasonJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunImportSeasonJob")
	defer span.End()

	if h.importService == nil {
		writeError(ctx, w, fmt.Errorf("%w: stats feed import is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req importSeasonRequest
	if err := h.decodeJSON(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.importService.ImportSeason(ctx, req.SeasonYear)
	if err != nil {
		h.logger.ErrorContext(ctx, "import season job failed", "season", req.SeasonYear, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "import season job finished",
		"season", result.SeasonYear,
		"fetched", result.Fetched,
		"imported", result.Imported,
		"failed", result.Failed,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}
