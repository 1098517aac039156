package httpapi

import (
	"net/http"

	"github.com/draftroom/keeper-league/internal/usecase"
)

func (h *Handler) ExecuteTrade(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExecuteTrade")
	defer span.End()

	var req usecase.TradeInput
	if err := h.decodeJSON(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.tradeService.Execute(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "execute trade failed", "season", req.SeasonYear, "moves", len(req.Moves), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"status": "executed",
		"moves":  len(req.Moves),
	})
}
