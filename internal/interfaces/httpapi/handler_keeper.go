package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/draftroom/keeper-league/internal/usecase"
)

func (h *Handler) GetPlayerCost(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerCost")
	defer span.End()

	slotID := strings.TrimSpace(r.PathValue("slotID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	year, err := queryYear(r, "year")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	cost, err := h.keeperService.CostForPlayer(ctx, playerID, slotID, year)
	if err != nil {
		h.logger.WarnContext(ctx, "player cost failed", "slot_id", slotID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, cost)
}

func (h *Handler) GetRosterCosts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRosterCosts")
	defer span.End()

	slotID := strings.TrimSpace(r.PathValue("slotID"))
	year, err := queryYear(r, "year")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	costs, err := h.keeperService.RosterCosts(ctx, slotID, year)
	if err != nil {
		h.logger.WarnContext(ctx, "roster costs failed", "slot_id", slotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, costs)
}

func (h *Handler) GetCostProgression(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCostProgression")
	defer span.End()

	slotID := strings.TrimSpace(r.PathValue("slotID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	fromYear, err := queryYear(r, "from")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	toYear, err := queryYear(r, "to")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if fromYear == 0 || toYear == 0 {
		writeError(ctx, w, fmt.Errorf("%w: query parameters \"from\" and \"to\" are required", usecase.ErrInvalidInput))
		return
	}

	progression, err := h.keeperService.Progression(ctx, playerID, slotID, fromYear, toYear)
	if err != nil {
		h.logger.WarnContext(ctx, "cost progression failed", "slot_id", slotID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, progression)
}
