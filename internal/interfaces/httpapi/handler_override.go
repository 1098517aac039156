package httpapi

import (
	"net/http"
	"strings"

	"github.com/draftroom/keeper-league/internal/domain/override"
)

type setOverrideRequest struct {
	PlayerID   string `json:"playerId" validate:"required"`
	SlotID     string `json:"slotId" validate:"required"`
	SeasonYear int    `json:"seasonYear" validate:"required,min=1990"`
	Round      int    `json:"round" validate:"required,min=1"`
	Note       string `json:"note" validate:"omitempty,max=500"`
}

func (h *Handler) SetOverride(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetOverride")
	defer span.End()

	var req setOverrideRequest
	if err := h.decodeJSON(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.overrideService.Set(ctx, override.Override{
		PlayerID:   req.PlayerID,
		SlotID:     req.SlotID,
		SeasonYear: req.SeasonYear,
		Round:      req.Round,
		Note:       req.Note,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "set override failed", "player_id", req.PlayerID, "slot_id", req.SlotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, overrideToDTO(created))
}

func (h *Handler) RemoveOverride(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveOverride")
	defer span.End()

	slotID := strings.TrimSpace(r.PathValue("slotID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	seasonYear, err := pathYear(r, "seasonYear")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.overrideService.Remove(ctx, playerID, slotID, seasonYear); err != nil {
		h.logger.WarnContext(ctx, "remove override failed", "player_id", playerID, "slot_id", slotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOverrides")
	defer span.End()

	seasonYear, err := pathYear(r, "seasonYear")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	overrides, err := h.overrideService.ListBySeason(ctx, seasonYear)
	if err != nil {
		h.logger.WarnContext(ctx, "list overrides failed", "season", seasonYear, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]overrideDTO, 0, len(overrides))
	for _, item := range overrides {
		items = append(items, overrideToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
