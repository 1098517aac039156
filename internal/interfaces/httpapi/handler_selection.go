package httpapi

import (
	"net/http"
	"strings"
)

type selectPlayerRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
}

type bumpPlayerRequest struct {
	ToRound int `json:"toRound" validate:"required,min=1"`
}

func (h *Handler) SelectKeeper(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectKeeper")
	defer span.End()

	slotID := strings.TrimSpace(r.PathValue("slotID"))
	seasonYear, err := pathYear(r, "seasonYear")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req selectPlayerRequest
	if err := h.decodeJSON(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sel, err := h.selectionService.SelectPlayer(ctx, slotID, seasonYear, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "select keeper failed", "slot_id", slotID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, selectionToDTO(sel))
}

func (h *Handler) RemoveKeeper(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveKeeper")
	defer span.End()

	slotID := strings.TrimSpace(r.PathValue("slotID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	seasonYear, err := pathYear(r, "seasonYear")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.selectionService.RemovePlayer(ctx, slotID, seasonYear, playerID); err != nil {
		h.logger.WarnContext(ctx, "remove keeper failed", "slot_id", slotID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) GetSelectionOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSelectionOverview")
	defer span.End()

	slotID := strings.TrimSpace(r.PathValue("slotID"))
	seasonYear, err := pathYear(r, "seasonYear")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	overview, err := h.selectionService.Overview(ctx, slotID, seasonYear)
	if err != nil {
		h.logger.WarnContext(ctx, "selection overview failed", "slot_id", slotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overviewToDTO(overview))
}

func (h *Handler) ListSelectionConflicts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSelectionConflicts")
	defer span.End()

	slotID := strings.TrimSpace(r.PathValue("slotID"))
	seasonYear, err := pathYear(r, "seasonYear")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	conflicts, err := h.selectionService.ListConflicts(ctx, slotID, seasonYear)
	if err != nil {
		h.logger.WarnContext(ctx, "list conflicts failed", "slot_id", slotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, conflicts)
}

func (h *Handler) GetBumpOptions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBumpOptions")
	defer span.End()

	slotID := strings.TrimSpace(r.PathValue("slotID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	seasonYear, err := pathYear(r, "seasonYear")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	options, err := h.selectionService.BumpOptions(ctx, slotID, seasonYear, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "bump options failed", "slot_id", slotID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, options)
}

func (h *Handler) BumpKeeper(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BumpKeeper")
	defer span.End()

	slotID := strings.TrimSpace(r.PathValue("slotID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	seasonYear, err := pathYear(r, "seasonYear")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req bumpPlayerRequest
	if err := h.decodeJSON(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sel, err := h.selectionService.BumpPlayer(ctx, slotID, seasonYear, playerID, req.ToRound)
	if err != nil {
		h.logger.WarnContext(ctx, "bump keeper failed", "slot_id", slotID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectionToDTO(sel))
}

func (h *Handler) FinalizeSelections(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinalizeSelections")
	defer span.End()

	slotID := strings.TrimSpace(r.PathValue("slotID"))
	seasonYear, err := pathYear(r, "seasonYear")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.selectionService.Finalize(ctx, slotID, seasonYear); err != nil {
		h.logger.WarnContext(ctx, "finalize selections failed", "slot_id", slotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "finalized"})
}

func (h *Handler) ReopenSelections(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReopenSelections")
	defer span.End()

	slotID := strings.TrimSpace(r.PathValue("slotID"))
	seasonYear, err := pathYear(r, "seasonYear")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.selectionService.Reopen(ctx, slotID, seasonYear); err != nil {
		h.logger.WarnContext(ctx, "reopen selections failed", "slot_id", slotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "reopened"})
}
