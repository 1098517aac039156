package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/draftroom/keeper-league/internal/domain/rule"
	"github.com/draftroom/keeper-league/internal/domain/season"
)

type upsertSeasonRequest struct {
	Year           int       `json:"year" validate:"required,min=1990"`
	KeeperDeadline time.Time `json:"keeperDeadline" validate:"required"`
	IsActive       bool      `json:"isActive"`
}

type setRuleRequest struct {
	Name            string `json:"name"`
	Enabled         bool   `json:"enabled"`
	EffectiveSeason int    `json:"effectiveSeason" validate:"required,min=1990"`
}

func (h *Handler) ListSlots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSlots")
	defer span.End()

	year, err := queryYear(r, "year")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	slots, err := h.leagueService.Slots(ctx, year)
	if err != nil {
		h.logger.WarnContext(ctx, "list slots failed", "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, slots)
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	seasons, err := h.leagueService.Seasons(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list seasons failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]seasonDTO, 0, len(seasons))
	for _, sn := range seasons {
		items = append(items, seasonToDTO(sn))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) UpsertSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertSeason")
	defer span.End()

	var req upsertSeasonRequest
	if err := h.decodeJSON(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sn := season.Season{
		Year:           req.Year,
		KeeperDeadline: req.KeeperDeadline,
		IsActive:       req.IsActive,
	}
	if err := h.leagueService.SetSeason(ctx, sn); err != nil {
		h.logger.WarnContext(ctx, "upsert season failed", "year", req.Year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(sn))
}

func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRules")
	defer span.End()

	rules, err := h.ruleService.ListRules(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list rules failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]ruleDTO, 0, len(rules))
	for _, item := range rules {
		items = append(items, ruleToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SetRule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetRule")
	defer span.End()

	code := strings.TrimSpace(r.PathValue("code"))

	var req setRuleRequest
	if err := h.decodeJSON(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item := rule.Rule{
		Code:            code,
		Name:            req.Name,
		Enabled:         req.Enabled,
		EffectiveSeason: req.EffectiveSeason,
	}
	if err := h.ruleService.SetRule(ctx, item); err != nil {
		h.logger.WarnContext(ctx, "set rule failed", "code", code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ruleToDTO(item))
}
