package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/draftroom/keeper-league/internal/domain/override"
	"github.com/draftroom/keeper-league/internal/domain/rule"
	"github.com/draftroom/keeper-league/internal/domain/season"
	"github.com/draftroom/keeper-league/internal/domain/selection"
	"github.com/draftroom/keeper-league/internal/platform/logging"
	"github.com/draftroom/keeper-league/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	keeperService    *usecase.KeeperService
	selectionService *usecase.SelectionService
	tradeService     *usecase.TradeService
	overrideService  *usecase.OverrideService
	ruleService      *usecase.RuleService
	leagueService    *usecase.LeagueService
	importService    *usecase.ImportService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	keeperService *usecase.KeeperService,
	selectionService *usecase.SelectionService,
	tradeService *usecase.TradeService,
	overrideService *usecase.OverrideService,
	ruleService *usecase.RuleService,
	leagueService *usecase.LeagueService,
	importService *usecase.ImportService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		keeperService:    keeperService,
		selectionService: selectionService,
		tradeService:     tradeService,
		overrideService:  overrideService,
		ruleService:      ruleService,
		leagueService:    leagueService,
		importService:    importService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeJSON(ctx context.Context, body io.Reader, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// queryYear reads an optional ?year= parameter. Zero means "use the active
// season" and is resolved downstream.
func queryYear(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}

	year, err := strconv.Atoi(raw)
	if err != nil || year < 0 {
		return 0, fmt.Errorf("%w: query parameter %q must be a non-negative year", usecase.ErrInvalidInput, name)
	}

	return year, nil
}

func pathYear(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	year, err := strconv.Atoi(raw)
	if err != nil || year <= 0 {
		return 0, fmt.Errorf("%w: path parameter %q must be a positive year", usecase.ErrInvalidInput, name)
	}

	return year, nil
}

type selectionDTO struct {
	ID              string    `json:"id"`
	SlotID          string    `json:"slotId"`
	SeasonYear      int       `json:"seasonYear"`
	PlayerID        string    `json:"playerId"`
	CalculatedRound int       `json:"calculatedRound"`
	FinalRound      int       `json:"finalRound"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func selectionToDTO(v selection.Selection) selectionDTO {
	return selectionDTO{
		ID:              v.ID,
		SlotID:          v.SlotID,
		SeasonYear:      v.SeasonYear,
		PlayerID:        v.PlayerID,
		CalculatedRound: v.CalculatedRound,
		FinalRound:      v.FinalRound,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func selectionsToDTO(items []selection.Selection) []selectionDTO {
	out := make([]selectionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, selectionToDTO(item))
	}

	return out
}

type overviewDTO struct {
	SlotID        string               `json:"slotId"`
	SeasonYear    int                  `json:"seasonYear"`
	Selections    []selectionDTO       `json:"selections"`
	Conflicts     []selection.Conflict `json:"conflicts"`
	Finalized     bool                 `json:"finalized"`
	DeadlineState season.DeadlineState `json:"deadlineState"`
	Deadline      time.Time            `json:"deadline"`
	CanModify     bool                 `json:"canModify"`
}

func overviewToDTO(v usecase.SelectionOverview) overviewDTO {
	return overviewDTO{
		SlotID:        v.SlotID,
		SeasonYear:    v.SeasonYear,
		Selections:    selectionsToDTO(v.Selections),
		Conflicts:     v.Conflicts,
		Finalized:     v.Finalized,
		DeadlineState: v.DeadlineState,
		Deadline:      v.Deadline,
		CanModify:     v.CanModify,
	}
}

type seasonDTO struct {
	Year           int       `json:"year"`
	KeeperDeadline time.Time `json:"keeperDeadline"`
	IsActive       bool      `json:"isActive"`
}

func seasonToDTO(v season.Season) seasonDTO {
	return seasonDTO{
		Year:           v.Year,
		KeeperDeadline: v.KeeperDeadline,
		IsActive:       v.IsActive,
	}
}

type ruleDTO struct {
	Code            string `json:"code"`
	Name            string `json:"name"`
	Enabled         bool   `json:"enabled"`
	EffectiveSeason int    `json:"effectiveSeason"`
}

func ruleToDTO(v rule.Rule) ruleDTO {
	return ruleDTO{
		Code:            v.Code,
		Name:            v.Name,
		Enabled:         v.Enabled,
		EffectiveSeason: v.EffectiveSeason,
	}
}

type overrideDTO struct {
	PlayerID   string    `json:"playerId"`
	SlotID     string    `json:"slotId"`
	SeasonYear int       `json:"seasonYear"`
	Round      int       `json:"round"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func overrideToDTO(v override.Override) overrideDTO {
	return overrideDTO{
		PlayerID:   v.PlayerID,
		SlotID:     v.SlotID,
		SeasonYear: v.SeasonYear,
		Round:      v.Round,
		Note:       v.Note,
		CreatedAt:  v.CreatedAt,
	}
}
