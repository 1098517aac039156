package usecase

import (
	"context"
	"fmt"

	"github.com/draftroom/keeper-league/internal/domain/season"
	"github.com/draftroom/keeper-league/internal/domain/team"
	"github.com/draftroom/keeper-league/internal/platform/logging"
)

// SlotView is a roster slot with its display name resolved for a season.
type SlotView struct {
	ID          string `json:"id"`
	Number      int    `json:"number"`
	DisplayName string `json:"displayName"`
}

// LeagueService serves the league's fixed structure: roster slots, their
// season-scoped display names, and the season calendar.
type LeagueService struct {
	teamRepo   team.Repository
	seasonRepo season.Repository
	logger     *logging.Logger
}

func NewLeagueService(teamRepo team.Repository, seasonRepo season.Repository, logger *logging.Logger) *LeagueService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LeagueService{
		teamRepo:   teamRepo,
		seasonRepo: seasonRepo,
		logger:     logger,
	}
}

// Slots lists every roster slot with the team name it carried in the given
// year. Zero means the active season.
func (s *LeagueService) Slots(ctx context.Context, year int) ([]SlotView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Slots")
	defer span.End()

	if year <= 0 {
		active, found, err := s.seasonRepo.GetActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("get active season: %w", err)
		}
		if !found {
			return nil, fmt.Errorf("%w: no active season configured", ErrNotFound)
		}
		year = active.Year
	}

	slots, err := s.teamRepo.ListSlots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	aliases, err := s.teamRepo.AliasesForYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("list aliases: %w", err)
	}

	out := make([]SlotView, 0, len(slots))
	for _, slot := range slots {
		out = append(out, SlotView{
			ID:          slot.ID,
			Number:      slot.Number,
			DisplayName: team.DisplayName(aliases, slot.ID, year),
		})
	}

	return out, nil
}

func (s *LeagueService) Seasons(ctx context.Context) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Seasons")
	defer span.End()

	return s.seasonRepo.List(ctx)
}

// SetSeason creates or updates a season entry; activating one deactivates the
// others at the store.
func (s *LeagueService) SetSeason(ctx context.Context, sn season.Season) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.SetSeason")
	defer span.End()

	if sn.Year <= 0 || sn.KeeperDeadline.IsZero() {
		return fmt.Errorf("%w: a season needs a year and a keeper deadline", ErrInvalidInput)
	}

	if err := s.seasonRepo.Upsert(ctx, sn); err != nil {
		return fmt.Errorf("upsert season: %w", err)
	}

	s.logger.InfoContext(ctx, "season configured",
		"year", sn.Year,
		"deadline", sn.KeeperDeadline,
		"active", sn.IsActive,
	)

	return nil
}
