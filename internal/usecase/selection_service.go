package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/draftroom/keeper-league/internal/domain/season"
	"github.com/draftroom/keeper-league/internal/domain/selection"
	"github.com/draftroom/keeper-league/internal/platform/id"
	"github.com/draftroom/keeper-league/internal/platform/logging"
)

// SelectionOverview is the full picture of a slot's keeper choices for one
// season: the selections, any round collisions, and whether the window is
// still open.
type SelectionOverview struct {
	SlotID        string                `json:"slotId"`
	SeasonYear    int                   `json:"seasonYear"`
	Selections    []selection.Selection `json:"selections"`
	Conflicts     []selection.Conflict  `json:"conflicts"`
	Finalized     bool                  `json:"finalized"`
	DeadlineState season.DeadlineState  `json:"deadlineState"`
	Deadline      time.Time             `json:"deadline"`
	CanModify     bool                  `json:"canModify"`
}

// SelectionService runs the keeper-selection window: picking players at their
// computed cost, bumping collisions to earlier rounds, and locking the set in.
type SelectionService struct {
	selectionRepo selection.Repository
	seasonRepo    season.Repository
	keepers       *KeeperService
	idGen         id.Generator
	logger        *logging.Logger
	now           func() time.Time
}

func NewSelectionService(
	selectionRepo selection.Repository,
	seasonRepo season.Repository,
	keepers *KeeperService,
	idGen id.Generator,
	logger *logging.Logger,
) *SelectionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SelectionService{
		selectionRepo: selectionRepo,
		seasonRepo:    seasonRepo,
		keepers:       keepers,
		idGen:         idGen,
		logger:        logger,
		now:           time.Now,
	}
}

// SelectPlayer adds a player to the slot's keeper set at the player's
// computed cost. Ineligible players cannot be selected; overrides having
// already been applied by the pricing path.
func (s *SelectionService) SelectPlayer(ctx context.Context, slotID string, seasonYear int, playerID string) (selection.Selection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.SelectPlayer")
	defer span.End()

	seasonYear, _, err := s.modifiableSeason(ctx, slotID, seasonYear)
	if err != nil {
		return selection.Selection{}, err
	}

	if _, exists, err := s.selectionRepo.Get(ctx, slotID, seasonYear, playerID); err != nil {
		return selection.Selection{}, fmt.Errorf("get selection: %w", err)
	} else if exists {
		return selection.Selection{}, fmt.Errorf("%w: player %s is already selected", ErrOperationRejected, playerID)
	}

	cost, err := s.keepers.CostForPlayer(ctx, playerID, slotID, seasonYear)
	if err != nil {
		return selection.Selection{}, err
	}
	if !cost.Cost.Eligible || cost.Cost.KeeperRound == nil {
		return selection.Selection{}, fmt.Errorf("%w: player %s is not keeper-eligible for %d: %s",
			ErrOperationRejected, playerID, seasonYear, cost.Cost.IneligibleReason)
	}

	selID, err := s.idGen.NewID()
	if err != nil {
		return selection.Selection{}, fmt.Errorf("generate selection id: %w", err)
	}

	now := s.now().UTC()
	sel := selection.Selection{
		ID:              selID,
		SlotID:          slotID,
		SeasonYear:      seasonYear,
		PlayerID:        playerID,
		CalculatedRound: *cost.Cost.KeeperRound,
		FinalRound:      *cost.Cost.KeeperRound,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := sel.Validate(); err != nil {
		return selection.Selection{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.selectionRepo.Create(ctx, sel); err != nil {
		return selection.Selection{}, fmt.Errorf("create selection: %w", err)
	}

	s.logger.InfoContext(ctx, "keeper selected",
		"slot_id", slotID,
		"season", seasonYear,
		"player_id", playerID,
		"round", sel.FinalRound,
	)

	return sel, nil
}

// RemovePlayer drops a player from the keeper set.
func (s *SelectionService) RemovePlayer(ctx context.Context, slotID string, seasonYear int, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.RemovePlayer")
	defer span.End()

	seasonYear, _, err := s.modifiableSeason(ctx, slotID, seasonYear)
	if err != nil {
		return err
	}

	sel, exists, err := s.selectionRepo.Get(ctx, slotID, seasonYear, playerID)
	if err != nil {
		return fmt.Errorf("get selection: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: player %s is not selected", ErrNotFound, playerID)
	}

	if _, err := s.selectionRepo.Delete(ctx, sel.ID); err != nil {
		return fmt.Errorf("delete selection: %w", err)
	}

	return nil
}

// BumpOptions lists the rounds a selection may be bumped to: strictly earlier
// than the calculated round, no earlier than round one, skipping rounds other
// selections already hold.
func (s *SelectionService) BumpOptions(ctx context.Context, slotID string, seasonYear int, playerID string) ([]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.BumpOptions")
	defer span.End()

	seasonYear, err := s.keepers.TargetYear(ctx, seasonYear)
	if err != nil {
		return nil, err
	}

	sel, exists, err := s.selectionRepo.Get(ctx, slotID, seasonYear, playerID)
	if err != nil {
		return nil, fmt.Errorf("get selection: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: player %s is not selected", ErrNotFound, playerID)
	}

	all, err := s.selectionRepo.ListBySlotAndSeason(ctx, slotID, seasonYear)
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}

	return selection.BumpOptions(sel, all), nil
}

// BumpPlayer moves a selection to an earlier round to break a collision. A
// bump can only go earlier, never past round one, and never onto a round
// another selection holds.
func (s *SelectionService) BumpPlayer(ctx context.Context, slotID string, seasonYear int, playerID string, toRound int) (selection.Selection, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.BumpPlayer")
	defer span.End()

	seasonYear, _, err := s.modifiableSeason(ctx, slotID, seasonYear)
	if err != nil {
		return selection.Selection{}, err
	}

	sel, exists, err := s.selectionRepo.Get(ctx, slotID, seasonYear, playerID)
	if err != nil {
		return selection.Selection{}, fmt.Errorf("get selection: %w", err)
	}
	if !exists {
		return selection.Selection{}, fmt.Errorf("%w: player %s is not selected", ErrNotFound, playerID)
	}

	all, err := s.selectionRepo.ListBySlotAndSeason(ctx, slotID, seasonYear)
	if err != nil {
		return selection.Selection{}, fmt.Errorf("list selections: %w", err)
	}

	allowed := false
	for _, round := range selection.BumpOptions(sel, all) {
		if round == toRound {
			allowed = true
			break
		}
	}
	if !allowed {
		return selection.Selection{}, fmt.Errorf("%w: round %d is not a valid bump target for player %s",
			ErrOperationRejected, toRound, playerID)
	}

	now := s.now().UTC()
	if err := s.selectionRepo.UpdateFinalRound(ctx, sel.ID, toRound, now); err != nil {
		return selection.Selection{}, fmt.Errorf("update selection: %w", err)
	}
	fromRound := sel.FinalRound
	sel.FinalRound = toRound
	sel.UpdatedAt = now

	s.logger.InfoContext(ctx, "keeper bumped",
		"slot_id", slotID,
		"season", seasonYear,
		"player_id", playerID,
		"from_round", fromRound,
		"to_round", toRound,
	)

	return sel, nil
}

// ListConflicts reports round collisions in the slot's current keeper set.
func (s *SelectionService) ListConflicts(ctx context.Context, slotID string, seasonYear int) ([]selection.Conflict, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.ListConflicts")
	defer span.End()

	seasonYear, err := s.keepers.TargetYear(ctx, seasonYear)
	if err != nil {
		return nil, err
	}

	all, err := s.selectionRepo.ListBySlotAndSeason(ctx, slotID, seasonYear)
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}

	return selection.FindConflicts(all), nil
}

// Finalize locks the slot's keeper set for the season. A set with unresolved
// round collisions cannot be finalized.
func (s *SelectionService) Finalize(ctx context.Context, slotID string, seasonYear int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.Finalize")
	defer span.End()

	seasonYear, _, err := s.modifiableSeason(ctx, slotID, seasonYear)
	if err != nil {
		return err
	}

	all, err := s.selectionRepo.ListBySlotAndSeason(ctx, slotID, seasonYear)
	if err != nil {
		return fmt.Errorf("list selections: %w", err)
	}
	if conflicts := selection.FindConflicts(all); len(conflicts) > 0 {
		return fmt.Errorf("%w: %d round conflicts are unresolved", ErrOperationRejected, len(conflicts))
	}

	if err := s.selectionRepo.SetFinalized(ctx, slotID, seasonYear, true); err != nil {
		return fmt.Errorf("finalize selections: %w", err)
	}

	s.logger.InfoContext(ctx, "keeper selections finalized",
		"slot_id", slotID,
		"season", seasonYear,
		"count", len(all),
	)

	return nil
}

// Reopen clears the finalized flag, commissioner-only at the API layer.
func (s *SelectionService) Reopen(ctx context.Context, slotID string, seasonYear int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.Reopen")
	defer span.End()

	seasonYear, err := s.keepers.TargetYear(ctx, seasonYear)
	if err != nil {
		return err
	}

	return s.selectionRepo.SetFinalized(ctx, slotID, seasonYear, false)
}

// Overview assembles the slot's full selection state for the season.
func (s *SelectionService) Overview(ctx context.Context, slotID string, seasonYear int) (SelectionOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SelectionService.Overview")
	defer span.End()

	seasonYear, err := s.keepers.TargetYear(ctx, seasonYear)
	if err != nil {
		return SelectionOverview{}, err
	}

	sn, found, err := s.seasonRepo.GetByYear(ctx, seasonYear)
	if err != nil {
		return SelectionOverview{}, fmt.Errorf("get season: %w", err)
	}
	if !found {
		return SelectionOverview{}, fmt.Errorf("%w: season %d is not configured", ErrNotFound, seasonYear)
	}

	all, err := s.selectionRepo.ListBySlotAndSeason(ctx, slotID, seasonYear)
	if err != nil {
		return SelectionOverview{}, fmt.Errorf("list selections: %w", err)
	}
	finalized, err := s.selectionRepo.GetFinalized(ctx, slotID, seasonYear)
	if err != nil {
		return SelectionOverview{}, fmt.Errorf("get finalized state: %w", err)
	}

	state := season.DeadlineStateAt(sn.KeeperDeadline, s.now())

	return SelectionOverview{
		SlotID:        slotID,
		SeasonYear:    seasonYear,
		Selections:    all,
		Conflicts:     selection.FindConflicts(all),
		Finalized:     finalized,
		DeadlineState: state,
		Deadline:      sn.KeeperDeadline,
		CanModify:     season.CanModifySelections(state, finalized),
	}, nil
}

// modifiableSeason resolves the season and enforces the write gate: no edits
// after the deadline has passed or once the set is finalized.
func (s *SelectionService) modifiableSeason(ctx context.Context, slotID string, seasonYear int) (int, season.Season, error) {
	seasonYear, err := s.keepers.TargetYear(ctx, seasonYear)
	if err != nil {
		return 0, season.Season{}, err
	}

	sn, found, err := s.seasonRepo.GetByYear(ctx, seasonYear)
	if err != nil {
		return 0, season.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !found {
		return 0, season.Season{}, fmt.Errorf("%w: season %d is not configured", ErrNotFound, seasonYear)
	}

	finalized, err := s.selectionRepo.GetFinalized(ctx, slotID, seasonYear)
	if err != nil {
		return 0, season.Season{}, fmt.Errorf("get finalized state: %w", err)
	}

	state := season.DeadlineStateAt(sn.KeeperDeadline, s.now())
	if !season.CanModifySelections(state, finalized) {
		if finalized {
			return 0, season.Season{}, fmt.Errorf("%w: selections for slot %s are finalized", ErrOperationRejected, slotID)
		}
		return 0, season.Season{}, fmt.Errorf("%w: the keeper deadline for %d has passed", ErrOperationRejected, seasonYear)
	}

	return seasonYear, sn, nil
}
