package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/draftroom/keeper-league/internal/domain/keeper"
	"github.com/draftroom/keeper-league/internal/domain/override"
	"github.com/draftroom/keeper-league/internal/domain/season"
	"github.com/draftroom/keeper-league/internal/platform/logging"
)

const defaultCostWorkerCount = 8

// PlayerCost is one player's keeper price for a target season, alongside how
// the price was derived.
type PlayerCost struct {
	PlayerID         string            `json:"playerId"`
	SlotID           string            `json:"slotId"`
	Resolution       Resolution        `json:"resolution,omitempty"`
	AcquisitionYear  int               `json:"acquisitionYear,omitempty"`
	Cost             keeper.CostResult `json:"cost"`
	LastEligibleYear int               `json:"lastEligibleYear,omitempty"`
	Overridden       bool              `json:"overridden"`
	OverrideNote     string            `json:"overrideNote,omitempty"`
	Error            string            `json:"error,omitempty"`
}

// KeeperService computes keeper costs: resolver for the base, rule flags for
// the formula, commissioner overrides winning outright.
type KeeperService struct {
	resolver     *ChainResolver
	rules        *RuleService
	overrideRepo override.Repository
	seasonRepo   season.Repository
	logger       *logging.Logger
}

func NewKeeperService(
	resolver *ChainResolver,
	rules *RuleService,
	overrideRepo override.Repository,
	seasonRepo season.Repository,
	logger *logging.Logger,
) *KeeperService {
	if logger == nil {
		logger = logging.Default()
	}

	return &KeeperService{
		resolver:     resolver,
		rules:        rules,
		overrideRepo: overrideRepo,
		seasonRepo:   seasonRepo,
		logger:       logger,
	}
}

// TargetYear resolves an explicit year, defaulting to the active season when
// the caller passes zero.
func (s *KeeperService) TargetYear(ctx context.Context, year int) (int, error) {
	if year > 0 {
		return year, nil
	}

	active, found, err := s.seasonRepo.GetActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("get active season: %w", err)
	}
	if !found {
		return 0, fmt.Errorf("%w: no active season configured", ErrNotFound)
	}

	return active.Year, nil
}

// CostForPlayer prices a single roster player for the target season.
func (s *KeeperService) CostForPlayer(ctx context.Context, playerID, slotID string, targetYear int) (PlayerCost, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.KeeperService.CostForPlayer")
	defer span.End()

	targetYear, err := s.TargetYear(ctx, targetYear)
	if err != nil {
		return PlayerCost{}, err
	}

	// An override reprices a rostered player; it never admits a player with
	// no acquisition on the slot.
	base, found, err := s.resolver.ResolveKeeperBase(ctx, playerID, slotID)
	if err != nil {
		return PlayerCost{}, err
	}
	if !found {
		return PlayerCost{}, fmt.Errorf("%w: player %s is not on slot %s", ErrNotFound, playerID, slotID)
	}

	flags, err := s.rules.FlagsForYear(ctx, targetYear)
	if err != nil {
		return PlayerCost{}, err
	}

	cost := s.price(base, targetYear, flags)

	ovr, hasOverride, err := s.overrideRepo.Get(ctx, playerID, slotID, targetYear)
	if err != nil {
		return PlayerCost{}, fmt.Errorf("get override: %w", err)
	}
	if hasOverride {
		cost = applyOverride(cost, ovr)
	}

	return cost, nil
}

// RosterCosts prices every active player on a slot with one acquisition
// preload and a bounded worker pool. A failure for one player lands in that
// player's Error field; the rest of the roster still prices.
func (s *KeeperService) RosterCosts(ctx context.Context, slotID string, targetYear int) ([]PlayerCost, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.KeeperService.RosterCosts")
	defer span.End()

	targetYear, err := s.TargetYear(ctx, targetYear)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolver.ResolveActiveRoster(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if len(resolved) == 0 {
		return nil, nil
	}

	flags, err := s.rules.FlagsForYear(ctx, targetYear)
	if err != nil {
		return nil, err
	}

	overrides, err := s.overrideRepo.ListBySeason(ctx, targetYear)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	overrideByPlayer := make(map[string]override.Override, len(overrides))
	for _, o := range overrides {
		if o.SlotID == slotID {
			overrideByPlayer[o.PlayerID] = o
		}
	}

	workerCount := defaultCostWorkerCount
	if len(resolved) < workerCount {
		workerCount = len(resolved)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan PlayerCost, len(resolved))

	var workers sync.WaitGroup
	for _, entry := range resolved {
		entry := entry
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results <- s.priceRosterEntry(entry, slotID, targetYear, flags, overrideByPlayer)
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit pricing task: %w", err)
		}
	}

	workers.Wait()
	close(results)

	out := make([]PlayerCost, 0, len(resolved))
	for row := range results {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })

	return out, nil
}

// Progression prices a player across a span of target seasons, showing the
// cost escalating until the player falls off the eligibility cliff.
func (s *KeeperService) Progression(ctx context.Context, playerID, slotID string, fromYear, toYear int) ([]PlayerCost, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.KeeperService.Progression")
	defer span.End()

	if fromYear <= 0 || toYear < fromYear {
		return nil, fmt.Errorf("%w: year span %d..%d is not valid", ErrInvalidInput, fromYear, toYear)
	}

	base, found, err := s.resolver.ResolveKeeperBase(ctx, playerID, slotID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: player %s is not on slot %s", ErrNotFound, playerID, slotID)
	}

	out := make([]PlayerCost, 0, toYear-fromYear+1)
	for year := fromYear; year <= toYear; year++ {
		flags, err := s.rules.FlagsForYear(ctx, year)
		if err != nil {
			return nil, err
		}
		out = append(out, s.price(base, year, flags))
	}

	return out, nil
}

func (s *KeeperService) priceRosterEntry(entry ResolvedBase, slotID string, targetYear int, flags keeper.RuleFlags, overrides map[string]override.Override) PlayerCost {
	if entry.Err != nil {
		s.logger.Warn("roster pricing skipped a player",
			"player_id", entry.PlayerID,
			"slot_id", slotID,
			"error", entry.Err.Error(),
		)
		return PlayerCost{
			PlayerID: entry.PlayerID,
			SlotID:   slotID,
			Error:    entry.Err.Error(),
		}
	}

	cost := s.price(entry.Base, targetYear, flags)
	if ovr, ok := overrides[entry.PlayerID]; ok {
		cost = applyOverride(cost, ovr)
	}

	return cost
}

func (s *KeeperService) price(base KeeperBase, targetYear int, flags keeper.RuleFlags) PlayerCost {
	result := keeper.CalculateCost(base.CostInput(targetYear), flags)

	out := PlayerCost{
		PlayerID:        base.PlayerID,
		SlotID:          base.SlotID,
		Resolution:      base.Resolution,
		AcquisitionYear: base.AcquisitionYear,
		Cost:            result,
	}
	if result.BaseRound > 0 {
		out.LastEligibleYear = keeper.LastEligibleYear(result.BaseRound, base.AcquisitionYear)
	}

	return out
}

// applyOverride replaces the computed round and forces eligibility; the
// computed fields stay visible so the UI can show what the override replaced.
func applyOverride(cost PlayerCost, ovr override.Override) PlayerCost {
	round := ovr.Round
	cost.Cost.KeeperRound = &round
	cost.Cost.Eligible = true
	cost.Cost.IneligibleReason = ""
	cost.Overridden = true
	cost.OverrideNote = ovr.Note

	return cost
}
