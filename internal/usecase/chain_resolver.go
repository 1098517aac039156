package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/draftroom/keeper-league/internal/domain/acquisition"
	"github.com/draftroom/keeper-league/internal/domain/keeper"
	"github.com/draftroom/keeper-league/internal/domain/rule"
	"github.com/draftroom/keeper-league/internal/platform/logging"
)

// Resolution names the branch that produced a keeper base. Fallbacks are
// deliberate, visible outcomes, never silent defaults.
type Resolution string

const (
	// ResolutionDraftChain: unbroken run of yearly DRAFT records on one slot;
	// the base is the earliest record in the run.
	ResolutionDraftChain Resolution = "draft_chain"
	// ResolutionTradeInheritedDraft: traded player keeps the earliest draft
	// basis from any slot.
	ResolutionTradeInheritedDraft Resolution = "trade_inherited_draft"
	// ResolutionTradeNoDraftFound: inherit rule is on but the player has no
	// draft history anywhere; the trade itself anchors, free-agent style.
	ResolutionTradeNoDraftFound Resolution = "trade_no_draft_found"
	// ResolutionTradeRuleInactive: inherit rule is off for the trade's
	// season; the trade itself anchors, free-agent style.
	ResolutionTradeRuleInactive Resolution = "trade_rule_inactive"
	// ResolutionFreeAgentSameSeasonDraft: drafted, dropped and picked up in
	// the same season; the draft record anchors.
	ResolutionFreeAgentSameSeasonDraft Resolution = "free_agent_same_season_draft"
	// ResolutionTrueFreeAgent: a clean-slate pickup with no inheritable
	// history.
	ResolutionTrueFreeAgent Resolution = "true_free_agent"
)

// KeeperBase is the single acquisition-derived anchor fed to the calculator.
// Type is already normalized: a trade with no draft lineage comes out as a
// free agent.
type KeeperBase struct {
	PlayerID        string
	SlotID          string
	AcquisitionID   string
	Type            keeper.AcquisitionType
	DraftRound      *int
	AcquisitionYear int
	InheritedRound  *int
	Resolution      Resolution
}

// CostInput converts the base into calculator input for one target year.
func (b KeeperBase) CostInput(targetYear int) keeper.CostInput {
	return keeper.CostInput{
		Type:            b.Type,
		DraftRound:      b.DraftRound,
		AcquisitionYear: b.AcquisitionYear,
		TargetYear:      targetYear,
		InheritedRound:  b.InheritedRound,
	}
}

// RuleChecker answers season-gated rule activity. Resolver gates evaluate
// rules against the acquisition's own season, not the keeper target year.
type RuleChecker interface {
	IsActive(ctx context.Context, code string, seasonYear int) (bool, error)
}

// ChainResolver reconstructs keeper chains from acquisition history and picks
// the record that anchors the cost computation.
type ChainResolver struct {
	acqRepo acquisition.Repository
	rules   RuleChecker
	logger  *logging.Logger
}

func NewChainResolver(acqRepo acquisition.Repository, rules RuleChecker, logger *logging.Logger) *ChainResolver {
	if logger == nil {
		logger = logging.Default()
	}

	return &ChainResolver{
		acqRepo: acqRepo,
		rules:   rules,
		logger:  logger,
	}
}

// ResolveKeeperBase finds the keeper base for one player on one roster slot.
// A player with no active acquisition on the slot is simply not on the
// roster: (zero, false, nil).
func (r *ChainResolver) ResolveKeeperBase(ctx context.Context, playerID, slotID string) (KeeperBase, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChainResolver.ResolveKeeperBase")
	defer span.End()

	if playerID == "" || slotID == "" {
		return KeeperBase{}, false, fmt.Errorf("%w: player id and slot id are required", ErrInvalidInput)
	}

	src := repoBaseSource{repo: r.acqRepo, slotID: slotID}
	return r.resolve(ctx, src, playerID, slotID)
}

// ResolvedBase is one roster player's outcome in a batch resolution. Err is
// set when that player's resolution failed; the rest of the batch proceeds.
type ResolvedBase struct {
	PlayerID string
	Base     KeeperBase
	Found    bool
	Err      error
}

// ResolveActiveRoster resolves every player currently active on the slot. It
// pre-loads the slot roster and the full cross-slot history of those players
// in two fetches, then runs the same decision logic entirely in memory. The
// results must match the per-player path exactly; only the fetch pattern
// differs.
func (r *ChainResolver) ResolveActiveRoster(ctx context.Context, slotID string) ([]ResolvedBase, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChainResolver.ResolveActiveRoster")
	defer span.End()

	if slotID == "" {
		return nil, fmt.Errorf("%w: slot id is required", ErrInvalidInput)
	}

	active, err := r.acqRepo.ListActiveBySlot(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("list active acquisitions for slot %s: %w", slotID, err)
	}
	if len(active) == 0 {
		return nil, nil
	}

	playerIDs := make([]string, 0, len(active))
	for _, acq := range active {
		playerIDs = append(playerIDs, acq.PlayerID)
	}
	sort.Strings(playerIDs)

	history, err := r.acqRepo.ListByPlayers(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("preload acquisition history: %w", err)
	}

	src := newMemoryBaseSource(slotID, history)
	out := make([]ResolvedBase, 0, len(playerIDs))
	for _, playerID := range playerIDs {
		base, found, resolveErr := r.resolve(ctx, src, playerID, slotID)
		out = append(out, ResolvedBase{
			PlayerID: playerID,
			Base:     base,
			Found:    found,
			Err:      resolveErr,
		})
	}

	return out, nil
}

func (r *ChainResolver) resolve(ctx context.Context, src baseSource, playerID, slotID string) (KeeperBase, bool, error) {
	active, exists, err := src.activeAcquisition(ctx, playerID)
	if err != nil {
		return KeeperBase{}, false, fmt.Errorf("get active acquisition: %w", err)
	}
	if !exists {
		return KeeperBase{}, false, nil
	}

	switch active.Type {
	case keeper.TypeTrade:
		return r.resolveTrade(ctx, src, active, slotID)
	case keeper.TypeFreeAgent:
		return r.resolveFreeAgent(ctx, src, active, slotID)
	default:
		return r.resolveDraftChain(ctx, src, active, slotID)
	}
}

// resolveDraftChain walks backward season by season on the same slot. The
// first prior year with no DRAFT record ends the walk; the earliest record
// reached anchors the chain. A single descending scan over a year-indexed
// map, no backtracking.
func (r *ChainResolver) resolveDraftChain(ctx context.Context, src baseSource, active acquisition.Acquisition, slotID string) (KeeperBase, bool, error) {
	records, err := src.slotAcquisitions(ctx, active.PlayerID)
	if err != nil {
		return KeeperBase{}, false, fmt.Errorf("list slot acquisitions: %w", err)
	}

	draftsByYear := make(map[int]acquisition.Acquisition, len(records))
	for _, rec := range records {
		if rec.Type != keeper.TypeDraft {
			continue
		}
		if held, ok := draftsByYear[rec.SeasonYear]; !ok || rec.AcquiredAt.Before(held.AcquiredAt) {
			draftsByYear[rec.SeasonYear] = rec
		}
	}

	anchor := active
	for year := active.SeasonYear - 1; ; year-- {
		rec, ok := draftsByYear[year]
		if !ok {
			break
		}
		anchor = rec
	}

	return KeeperBase{
		PlayerID:        active.PlayerID,
		SlotID:          slotID,
		AcquisitionID:   anchor.ID,
		Type:            keeper.TypeDraft,
		DraftRound:      anchor.DraftRound,
		AcquisitionYear: anchor.SeasonYear,
		Resolution:      ResolutionDraftChain,
	}, true, nil
}

func (r *ChainResolver) resolveTrade(ctx context.Context, src baseSource, active acquisition.Acquisition, slotID string) (KeeperBase, bool, error) {
	inherits, err := r.rules.IsActive(ctx, rule.CodeTradeInheritsCost, active.SeasonYear)
	if err != nil {
		return KeeperBase{}, false, fmt.Errorf("check trade inherit rule: %w", err)
	}

	if inherits {
		draft, found, err := src.earliestDraft(ctx, active.PlayerID)
		if err != nil {
			return KeeperBase{}, false, fmt.Errorf("find earliest draft: %w", err)
		}
		if found {
			return KeeperBase{
				PlayerID:        active.PlayerID,
				SlotID:          slotID,
				AcquisitionID:   draft.ID,
				Type:            keeper.TypeDraft,
				DraftRound:      draft.DraftRound,
				AcquisitionYear: draft.SeasonYear,
				Resolution:      ResolutionTradeInheritedDraft,
			}, true, nil
		}
	}

	resolution := ResolutionTradeRuleInactive
	if inherits {
		resolution = ResolutionTradeNoDraftFound
	}
	r.logger.DebugContext(ctx, "trade resolves free-agent style",
		"player_id", active.PlayerID,
		"slot_id", slotID,
		"season", active.SeasonYear,
		"resolution", string(resolution),
	)

	return KeeperBase{
		PlayerID:        active.PlayerID,
		SlotID:          slotID,
		AcquisitionID:   active.ID,
		Type:            keeper.TypeFreeAgent,
		AcquisitionYear: active.SeasonYear,
		InheritedRound:  active.DraftRound,
		Resolution:      resolution,
	}, true, nil
}

// resolveFreeAgent gates the inherit rule on the pickup's own season, not the
// keeper target year: the question is whether the league honored same-season
// draft history at the time the pickup happened.
func (r *ChainResolver) resolveFreeAgent(ctx context.Context, src baseSource, active acquisition.Acquisition, slotID string) (KeeperBase, bool, error) {
	inherits, err := r.rules.IsActive(ctx, rule.CodeFAInheritsDraftRound, active.SeasonYear)
	if err != nil {
		return KeeperBase{}, false, fmt.Errorf("check free-agent inherit rule: %w", err)
	}

	if inherits {
		sameSeason, err := src.seasonAcquisitions(ctx, active.PlayerID, active.SeasonYear)
		if err != nil {
			return KeeperBase{}, false, fmt.Errorf("list same-season acquisitions: %w", err)
		}
		if draft, found := earliestDraftOf(sameSeason); found {
			return KeeperBase{
				PlayerID:        active.PlayerID,
				SlotID:          slotID,
				AcquisitionID:   draft.ID,
				Type:            keeper.TypeDraft,
				DraftRound:      draft.DraftRound,
				AcquisitionYear: draft.SeasonYear,
				Resolution:      ResolutionFreeAgentSameSeasonDraft,
			}, true, nil
		}
	}

	return KeeperBase{
		PlayerID:        active.PlayerID,
		SlotID:          slotID,
		AcquisitionID:   active.ID,
		Type:            keeper.TypeFreeAgent,
		AcquisitionYear: active.SeasonYear,
		InheritedRound:  active.DraftRound,
		Resolution:      ResolutionTrueFreeAgent,
	}, true, nil
}

func earliestDraftOf(records []acquisition.Acquisition) (acquisition.Acquisition, bool) {
	var best acquisition.Acquisition
	found := false
	for _, rec := range records {
		if rec.Type != keeper.TypeDraft {
			continue
		}
		if !found || rec.SeasonYear < best.SeasonYear ||
			(rec.SeasonYear == best.SeasonYear && rec.AcquiredAt.Before(best.AcquiredAt)) {
			best = rec
			found = true
		}
	}

	return best, found
}

// baseSource abstracts the four acquisition lookups the decision logic
// needs, so the per-player and the pre-loaded batch paths share one
// implementation of the rules.
type baseSource interface {
	activeAcquisition(ctx context.Context, playerID string) (acquisition.Acquisition, bool, error)
	slotAcquisitions(ctx context.Context, playerID string) ([]acquisition.Acquisition, error)
	seasonAcquisitions(ctx context.Context, playerID string, seasonYear int) ([]acquisition.Acquisition, error)
	earliestDraft(ctx context.Context, playerID string) (acquisition.Acquisition, bool, error)
}

type repoBaseSource struct {
	repo   acquisition.Repository
	slotID string
}

func (s repoBaseSource) activeAcquisition(ctx context.Context, playerID string) (acquisition.Acquisition, bool, error) {
	return s.repo.GetActive(ctx, playerID, s.slotID)
}

func (s repoBaseSource) slotAcquisitions(ctx context.Context, playerID string) ([]acquisition.Acquisition, error) {
	return s.repo.ListByPlayerAndSlot(ctx, playerID, s.slotID)
}

func (s repoBaseSource) seasonAcquisitions(ctx context.Context, playerID string, seasonYear int) ([]acquisition.Acquisition, error) {
	return s.repo.ListByPlayerAndSeason(ctx, playerID, seasonYear)
}

func (s repoBaseSource) earliestDraft(ctx context.Context, playerID string) (acquisition.Acquisition, bool, error) {
	return s.repo.GetEarliestDraft(ctx, playerID)
}

type memoryBaseSource struct {
	slotID   string
	byPlayer map[string][]acquisition.Acquisition
}

func newMemoryBaseSource(slotID string, history []acquisition.Acquisition) memoryBaseSource {
	byPlayer := make(map[string][]acquisition.Acquisition)
	for _, rec := range history {
		byPlayer[rec.PlayerID] = append(byPlayer[rec.PlayerID], rec)
	}

	return memoryBaseSource{slotID: slotID, byPlayer: byPlayer}
}

func (s memoryBaseSource) activeAcquisition(_ context.Context, playerID string) (acquisition.Acquisition, bool, error) {
	for _, rec := range s.byPlayer[playerID] {
		if rec.SlotID == s.slotID && rec.Active() {
			return rec, true, nil
		}
	}

	return acquisition.Acquisition{}, false, nil
}

func (s memoryBaseSource) slotAcquisitions(_ context.Context, playerID string) ([]acquisition.Acquisition, error) {
	out := make([]acquisition.Acquisition, 0)
	for _, rec := range s.byPlayer[playerID] {
		if rec.SlotID == s.slotID {
			out = append(out, rec)
		}
	}

	return out, nil
}

func (s memoryBaseSource) seasonAcquisitions(_ context.Context, playerID string, seasonYear int) ([]acquisition.Acquisition, error) {
	out := make([]acquisition.Acquisition, 0)
	for _, rec := range s.byPlayer[playerID] {
		if rec.SeasonYear == seasonYear {
			out = append(out, rec)
		}
	}

	return out, nil
}

func (s memoryBaseSource) earliestDraft(_ context.Context, playerID string) (acquisition.Acquisition, bool, error) {
	rec, found := earliestDraftOf(s.byPlayer[playerID])
	return rec, found, nil
}
