package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/draftroom/keeper-league/internal/domain/acquisition"
	"github.com/draftroom/keeper-league/internal/domain/keeper"
	"github.com/draftroom/keeper-league/internal/domain/rule"
	"github.com/draftroom/keeper-league/internal/infrastructure/repository/memory"
	"github.com/draftroom/keeper-league/internal/platform/cache"
	"github.com/draftroom/keeper-league/internal/platform/logging"
)

func newTestResolver(t *testing.T, acqRepo acquisition.Repository, rules []rule.Rule) *ChainResolver {
	t.Helper()

	ruleSvc := NewRuleService(memory.NewRuleRepository(rules), cache.NewStore(time.Minute))
	return NewChainResolver(acqRepo, ruleSvc, logging.NewNop())
}

func TestChainResolver_DraftChainWalksToEarliestRecord(t *testing.T) {
	repo := memory.NewAcquisitionRepository(memory.SeedAcquisitions())
	resolver := newTestResolver(t, repo, memory.SeedRules())

	base, found, err := resolver.ResolveKeeperBase(t.Context(), "wr-chase", memory.SlotIDWizards)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !found {
		t.Fatal("expected player on roster")
	}

	if base.Resolution != ResolutionDraftChain {
		t.Fatalf("unexpected resolution: %s", base.Resolution)
	}
	if base.AcquisitionYear != 2023 {
		t.Fatalf("expected chain anchored at 2023, got %d", base.AcquisitionYear)
	}
	if base.DraftRound == nil || *base.DraftRound != 6 {
		t.Fatalf("expected base round 6, got %v", base.DraftRound)
	}
	if base.AcquisitionID != "acq-chase-2023" {
		t.Fatalf("unexpected anchor acquisition: %s", base.AcquisitionID)
	}
}

func TestChainResolver_DraftChainStopsAtGap(t *testing.T) {
	round4 := 4
	round9 := 9
	repo := memory.NewAcquisitionRepository([]acquisition.Acquisition{
		// 2022 draft is separated from the 2024-2025 run by a missing 2023.
		{
			ID: "a-2022", PlayerID: "rb-gap", SlotID: memory.SlotIDWizards, SeasonYear: 2022,
			Type: keeper.TypeDraft, DraftRound: &round9,
			AcquiredAt: time.Date(2022, time.September, 1, 0, 0, 0, 0, time.UTC),
			DroppedAt:  timeRef(2022, time.December),
		},
		{
			ID: "a-2024", PlayerID: "rb-gap", SlotID: memory.SlotIDWizards, SeasonYear: 2024,
			Type: keeper.TypeDraft, DraftRound: &round4,
			AcquiredAt: time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC),
			DroppedAt:  timeRef(2025, time.August),
		},
		{
			ID: "a-2025", PlayerID: "rb-gap", SlotID: memory.SlotIDWizards, SeasonYear: 2025,
			Type: keeper.TypeDraft, DraftRound: &round4,
			AcquiredAt: time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
		},
	})
	resolver := newTestResolver(t, repo, memory.SeedRules())

	base, found, err := resolver.ResolveKeeperBase(t.Context(), "rb-gap", memory.SlotIDWizards)
	if err != nil || !found {
		t.Fatalf("resolve failed: found=%v err=%v", found, err)
	}

	if base.AcquisitionYear != 2024 {
		t.Fatalf("expected anchor 2024 past the gap, got %d", base.AcquisitionYear)
	}
	if *base.DraftRound != 4 {
		t.Fatalf("expected round 4, got %d", *base.DraftRound)
	}
}

func TestChainResolver_TradeInheritsEarliestDraft(t *testing.T) {
	repo := memory.NewAcquisitionRepository(memory.SeedAcquisitions())
	resolver := newTestResolver(t, repo, memory.SeedRules())

	base, found, err := resolver.ResolveKeeperBase(t.Context(), "te-kelce", memory.SlotIDWizards)
	if err != nil || !found {
		t.Fatalf("resolve failed: found=%v err=%v", found, err)
	}

	if base.Resolution != ResolutionTradeInheritedDraft {
		t.Fatalf("unexpected resolution: %s", base.Resolution)
	}
	if base.Type != keeper.TypeDraft {
		t.Fatalf("expected draft base, got %s", base.Type)
	}
	if base.AcquisitionYear != 2024 || *base.DraftRound != 8 {
		t.Fatalf("expected 2024 round 8 from the sending slot, got %d round %v", base.AcquisitionYear, base.DraftRound)
	}
}

func TestChainResolver_TradeRuleInactiveFallsBackToFreeAgent(t *testing.T) {
	rules := memory.SeedRules()
	for i := range rules {
		if rules[i].Code == rule.CodeTradeInheritsCost {
			rules[i].Enabled = false
		}
	}
	repo := memory.NewAcquisitionRepository(memory.SeedAcquisitions())
	resolver := newTestResolver(t, repo, rules)

	base, found, err := resolver.ResolveKeeperBase(t.Context(), "te-kelce", memory.SlotIDWizards)
	if err != nil || !found {
		t.Fatalf("resolve failed: found=%v err=%v", found, err)
	}

	if base.Resolution != ResolutionTradeRuleInactive {
		t.Fatalf("unexpected resolution: %s", base.Resolution)
	}
	if base.Type != keeper.TypeFreeAgent {
		t.Fatalf("expected free-agent fallback, got %s", base.Type)
	}
	if base.AcquisitionYear != 2025 {
		t.Fatalf("expected the trade year to anchor, got %d", base.AcquisitionYear)
	}
	if base.InheritedRound == nil || *base.InheritedRound != 8 {
		t.Fatalf("expected inherited round 8 carried on the trade, got %v", base.InheritedRound)
	}
}

func TestChainResolver_TradeWithoutDraftHistory(t *testing.T) {
	elite := memory.SlotIDElite
	repo := memory.NewAcquisitionRepository([]acquisition.Acquisition{
		{
			ID: "a-fa", PlayerID: "wr-undrafted", SlotID: memory.SlotIDElite, SeasonYear: 2024,
			Type:       keeper.TypeFreeAgent,
			AcquiredAt: time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC),
			DroppedAt:  timeRef(2025, time.October),
		},
		{
			ID: "a-trade", PlayerID: "wr-undrafted", SlotID: memory.SlotIDWizards, SeasonYear: 2025,
			Type: keeper.TypeTrade, TradedFromSlotID: &elite,
			AcquiredAt: time.Date(2025, time.October, 5, 0, 0, 0, 0, time.UTC),
		},
	})
	resolver := newTestResolver(t, repo, memory.SeedRules())

	base, found, err := resolver.ResolveKeeperBase(t.Context(), "wr-undrafted", memory.SlotIDWizards)
	if err != nil || !found {
		t.Fatalf("resolve failed: found=%v err=%v", found, err)
	}

	if base.Resolution != ResolutionTradeNoDraftFound {
		t.Fatalf("unexpected resolution: %s", base.Resolution)
	}
	if base.Type != keeper.TypeFreeAgent || base.AcquisitionYear != 2025 {
		t.Fatalf("expected free-agent base in 2025, got %s %d", base.Type, base.AcquisitionYear)
	}
}

func TestChainResolver_FreeAgentInheritsSameSeasonDraft(t *testing.T) {
	repo := memory.NewAcquisitionRepository(memory.SeedAcquisitions())
	resolver := newTestResolver(t, repo, memory.SeedRules())

	base, found, err := resolver.ResolveKeeperBase(t.Context(), "wr-lamb", memory.SlotIDWizards)
	if err != nil || !found {
		t.Fatalf("resolve failed: found=%v err=%v", found, err)
	}

	if base.Resolution != ResolutionFreeAgentSameSeasonDraft {
		t.Fatalf("unexpected resolution: %s", base.Resolution)
	}
	if base.Type != keeper.TypeDraft || *base.DraftRound != 12 {
		t.Fatalf("expected the slot-02 draft record round 12, got %s round %v", base.Type, base.DraftRound)
	}
}

func TestChainResolver_FreeAgentRuleGatedOnPickupSeason(t *testing.T) {
	// Rule becomes effective in 2022; a 2021 pickup predates it even when the
	// keeper target year is later.
	rules := memory.SeedRules()
	repo := memory.NewAcquisitionRepository([]acquisition.Acquisition{
		{
			ID: "a-draft", PlayerID: "rb-early", SlotID: memory.SlotIDElite, SeasonYear: 2021,
			Type: keeper.TypeDraft, DraftRound: intRef(7),
			AcquiredAt: time.Date(2021, time.September, 1, 0, 0, 0, 0, time.UTC),
			DroppedAt:  timeRef(2021, time.October),
		},
		{
			ID: "a-pickup", PlayerID: "rb-early", SlotID: memory.SlotIDWizards, SeasonYear: 2021,
			Type:       keeper.TypeFreeAgent,
			AcquiredAt: time.Date(2021, time.November, 1, 0, 0, 0, 0, time.UTC),
		},
	})
	resolver := newTestResolver(t, repo, rules)

	base, found, err := resolver.ResolveKeeperBase(t.Context(), "rb-early", memory.SlotIDWizards)
	if err != nil || !found {
		t.Fatalf("resolve failed: found=%v err=%v", found, err)
	}

	if base.Resolution != ResolutionTrueFreeAgent {
		t.Fatalf("expected true free agent before the rule's effective season, got %s", base.Resolution)
	}
}

func TestChainResolver_TrueFreeAgent(t *testing.T) {
	repo := memory.NewAcquisitionRepository(memory.SeedAcquisitions())
	resolver := newTestResolver(t, repo, memory.SeedRules())

	base, found, err := resolver.ResolveKeeperBase(t.Context(), "wr-hill", memory.SlotIDWizards)
	if err != nil || !found {
		t.Fatalf("resolve failed: found=%v err=%v", found, err)
	}

	if base.Resolution != ResolutionTrueFreeAgent {
		t.Fatalf("unexpected resolution: %s", base.Resolution)
	}
	if base.Type != keeper.TypeFreeAgent || base.AcquisitionYear != 2025 {
		t.Fatalf("expected 2025 free-agent base, got %s %d", base.Type, base.AcquisitionYear)
	}
	if base.InheritedRound != nil {
		t.Fatalf("expected no inherited round, got %d", *base.InheritedRound)
	}
}

func TestChainResolver_UnknownPlayerNotFound(t *testing.T) {
	repo := memory.NewAcquisitionRepository(memory.SeedAcquisitions())
	resolver := newTestResolver(t, repo, memory.SeedRules())

	_, found, err := resolver.ResolveKeeperBase(t.Context(), "qb-nobody", memory.SlotIDWizards)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected not found")
	}
}

func TestChainResolver_EmptyInputRejected(t *testing.T) {
	repo := memory.NewAcquisitionRepository(nil)
	resolver := newTestResolver(t, repo, memory.SeedRules())

	_, _, err := resolver.ResolveKeeperBase(t.Context(), "", memory.SlotIDWizards)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestChainResolver_BatchMatchesPerPlayerPath(t *testing.T) {
	repo := memory.NewAcquisitionRepository(memory.SeedAcquisitions())
	resolver := newTestResolver(t, repo, memory.SeedRules())

	batch, err := resolver.ResolveActiveRoster(t.Context(), memory.SlotIDWizards)
	if err != nil {
		t.Fatalf("batch resolve failed: %v", err)
	}
	if len(batch) != 4 {
		t.Fatalf("expected 4 roster players, got %d", len(batch))
	}

	for _, got := range batch {
		if got.Err != nil {
			t.Fatalf("player %s: unexpected error: %v", got.PlayerID, got.Err)
		}
		want, found, err := resolver.ResolveKeeperBase(t.Context(), got.PlayerID, memory.SlotIDWizards)
		if err != nil {
			t.Fatalf("player %s: per-player resolve failed: %v", got.PlayerID, err)
		}
		if found != got.Found {
			t.Fatalf("player %s: found mismatch", got.PlayerID)
		}
		if want != got.Base {
			t.Fatalf("player %s: batch base %+v != per-player base %+v", got.PlayerID, got.Base, want)
		}
	}
}

func TestChainResolver_BatchEmptySlot(t *testing.T) {
	repo := memory.NewAcquisitionRepository(nil)
	resolver := newTestResolver(t, repo, memory.SeedRules())

	batch, err := resolver.ResolveActiveRoster(t.Context(), memory.SlotIDOutlaws)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(batch) != 0 {
		t.Fatalf("expected empty result, got %d", len(batch))
	}
}

func timeRef(year int, month time.Month) *time.Time {
	t := time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
	return &t
}

func intRef(v int) *int {
	return &v
}
