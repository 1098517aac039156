package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/draftroom/keeper-league/internal/infrastructure/repository/memory"
	"github.com/draftroom/keeper-league/internal/platform/cache"
	"github.com/draftroom/keeper-league/internal/platform/logging"
)

func newTestTradeService(t *testing.T) (*TradeService, *memory.AcquisitionRepository) {
	t.Helper()

	acqRepo := memory.NewAcquisitionRepository(memory.SeedAcquisitions())
	teamRepo := memory.NewTeamRepository(memory.SeedSlots(), memory.SeedAliases())
	svc := NewTradeService(acqRepo, acqRepo, teamRepo, logging.NewNop())
	svc.now = func() time.Time { return time.Date(2025, time.November, 4, 12, 0, 0, 0, time.UTC) }

	return svc, acqRepo
}

func TestTradeService_ExecuteMovesPlayer(t *testing.T) {
	svc, acqRepo := newTestTradeService(t)
	ctx := t.Context()

	err := svc.Execute(ctx, TradeInput{
		SeasonYear: 2025,
		Moves: []TradeMove{
			{PlayerID: "qb-allen", FromSlotID: memory.SlotIDElite, ToSlotID: memory.SlotIDWizards},
		},
	})
	if err != nil {
		t.Fatalf("trade failed: %v", err)
	}

	if _, stillThere, _ := acqRepo.GetActive(ctx, "qb-allen", memory.SlotIDElite); stillThere {
		t.Fatal("expected the sending slot's record closed")
	}

	moved, found, err := acqRepo.GetActive(ctx, "qb-allen", memory.SlotIDWizards)
	if err != nil || !found {
		t.Fatalf("expected active record on receiving slot: found=%v err=%v", found, err)
	}
	if moved.TradedFromSlotID == nil || *moved.TradedFromSlotID != memory.SlotIDElite {
		t.Fatalf("expected sending slot recorded, got %v", moved.TradedFromSlotID)
	}
	// The draft round rides along for cost inheritance.
	if moved.DraftRound == nil || *moved.DraftRound != 1 {
		t.Fatalf("expected inherited round 1, got %v", moved.DraftRound)
	}
}

func TestTradeService_RejectsPlayerNotOnSlot(t *testing.T) {
	svc, acqRepo := newTestTradeService(t)

	err := svc.Execute(t.Context(), TradeInput{
		SeasonYear: 2025,
		Moves: []TradeMove{
			{PlayerID: "qb-allen", FromSlotID: memory.SlotIDOutlaws, ToSlotID: memory.SlotIDWizards},
		},
	})
	if !errors.Is(err, ErrOperationRejected) {
		t.Fatalf("expected ErrOperationRejected, got %v", err)
	}

	// Nothing moved.
	if _, found, _ := acqRepo.GetActive(t.Context(), "qb-allen", memory.SlotIDElite); !found {
		t.Fatal("expected original record untouched")
	}
}

func TestTradeService_RejectsSameSlotMove(t *testing.T) {
	svc, _ := newTestTradeService(t)

	err := svc.Execute(t.Context(), TradeInput{
		SeasonYear: 2025,
		Moves: []TradeMove{
			{PlayerID: "qb-allen", FromSlotID: memory.SlotIDElite, ToSlotID: memory.SlotIDElite},
		},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestTradeService_RejectsUnknownSlot(t *testing.T) {
	svc, _ := newTestTradeService(t)

	err := svc.Execute(t.Context(), TradeInput{
		SeasonYear: 2025,
		Moves: []TradeMove{
			{PlayerID: "qb-allen", FromSlotID: memory.SlotIDElite, ToSlotID: "slot-99"},
		},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTradeService_TradedPlayerPricesThroughInheritance(t *testing.T) {
	svc, acqRepo := newTestTradeService(t)
	ctx := t.Context()

	err := svc.Execute(ctx, TradeInput{
		SeasonYear: 2025,
		Moves: []TradeMove{
			{PlayerID: "qb-allen", FromSlotID: memory.SlotIDElite, ToSlotID: memory.SlotIDOutlaws},
		},
	})
	if err != nil {
		t.Fatalf("trade failed: %v", err)
	}

	rules := NewRuleService(memory.NewRuleRepository(memory.SeedRules()), cache.NewStore(time.Minute))
	resolver := NewChainResolver(acqRepo, rules, logging.NewNop())

	base, found, err := resolver.ResolveKeeperBase(ctx, "qb-allen", memory.SlotIDOutlaws)
	if err != nil || !found {
		t.Fatalf("resolve failed: found=%v err=%v", found, err)
	}
	if base.Resolution != ResolutionTradeInheritedDraft {
		t.Fatalf("unexpected resolution: %s", base.Resolution)
	}
	if *base.DraftRound != 1 || base.AcquisitionYear != 2025 {
		t.Fatalf("expected the 2025 round-1 draft inherited, got round=%v year=%d", base.DraftRound, base.AcquisitionYear)
	}
}
