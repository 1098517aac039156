package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/draftroom/keeper-league/internal/infrastructure/repository/memory"
	"github.com/draftroom/keeper-league/internal/platform/id"
	"github.com/draftroom/keeper-league/internal/platform/logging"
)

type stubTransactionSource struct {
	rows []ExternalTransaction
	err  error
}

func (s *stubTransactionSource) FetchTransactions(_ context.Context, _ int) ([]ExternalTransaction, error) {
	return s.rows, s.err
}

func TestImportService_ImportSeason(t *testing.T) {
	round3 := 3
	source := &stubTransactionSource{rows: []ExternalTransaction{
		{
			ExternalRef: "tx-1", PlayerID: "rb-new", SlotID: memory.SlotIDOutlaws,
			SeasonYear: 2025, Type: "draft", Round: &round3,
			OccurredAt: time.Date(2025, time.September, 1, 19, 0, 0, 0, time.UTC),
		},
		{
			ExternalRef: "tx-2", PlayerID: "wr-new", SlotID: memory.SlotIDOutlaws,
			SeasonYear: 2025, Type: "waiver",
			OccurredAt: time.Date(2025, time.October, 2, 9, 0, 0, 0, time.UTC),
		},
		// Bad round: drafts outside 1..28 never import.
		{
			ExternalRef: "tx-3", PlayerID: "qb-bad", SlotID: memory.SlotIDOutlaws,
			SeasonYear: 2025, Type: "draft",
			OccurredAt: time.Date(2025, time.September, 1, 19, 0, 0, 0, time.UTC),
		},
		// Unknown type.
		{
			ExternalRef: "tx-4", PlayerID: "wr-odd", SlotID: memory.SlotIDOutlaws,
			SeasonYear: 2025, Type: "commish-gift",
			OccurredAt: time.Date(2025, time.September, 1, 19, 0, 0, 0, time.UTC),
		},
	}}

	acqRepo := memory.NewAcquisitionRepository(nil)
	svc := NewImportService(source, acqRepo, id.NewRandomGenerator(), logging.NewNop())

	result, err := svc.ImportSeason(t.Context(), 2025)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if result.Fetched != 4 || result.Imported != 2 || result.Failed != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("expected 2 row errors, got %+v", result.Errors)
	}

	imported, found, err := acqRepo.GetActive(t.Context(), "rb-new", memory.SlotIDOutlaws)
	if err != nil || !found {
		t.Fatalf("expected rb-new imported: found=%v err=%v", found, err)
	}
	if imported.DraftRound == nil || *imported.DraftRound != 3 {
		t.Fatalf("expected round 3, got %v", imported.DraftRound)
	}
}

func TestImportService_DuplicateRowFallsBackRowByRow(t *testing.T) {
	round3 := 3
	occurred := time.Date(2025, time.September, 1, 19, 0, 0, 0, time.UTC)
	source := &stubTransactionSource{rows: []ExternalTransaction{
		{ExternalRef: "tx-dup", PlayerID: "rb-new", SlotID: memory.SlotIDOutlaws, SeasonYear: 2025, Type: "draft", Round: &round3, OccurredAt: occurred},
		{ExternalRef: "tx-dup", PlayerID: "rb-new", SlotID: memory.SlotIDOutlaws, SeasonYear: 2025, Type: "draft", Round: &round3, OccurredAt: occurred},
	}}

	svc := NewImportService(source, memory.NewAcquisitionRepository(nil), id.NewRandomGenerator(), logging.NewNop())

	result, err := svc.ImportSeason(t.Context(), 2025)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Imported != 1 || result.Failed != 1 {
		t.Fatalf("expected one import and one duplicate failure, got %+v", result)
	}
}

func TestImportService_FeedFailurePropagates(t *testing.T) {
	source := &stubTransactionSource{err: errors.New("boom")}
	svc := NewImportService(source, memory.NewAcquisitionRepository(nil), id.NewRandomGenerator(), logging.NewNop())

	_, err := svc.ImportSeason(t.Context(), 2025)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestImportService_NoSourceConfigured(t *testing.T) {
	svc := NewImportService(nil, memory.NewAcquisitionRepository(nil), id.NewRandomGenerator(), logging.NewNop())

	_, err := svc.ImportSeason(t.Context(), 2025)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
