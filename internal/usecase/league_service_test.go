package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/draftroom/keeper-league/internal/domain/season"
	"github.com/draftroom/keeper-league/internal/infrastructure/repository/memory"
	"github.com/draftroom/keeper-league/internal/platform/logging"
)

func newTestLeagueService() *LeagueService {
	return NewLeagueService(
		memory.NewTeamRepository(memory.SeedSlots(), memory.SeedAliases()),
		memory.NewSeasonRepository(memory.SeedSeasons()),
		logging.NewNop(),
	)
}

func TestLeagueService_SlotsResolveAliasesPerYear(t *testing.T) {
	svc := newTestLeagueService()

	current, err := svc.Slots(t.Context(), 0)
	if err != nil {
		t.Fatalf("slots failed: %v", err)
	}
	if len(current) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(current))
	}
	if current[0].DisplayName != "Waiver Wire Wizards" {
		t.Fatalf("expected the 2024+ alias for the active season, got %q", current[0].DisplayName)
	}

	historic, err := svc.Slots(t.Context(), 2022)
	if err != nil {
		t.Fatalf("slots failed: %v", err)
	}
	if historic[0].DisplayName != "Gridiron Gurus" {
		t.Fatalf("expected the historic alias for 2022, got %q", historic[0].DisplayName)
	}
}

func TestLeagueService_SetSeasonValidates(t *testing.T) {
	svc := newTestLeagueService()

	err := svc.SetSeason(t.Context(), season.Season{Year: 2026})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	err = svc.SetSeason(t.Context(), season.Season{
		Year:           2026,
		KeeperDeadline: time.Date(2026, time.August, 29, 23, 59, 0, 0, time.UTC),
		IsActive:       true,
	})
	if err != nil {
		t.Fatalf("set season failed: %v", err)
	}

	seasons, err := svc.Seasons(t.Context())
	if err != nil {
		t.Fatalf("list seasons failed: %v", err)
	}
	activeCount := 0
	for _, sn := range seasons {
		if sn.IsActive {
			activeCount++
		}
	}
	if activeCount != 1 {
		t.Fatalf("expected exactly one active season, got %d", activeCount)
	}
}
