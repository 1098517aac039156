package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/draftroom/keeper-league/internal/domain/selection"
)

type SelectionRepository struct {
	mu        sync.RWMutex
	items     map[string]selection.Selection
	finalized map[string]bool
}

func NewSelectionRepository() *SelectionRepository {
	return &SelectionRepository{
		items:     make(map[string]selection.Selection),
		finalized: make(map[string]bool),
	}
}

func (r *SelectionRepository) ListBySlotAndSeason(_ context.Context, slotID string, seasonYear int) ([]selection.Selection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]selection.Selection, 0)
	for _, s := range r.items {
		if s.SlotID == slotID && s.SeasonYear == seasonYear {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FinalRound != out[j].FinalRound {
			return out[i].FinalRound < out[j].FinalRound
		}
		return out[i].PlayerID < out[j].PlayerID
	})

	return out, nil
}

func (r *SelectionRepository) Get(_ context.Context, slotID string, seasonYear int, playerID string) (selection.Selection, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.items {
		if s.SlotID == slotID && s.SeasonYear == seasonYear && s.PlayerID == playerID {
			return s, true, nil
		}
	}

	return selection.Selection{}, false, nil
}

func (r *SelectionRepository) Create(_ context.Context, s selection.Selection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[s.ID]; exists {
		return fmt.Errorf("selection %s already exists", s.ID)
	}
	for _, held := range r.items {
		if held.SlotID == s.SlotID && held.SeasonYear == s.SeasonYear && held.PlayerID == s.PlayerID {
			return fmt.Errorf("player %s already selected on slot %s for %d", s.PlayerID, s.SlotID, s.SeasonYear)
		}
	}
	r.items[s.ID] = s

	return nil
}

func (r *SelectionRepository) UpdateFinalRound(_ context.Context, id string, finalRound int, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.items[id]
	if !ok {
		return fmt.Errorf("selection %s not found", id)
	}
	s.FinalRound = finalRound
	s.UpdatedAt = updatedAt
	r.items[id] = s

	return nil
}

func (r *SelectionRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return false, nil
	}
	delete(r.items, id)

	return true, nil
}

func (r *SelectionRepository) GetFinalized(_ context.Context, slotID string, seasonYear int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.finalized[finalizedKey(slotID, seasonYear)], nil
}

func (r *SelectionRepository) SetFinalized(_ context.Context, slotID string, seasonYear int, finalized bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.finalized[finalizedKey(slotID, seasonYear)] = finalized

	return nil
}

func finalizedKey(slotID string, seasonYear int) string {
	return fmt.Sprintf("%s|%d", slotID, seasonYear)
}
