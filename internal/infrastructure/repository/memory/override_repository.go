package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/draftroom/keeper-league/internal/domain/override"
)

type OverrideRepository struct {
	mu    sync.RWMutex
	items map[string]override.Override
}

func NewOverrideRepository(seed []override.Override) *OverrideRepository {
	items := make(map[string]override.Override, len(seed))
	for _, o := range seed {
		items[overrideKey(o.PlayerID, o.SlotID, o.SeasonYear)] = o
	}

	return &OverrideRepository{items: items}
}

func (r *OverrideRepository) Get(_ context.Context, playerID, slotID string, seasonYear int) (override.Override, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.items[overrideKey(playerID, slotID, seasonYear)]
	if !ok {
		return override.Override{}, false, nil
	}

	return o, true, nil
}

func (r *OverrideRepository) ListBySeason(_ context.Context, seasonYear int) ([]override.Override, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]override.Override, 0)
	for _, o := range r.items {
		if o.SeasonYear == seasonYear {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SlotID != out[j].SlotID {
			return out[i].SlotID < out[j].SlotID
		}
		return out[i].PlayerID < out[j].PlayerID
	})

	return out, nil
}

func (r *OverrideRepository) Create(_ context.Context, o override.Override) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := overrideKey(o.PlayerID, o.SlotID, o.SeasonYear)
	if _, exists := r.items[key]; exists {
		return fmt.Errorf("override already exists for player %s on slot %s in %d", o.PlayerID, o.SlotID, o.SeasonYear)
	}
	r.items[key] = o

	return nil
}

func (r *OverrideRepository) Delete(_ context.Context, playerID, slotID string, seasonYear int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := overrideKey(playerID, slotID, seasonYear)
	if _, exists := r.items[key]; !exists {
		return false, nil
	}
	delete(r.items, key)

	return true, nil
}

func overrideKey(playerID, slotID string, seasonYear int) string {
	return fmt.Sprintf("%s|%s|%d", playerID, slotID, seasonYear)
}
