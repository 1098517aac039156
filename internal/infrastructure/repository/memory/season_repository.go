package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/draftroom/keeper-league/internal/domain/season"
)

type SeasonRepository struct {
	mu    sync.RWMutex
	items map[int]season.Season
}

func NewSeasonRepository(seed []season.Season) *SeasonRepository {
	items := make(map[int]season.Season, len(seed))
	for _, s := range seed {
		items[s.Year] = s
	}

	return &SeasonRepository{items: items}
}

func (r *SeasonRepository) GetActive(_ context.Context) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.items {
		if s.IsActive {
			return s, true, nil
		}
	}

	return season.Season{}, false, nil
}

func (r *SeasonRepository) GetByYear(_ context.Context, year int) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[year]
	if !ok {
		return season.Season{}, false, nil
	}

	return s, true, nil
}

func (r *SeasonRepository) List(_ context.Context) ([]season.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Season, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })

	return out, nil
}

// Upsert keeps at most one active season: activating a year deactivates the
// rest.
func (r *SeasonRepository) Upsert(_ context.Context, s season.Season) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.IsActive {
		for year, held := range r.items {
			if held.IsActive && year != s.Year {
				held.IsActive = false
				r.items[year] = held
			}
		}
	}
	r.items[s.Year] = s

	return nil
}
